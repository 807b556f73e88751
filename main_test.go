// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "binary only gets help",
			args:     []string{"envctl"},
			expected: []string{"envctl", "--help"},
		},
		{
			name:     "command present unchanged",
			args:     []string{"envctl", "compare", "environment.yml"},
			expected: []string{"envctl", "compare", "environment.yml"},
		},
		{
			name:     "flag counts as a command word",
			args:     []string{"envctl", "--help"},
			expected: []string{"envctl", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	if handleVersion([]string{"envctl", "compare"}) {
		t.Error("handleVersion() = true for non-version args")
	}
	if !handleVersion([]string{"envctl", "--version"}) {
		t.Error("handleVersion() = false for --version")
	}
	if !handleVersion([]string{"envctl", "-v"}) {
		t.Error("handleVersion() = false for -v")
	}
}
