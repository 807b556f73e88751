// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestEmitLines_PlainText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitLines(&buf, []string{"flask not found", "zlib not found"}, "text"))

	assert.Equal(t, "flask not found\nzlib not found\n", buf.String())
}

func TestEmitLines_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitLines(&buf, []string{"flask not found"}, "json"))

	var decoded []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"flask not found"}, decoded)
}

func TestEmitLines_JSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitLines(&buf, nil, "json"))

	assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
}

func TestEmitLines_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitLines(&buf, []string{"a", "b"}, "yaml"))

	var decoded []string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded)
}

func TestEmitLines_EmptyPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitLines(&buf, nil, "text"))
	assert.Empty(t, buf.String())
}

func TestTableWriter_NoRowsNoOutput(t *testing.T) {
	var buf bytes.Buffer
	TableWriter(nil, []string{"Name"}, false, true, &buf)
	assert.Empty(t, buf.String())
}

func TestTableWriter_RendersRows(t *testing.T) {
	var buf bytes.Buffer
	TableWriter([][]string{
		{"numpy", "1.24.0", "py311_0"},
		{"zlib", "1.2.13", "0"},
	}, []string{"Name", "Version", "Build"}, false, true, &buf)

	out := buf.String()
	assert.Contains(t, out, "numpy")
	assert.Contains(t, out, "1.2.13")
	assert.Contains(t, out, "Name")
}

func TestTableWriter_TitlesOff(t *testing.T) {
	var buf bytes.Buffer
	TableWriter([][]string{{"numpy", "1.24.0", "py311_0"}},
		[]string{"Name", "Version", "Build"}, false, false, &buf)

	out := buf.String()
	assert.Contains(t, out, "numpy")
	assert.NotContains(t, out, "Name")
}
