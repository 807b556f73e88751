// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"

	"github.com/envctl/envctl/internal/matchspec"
	"github.com/envctl/envctl/internal/prefix"
)

// successMessage is the single line emitted when every entry matched.
const successMessage = "Success. All the packages in the specification file " +
	"are present in the environment with matching version and build string."

// Result is the outcome of reconciling an inventory against a specification
// list. Lines holds one explanation per missing or mismatched entry, in
// specification order, or the single success line when everything matched.
// ExitCode is 0 for a full match and 1 otherwise.
type Result struct {
	Lines    []string
	ExitCode int
}

// Reconcile evaluates each specification entry against the installed
// inventory. Missing and mismatched entries are accumulated, never fatal;
// every entry is evaluated even after earlier ones fail. A structurally
// invalid entry aborts immediately with a parse error.
//
// Reconcile is pure computation over its inputs and is safe to call
// concurrently from independent callers.
func Reconcile(inventory prefix.Inventory, specs []string) (Result, error) {
	var result Result

	for _, entry := range specs {
		spec, err := matchspec.Parse(entry)
		if err != nil {
			return Result{}, err
		}

		installed, found := inventory[spec.Name]
		if !found {
			result.Lines = append(result.Lines, fmt.Sprintf("%s not found", spec.Name))
			continue
		}

		if !spec.Match(installed.Version, installed.Build) {
			result.Lines = append(result.Lines, fmt.Sprintf(
				"%s found but mismatch. Specification pkg: %s, Running pkg: %s==%s=%s",
				spec.Name, spec.Raw, installed.Name, installed.Version, installed.Build))
		}
	}

	if len(result.Lines) == 0 {
		result.Lines = append(result.Lines, successMessage)
		return result, nil
	}

	result.ExitCode = 1
	return result, nil
}
