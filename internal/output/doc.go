// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output provides the emission utilities used by commands to present
// results as plain text, JSON, YAML, or tables.
package output
