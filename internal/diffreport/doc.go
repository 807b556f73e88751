// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package diffreport turns the line diff of two materialized package lists
// into a structured report and renders it as a color-annotated table.
package diffreport
