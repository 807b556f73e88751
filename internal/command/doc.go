// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for envctl. It wires flags,
// validators, and actions for the compare and list subcommands.
package command
