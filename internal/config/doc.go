// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the envctl YAML configuration file and exposes
// typed getters over dotted key paths. A command may set a Namespace so
// that command-scoped keys (e.g. "compare.envs_dirs") are preferred over
// bare keys.
package config
