// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/envctl/envctl/internal/config"
)

// TargetSpec holds the resolved installation prefix and/or the environment
// name used to locate the inventory a command operates on. At most one of
// the two is supplied on the command line; the other is derived.
type TargetSpec struct {
	Prefix  string
	EnvName string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved comparison target, and the
// starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	TargetSpec
	StartingDir string
}
