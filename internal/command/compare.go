// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/envctl/envctl/internal/compare"
	"github.com/envctl/envctl/internal/config"
	"github.com/envctl/envctl/internal/diffreport"
	"github.com/envctl/envctl/internal/envfile"
	"github.com/envctl/envctl/internal/meta"
	"github.com/envctl/envctl/internal/output"
	"github.com/envctl/envctl/internal/prefix"
)

// compareCommandAction is the action handler for the "compare" subcommand.
// It reconciles an installed environment against an environment file, or in
// --diff mode renders the package delta between two named environments.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "compare"

	// Short circuit --diff mode.
	if cmd.Bool("diff") {
		return compareDiffAction(ctx, cmd)
	}

	fileArg := cmd.Args().First()
	if fileArg == "" {
		return fmt.Errorf("an environment file is required")
	}

	env, err := envfile.Load(ctx, fileArg)
	if err != nil {
		return err
	}

	root, err := resolveTarget(cmd, env.Name)
	if err != nil {
		return err
	}

	records, err := prefix.Load(root)
	if err != nil {
		return err
	}

	result, err := compare.Reconcile(prefix.NewInventory(records), env.SpecList())
	if err != nil {
		return err
	}
	MatchFailure = result.ExitCode

	mode := cmd.String("output")
	if cmd.Bool("json") {
		mode = "json"
	}
	return output.EmitLines(os.Stdout, result.Lines, mode)
}

// compareDiffAction handles `compare --diff ENV1 ENV2`. The diff binary is
// checked up front so we fail before materializing anything.
func compareDiffAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("--diff requires exactly two environment names")
	}
	envA, envB := args[0], args[1]

	if err := diffreport.Precheck(); err != nil {
		return err
	}

	report, err := diffreport.CompareEnvs(ctx,
		diffreport.CondaLister{}, diffreport.ExecDiffer{}, envA, envB)
	if err != nil {
		return err
	}

	useColor := cmd.Bool("color") && output.IsTerminal(os.Stdout)
	diffreport.Render(os.Stdout, report, envA, envB, useColor)
	return nil
}

// compareCommandBuilder constructs the cli.Command for "compare", wiring
// metadata, flags, and action handlers.
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "compare installed packages against an environment file",
		UsageText: "envctl compare [options] FILE\n   envctl compare --diff ENV1 ENV2",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "show differences between two environments",
				Value: false,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "report output as json",
				HideDefault: true,
			},
			NewNameFlag("compare", meta.Config.Source),
			NewPrefixFlag("compare", meta.Config.Source),
		}, NewGlobalFlags("compare")...),
		Action: compareCommandAction,
	}
}

// resolveTarget resolves the installation root a comparison runs against:
// an explicit --prefix wins, then --name, then the name recorded in the
// environment file itself.
func resolveTarget(cmd *cli.Command, fileEnvName string) (string, error) {
	if root := cmd.String("prefix"); root != "" {
		return root, nil
	}

	name := cmd.String("name")
	if name == "" {
		name = fileEnvName
	}
	if name == "" {
		return "", fmt.Errorf("no target environment: provide --prefix, --name, or a name in the environment file")
	}

	return prefix.ResolveName(name)
}
