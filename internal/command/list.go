// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/envctl/envctl/internal/config"
	"github.com/envctl/envctl/internal/meta"
	"github.com/envctl/envctl/internal/output"
	"github.com/envctl/envctl/internal/prefix"
)

// listCommandAction renders the installed-package inventory of a prefix or
// named environment.
func listCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "list"

	root := cmd.Args().First()
	if root == "" {
		root = cmd.String("prefix")
	}
	if root == "" {
		name := cmd.String("name")
		if name == "" {
			return fmt.Errorf("no target environment: provide a PREFIX argument, --prefix, or --name")
		}
		resolved, err := prefix.ResolveName(name)
		if err != nil {
			return err
		}
		root = resolved
	}

	records, err := prefix.Load(root)
	if err != nil {
		return err
	}

	mode := cmd.String("output")
	if mode == "json" || mode == "yaml" {
		lines := make([]string, 0, len(records))
		for _, r := range records {
			lines = append(lines, r.String())
		}
		return output.EmitLines(os.Stdout, lines, mode)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, r.Version, r.Build})
	}

	useColor := cmd.Bool("color") && output.IsTerminal(os.Stdout)
	output.TableWriter(rows, []string{"Name", "Version", "Build"}, useColor, cmd.Bool("titles"), os.Stdout)
	return nil
}

// listCommandBuilder constructs the cli.Command for "list", wiring metadata,
// flags, and the action handler.
func listCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list the packages installed in an environment",
		UsageText: "envctl list [options] [PREFIX]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewNameFlag("list", meta.Config.Source),
			NewPrefixFlag("list", meta.Config.Source),
		}, NewGlobalFlags("list")...),
		Action: listCommandAction,
	}
}
