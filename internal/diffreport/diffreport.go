// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package diffreport

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize/english"

	"github.com/envctl/envctl/internal/log"
)

// Row is one package-level difference between two environments.
type Row struct {
	Package string
	InA     bool
	InB     bool
}

// Report is the structured, terminal-neutral delta between two environments.
// Rows are in diff-stream order; rendering is a thin projection applied at
// the boundary.
type Report struct {
	Rows []Row
}

// EnvironmentLister materializes the installed-package list of a named
// environment as ordered line-per-package text. The production adapter
// shells out; tests supply canned lines.
type EnvironmentLister interface {
	List(ctx context.Context, env string) ([]string, error)
}

// LineDiffer compares two line sequences and produces GNU-diff-style text
// where "< " marks left-only lines and "> " marks right-only lines.
type LineDiffer interface {
	Diff(ctx context.Context, a, b []string) (string, error)
}

// Parse classifies each line of raw diff text by its leading marker. Lines
// carrying neither marker (hunk headers and other diff metadata) contribute
// no row. Input order is preserved; nothing is sorted or deduplicated, so a
// package appearing on both a "<" and a ">" line yields two rows.
func Parse(diffText string) Report {
	var report Report
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "<"):
			report.Rows = append(report.Rows, Row{Package: marker(line), InA: true})
		case strings.HasPrefix(line, ">"):
			report.Rows = append(report.Rows, Row{Package: marker(line), InB: true})
		}
	}
	return report
}

// CompareEnvs materializes both environments and diffs them. The steps are
// strictly ordered: env A completes before env B starts, and the differ runs
// only after both, because the production differ writes fixed well-known
// temp files that concurrent runs in the same directory would clobber.
func CompareEnvs(ctx context.Context, lister EnvironmentLister, differ LineDiffer, envA, envB string) (Report, error) {
	linesA, err := lister.List(ctx, envA)
	if err != nil {
		return Report{}, fmt.Errorf("listing %s: %w", envA, err)
	}
	log.Debugf("materialized %s: %d lines", envA, len(linesA))

	linesB, err := lister.List(ctx, envB)
	if err != nil {
		return Report{}, fmt.Errorf("listing %s: %w", envB, err)
	}
	log.Debugf("materialized %s: %d lines", envB, len(linesB))

	diffText, err := differ.Diff(ctx, linesA, linesB)
	if err != nil {
		return Report{}, err
	}

	return Parse(diffText), nil
}

// Styling for rendered rows, matching the classic red-on-left-only /
// blue-on-right-only framing.
var (
	leftOnlyStyle  = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))
	rightOnlyStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
)

// Render writes the report as the fixed three-column table (40/20/20) with
// the caller-supplied environment names as column labels. Color framing is
// applied here and nowhere else; pass color=false for plain output.
func Render(w io.Writer, report Report, labelA, labelB string, color bool) {
	fmt.Fprintf(w, "\nPackage Differences:\n\n")
	fmt.Fprintf(w, "%-40s %-20s %-20s\n", "Package", labelA, labelB)
	fmt.Fprintf(w, "%-40s %-20s %-20s\n", "-------", "----", "----")

	for _, row := range report.Rows {
		line := fmt.Sprintf("%-40s %-20s %-20s", row.Package, presence(row.InA), presence(row.InB))
		if color {
			style := rightOnlyStyle
			if row.InA {
				style = leftOnlyStyle
			}
			line = style.Render(line)
		}
		fmt.Fprintln(w, line)
	}

	if len(report.Rows) == 0 {
		fmt.Fprintln(w, "The environments are identical.")
		return
	}
	fmt.Fprintf(w, "\n%s\n", english.Plural(len(report.Rows), "package differs", "packages differ"))
}

// marker strips the two-character diff marker prefix ("< " or "> ").
func marker(line string) string {
	if len(line) < 2 {
		return ""
	}
	return line[2:]
}

func presence(present bool) string {
	if present {
		return "Present"
	}
	return "Absent"
}
