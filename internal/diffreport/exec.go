// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package diffreport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/envctl/envctl/internal/log"
)

// ErrDiffUnavailable indicates the external diff binary is absent. Callers
// must treat it as a fatal precondition failure before any file is written.
var ErrDiffUnavailable = errors.New("diff command could not be found. Please install it to proceed")

// Fixed materialization targets in the working directory. Two runs sharing a
// directory would clobber each other; see CompareEnvs.
const (
	leftListFile  = "env1_packages.txt"
	rightListFile = "env2_packages.txt"
)

// Precheck verifies the external diff binary is on PATH. It is called by the
// CLI before any environment is materialized.
func Precheck() error {
	if _, err := exec.LookPath("diff"); err != nil {
		return ErrDiffUnavailable
	}
	return nil
}

// ExecDiffer is the production LineDiffer. It writes both line sequences to
// the well-known package-list files, runs the external diff utility over
// them, and removes the files again whether or not the diff succeeds.
type ExecDiffer struct {
	// Dir is the directory for the materialized list files. Empty means the
	// current working directory.
	Dir string
}

// Diff implements LineDiffer.
func (d ExecDiffer) Diff(ctx context.Context, a, b []string) (string, error) {
	if err := Precheck(); err != nil {
		return "", err
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	left := filepath.Join(dir, leftListFile)
	right := filepath.Join(dir, rightListFile)

	if err := writeLines(left, a); err != nil {
		return "", err
	}
	defer removeQuietly(left)

	if err := writeLines(right, b); err != nil {
		return "", err
	}
	defer removeQuietly(right)

	cmd := exec.CommandContext(ctx, "diff", left, right)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// diff exits 1 when the inputs differ; only >1 is trouble.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("diff failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// CondaLister is the production EnvironmentLister. It shells out to
// `conda list -n <env>` and returns the package lines with the comment
// header stripped.
type CondaLister struct {
	// Binary overrides the conda executable name, mainly for tests.
	Binary string
}

// List implements EnvironmentLister.
func (l CondaLister) List(ctx context.Context, env string) ([]string, error) {
	bin := l.Binary
	if bin == "" {
		bin = "conda"
	}

	cmd := exec.CommandContext(ctx, bin, "list", "-n", env)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s list -n %s: %w", bin, env, err)
	}

	var lines []string
	for line := range strings.SplitSeq(string(out), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func writeLines(path string, lines []string) error {
	data := strings.Join(lines, "\n")
	if data != "" {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("materializing %s: %w", path, err)
	}
	return nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil {
		log.Debugf("cleanup failed: path=%s err=%v", path, err)
	}
}
