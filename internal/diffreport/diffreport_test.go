// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diffreport

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LeftOnly(t *testing.T) {
	report := Parse("< foo-1.0\n")

	require.Len(t, report.Rows, 1)
	assert.Equal(t, Row{Package: "foo-1.0", InA: true, InB: false}, report.Rows[0])
}

func TestParse_RightOnly(t *testing.T) {
	report := Parse("> bar-2.0\n")

	require.Len(t, report.Rows, 1)
	assert.Equal(t, Row{Package: "bar-2.0", InA: false, InB: true}, report.Rows[0])
}

func TestParse_MetadataLinesDropped(t *testing.T) {
	report := Parse("3c3\n< foo-1.0\n---\n> foo-2.0\n")

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "foo-1.0", report.Rows[0].Package)
	assert.Equal(t, "foo-2.0", report.Rows[1].Package)
}

func TestParse_SamePackageBothSidesTwoRows(t *testing.T) {
	// No merging: a package on both a "<" and a ">" line stays two rows.
	report := Parse("< numpy-1.0\n> numpy-2.0\n")

	require.Len(t, report.Rows, 2)
	assert.True(t, report.Rows[0].InA)
	assert.False(t, report.Rows[0].InB)
	assert.False(t, report.Rows[1].InA)
	assert.True(t, report.Rows[1].InB)
}

func TestParse_OrderPreserved(t *testing.T) {
	report := Parse("< z-1\n> a-1\n< m-1\n")

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "z-1", report.Rows[0].Package)
	assert.Equal(t, "a-1", report.Rows[1].Package)
	assert.Equal(t, "m-1", report.Rows[2].Package)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse("").Rows)
}

func TestRender_PlainTable(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Report{Rows: []Row{
		{Package: "foo-1.0", InA: true},
		{Package: "bar-2.0", InB: true},
	}}, "env1", "env2", false)

	out := buf.String()
	assert.Contains(t, out, "Package Differences:")
	assert.Contains(t, out, "env1")
	assert.Contains(t, out, "env2")
	assert.Regexp(t, `foo-1\.0\s+Present\s+Absent`, out)
	assert.Regexp(t, `bar-2\.0\s+Absent\s+Present`, out)
	assert.Contains(t, out, "2 packages differ")
}

func TestRender_SingularFooter(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Report{Rows: []Row{{Package: "foo-1.0", InA: true}}}, "a", "b", false)

	assert.Contains(t, buf.String(), "1 package differs")
}

func TestRender_Identical(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Report{}, "a", "b", false)

	assert.Contains(t, buf.String(), "The environments are identical.")
}

type cannedLister map[string][]string

func (l cannedLister) List(_ context.Context, env string) ([]string, error) {
	lines, ok := l[env]
	if !ok {
		return nil, errors.New("no such environment: " + env)
	}
	return lines, nil
}

type cannedDiffer struct {
	text string
	got  [][]string
}

func (d *cannedDiffer) Diff(_ context.Context, a, b []string) (string, error) {
	d.got = [][]string{a, b}
	return d.text, nil
}

func TestCompareEnvs_Canned(t *testing.T) {
	lister := cannedLister{
		"dev":  {"numpy-1.0", "zlib-1.2"},
		"prod": {"zlib-1.2"},
	}
	differ := &cannedDiffer{text: "< numpy-1.0\n"}

	report, err := CompareEnvs(context.Background(), lister, differ, "dev", "prod")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "numpy-1.0", report.Rows[0].Package)
	assert.Equal(t, [][]string{{"numpy-1.0", "zlib-1.2"}, {"zlib-1.2"}}, differ.got)
}

func TestCompareEnvs_ListerFailureIsFatal(t *testing.T) {
	_, err := CompareEnvs(context.Background(), cannedLister{}, &cannedDiffer{}, "dev", "prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev")
}

func TestExecDiffer_RoundTrip(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not installed")
	}

	dir := t.TempDir()
	d := ExecDiffer{Dir: dir}

	out, err := d.Diff(context.Background(),
		[]string{"numpy-1.0", "zlib-1.2"},
		[]string{"requests-2.0", "zlib-1.2"})
	require.NoError(t, err)

	report := Parse(out)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, Row{Package: "numpy-1.0", InA: true}, report.Rows[0])
	assert.Equal(t, Row{Package: "requests-2.0", InB: true}, report.Rows[1])
}

func TestExecDiffer_IdenticalInputs(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not installed")
	}

	d := ExecDiffer{Dir: t.TempDir()}
	out, err := d.Diff(context.Background(), []string{"a-1"}, []string{"a-1"})
	require.NoError(t, err)
	assert.Empty(t, Parse(out).Rows)
}

func TestExecDiffer_CleansUpListFiles(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not installed")
	}

	dir := t.TempDir()
	d := ExecDiffer{Dir: dir}
	_, err := d.Diff(context.Background(), []string{"a-1"}, []string{"b-1"})
	require.NoError(t, err)

	_, errA := os.Stat(filepath.Join(dir, "env1_packages.txt"))
	_, errB := os.Stat(filepath.Join(dir, "env2_packages.txt"))
	assert.True(t, os.IsNotExist(errA))
	assert.True(t, os.IsNotExist(errB))
}

func TestCondaLister_StripsHeader(t *testing.T) {
	// Stand in for conda with a script that prints a canned listing.
	dir := t.TempDir()
	script := filepath.Join(dir, "fakeconda")
	body := "#!/bin/sh\n" +
		"printf '# packages in environment at /envs/dev:\\n'\n" +
		"printf '#\\n'\n" +
		"printf 'numpy                     1.24.0          py311_0\\n'\n" +
		"printf 'zlib                      1.2.13          0\\n'\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	lister := CondaLister{Binary: script}
	lines, err := lister.List(context.Background(), "dev")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "numpy"))
}
