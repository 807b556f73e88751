// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `envs_dirs:
  - /opt/conda/envs
  - ~/.conda/envs
padding: 2
compare:
  name: research
colors:
  title: "#f6be00"
`

// loadSample points ENVCTL_CFG_FILE at a temp config and loads it.
func loadSample(t *testing.T, body string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "envctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("ENVCTL_CFG_FILE", path)

	Config = Type{}
	_, err := Load()
	require.NoError(t, err)
}

func TestGetString(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetString("colors.title")
	require.NoError(t, err)
	assert.Equal(t, "#f6be00", v)
}

func TestGetString_DefaultWhenMissing(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetString("no.such.key", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}

func TestGetString_MissingNoDefaultErrors(t *testing.T) {
	loadSample(t, sampleConfig)

	_, err := GetString("no.such.key")
	assert.Error(t, err)
}

func TestGetString_NamespacePreferred(t *testing.T) {
	loadSample(t, sampleConfig)
	Config.Namespace = "compare"
	defer func() { Config.Namespace = "" }()

	v, err := GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "research", v)
}

func TestGetInt(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetInt("padding")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestGetInt_Default(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetInt("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetStringSlice(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetStringSlice("envs_dirs")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/conda/envs", "~/.conda/envs"}, v)
}

func TestGetStringSlice_Default(t *testing.T) {
	loadSample(t, sampleConfig)

	v, err := GetStringSlice("missing", []string{"~/.conda/envs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"~/.conda/envs"}, v)
}

func TestLoad_EnvVarPointsToDirectory(t *testing.T) {
	t.Setenv("ENVCTL_CFG_FILE", t.TempDir())

	Config = Type{}
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\t- broken"), 0o644))
	t.Setenv("ENVCTL_CFG_FILE", path)

	Config = Type{}
	_, err := Load()
	assert.Error(t, err)
}
