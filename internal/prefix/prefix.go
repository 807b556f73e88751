// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package prefix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/envctl/envctl/internal/config"
	"github.com/envctl/envctl/internal/log"
)

// ErrLocationNotFound indicates the given path does not exist or is not an
// environment root. It is fatal; no partial inventory is ever returned.
var ErrLocationNotFound = errors.New("environment location not found")

// metaDir is the per-environment directory holding one JSON record per
// installed package.
const metaDir = "conda-meta"

// Record is an immutable fact about one installed package.
type Record struct {
	Name    string
	Version string
	Build   string
}

// String renders the record in the canonical name-version-build form used
// by package filenames and materialized package lists.
func (r Record) String() string {
	return fmt.Sprintf("%s-%s-%s", r.Name, r.Version, r.Build)
}

// Inventory maps a package name to exactly one Record.
type Inventory map[string]Record

// NewInventory builds an Inventory from records. When the same name occurs
// more than once the last record wins, matching the provider's behavior for
// duplicate installs.
func NewInventory(records []Record) Inventory {
	inv := make(Inventory, len(records))
	for _, r := range records {
		inv[r.Name] = r
	}
	return inv
}

// Load reads the installed-package records from an environment prefix,
// sorted by name. The prefix must exist and contain a conda-meta directory;
// anything else is ErrLocationNotFound.
func Load(root string) ([]Record, error) {
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, root)
	}

	meta := filepath.Join(root, metaDir)
	entries, err := os.ReadDir(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not an environment root", ErrLocationNotFound, root)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(meta, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading package record %s: %w", entry.Name(), err)
		}

		parsed := gjson.ParseBytes(data)
		name := parsed.Get("name").String()
		if name == "" {
			log.Warnf("skipping malformed package record: %s", entry.Name())
			continue
		}

		records = append(records, Record{
			Name:    strings.ToLower(name),
			Version: parsed.Get("version").String(),
			Build:   parsed.Get("build").String(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	log.Debugf("loaded %d package records from %s", len(records), root)
	return records, nil
}

// ResolveName resolves a named environment to its prefix by searching the
// configured envs_dirs (config key "envs_dirs", default ~/.conda/envs).
func ResolveName(name string) (string, error) {
	dirs, _ := config.GetStringSlice("envs_dirs", []string{"~/.conda/envs"})

	for _, dir := range dirs {
		root := filepath.Join(expandHome(dir), name)
		if fi, err := os.Stat(filepath.Join(root, metaDir)); err == nil && fi.IsDir() {
			return root, nil
		}
	}

	return "", fmt.Errorf("%w: no environment named %q in %v", ErrLocationNotFound, name, dirs)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
