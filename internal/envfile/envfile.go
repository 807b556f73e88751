// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package envfile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSpecNotFound indicates the environment file could not be located or
// parsed. It is fatal and re-raised without modification.
var ErrSpecNotFound = errors.New("environment specification not found")

// Environment is a parsed environment description. Dependencies are kept in
// two ordered lists keyed "conda" and "pip", in file order.
type Environment struct {
	Name         string
	dependencies map[string][]string
}

// Dependencies returns the ordered specification lists keyed by installer
// ("conda" and "pip"). Absent keys map to nil.
func (e *Environment) Dependencies() map[string][]string {
	return e.dependencies
}

// SpecList returns the flat specification list to reconcile against: the
// conda entries followed by the pip entries, in that order.
func (e *Environment) SpecList() []string {
	var specs []string
	specs = append(specs, e.dependencies["conda"]...)
	specs = append(specs, e.dependencies["pip"]...)
	return specs
}

// document mirrors the top-level YAML shape of an environment file. The
// dependencies sequence mixes plain spec strings with a nested pip map, so
// it is decoded generically and sorted out in Parse.
type document struct {
	Name         string `yaml:"name"`
	Dependencies []any  `yaml:"dependencies"`
}

// Parse decodes environment-file YAML. Plain string entries are conda
// specifications; a nested map entry keyed "pip" carries the pip
// specification list. Any other shape is rejected.
func Parse(data []byte) (*Environment, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpecNotFound, err)
	}

	env := &Environment{
		Name:         doc.Name,
		dependencies: map[string][]string{},
	}

	for _, dep := range doc.Dependencies {
		switch v := dep.(type) {
		case string:
			env.dependencies["conda"] = append(env.dependencies["conda"], v)
		case map[string]any:
			pip, ok := v["pip"]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected dependency map", ErrSpecNotFound)
			}
			entries, ok := pip.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: pip dependencies must be a list", ErrSpecNotFound)
			}
			for _, entry := range entries {
				s, ok := entry.(string)
				if !ok {
					return nil, fmt.Errorf("%w: pip dependency is not a string", ErrSpecNotFound)
				}
				env.dependencies["pip"] = append(env.dependencies["pip"], s)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected dependency entry %v", ErrSpecNotFound, dep)
		}
	}

	return env, nil
}

// scheme returns the URL scheme of a file argument, or "" for a local path.
func scheme(fileArg string) string {
	s, _, found := strings.Cut(fileArg, "://")
	if !found {
		return ""
	}
	return strings.ToLower(s)
}
