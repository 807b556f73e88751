// Copyright (c) 2026 The envctl authors.
// SPDX-License-Identifier: Apache-2.0

package matchspec

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Spec is a single parsed specification entry of the form
// name[operator version[=build]]. The zero operator matches any installed
// version and build.
type Spec struct {
	// Raw is the original entry text, kept verbatim for reporting.
	Raw  string
	Name string

	op      string
	version string
	build   string
}

// operators that may follow the package name, longest first so that ">="
// is not mistaken for ">".
var operators = []string{"==", ">=", "<=", "!=", "=", ">", "<"}

// Parse parses one specification entry. Accepted forms:
//
//	name
//	name=version          conda, version may end with * for a prefix match
//	name=version=build    conda, build may end with * or be *
//	name==version         pip / conda exact
//	name>=version         ordered; also <=, >, <, !=
//
// The name is normalized to lower case. A structurally invalid entry
// returns an error naming the entry; callers are expected to fail fast.
func Parse(raw string) (*Spec, error) {
	entry := strings.TrimSpace(raw)
	if entry == "" {
		return nil, fmt.Errorf("invalid match specification: empty entry")
	}

	cut := strings.IndexAny(entry, "=<>!")
	if cut == -1 {
		if strings.ContainsAny(entry, " \t") {
			return nil, fmt.Errorf("invalid match specification %q", raw)
		}
		return &Spec{Raw: raw, Name: strings.ToLower(entry)}, nil
	}

	name := strings.TrimSpace(entry[:cut])
	if name == "" {
		return nil, fmt.Errorf("invalid match specification %q: missing package name", raw)
	}
	if strings.ContainsAny(name, " \t") {
		return nil, fmt.Errorf("invalid match specification %q", raw)
	}

	rest := strings.TrimSpace(entry[cut:])
	var op string
	for _, candidate := range operators {
		if strings.HasPrefix(rest, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return nil, fmt.Errorf("invalid match specification %q", raw)
	}

	spec := &Spec{
		Raw:  raw,
		Name: strings.ToLower(name),
		op:   op,
	}

	constraint := strings.TrimSpace(rest[len(op):])
	if constraint == "" {
		return nil, fmt.Errorf("invalid match specification %q: missing version after %q", raw, op)
	}

	// Only the conda forms carry a build string.
	if op == "=" || op == "==" {
		if version, build, found := strings.Cut(constraint, "="); found {
			if version == "" || build == "" {
				return nil, fmt.Errorf("invalid match specification %q", raw)
			}
			spec.version = version
			spec.build = build
			return spec, nil
		}
	} else if strings.Contains(constraint, "=") {
		return nil, fmt.Errorf("invalid match specification %q", raw)
	}

	spec.version = constraint
	return spec, nil
}

// Match reports whether an installed version/build pair satisfies the spec.
// Name matching is the caller's concern; Match only evaluates the version
// and build predicates.
func (s *Spec) Match(version, build string) bool {
	if s.op == "" {
		return true
	}

	if !s.matchVersion(version) {
		return false
	}

	if s.build == "" {
		return true
	}
	// Build strings are opaque, so a build wildcard is a plain prefix match.
	if prefix, ok := strings.CutSuffix(s.build, "*"); ok {
		return strings.HasPrefix(build, prefix)
	}
	return s.build == build
}

// String returns the original entry text.
func (s *Spec) String() string {
	return s.Raw
}

func (s *Spec) matchVersion(installed string) bool {
	switch s.op {
	case "=", "==":
		return matchToken(s.version, installed)
	case "!=":
		return !matchToken(s.version, installed)
	}

	// Ordered operators. Semantic comparison when both sides parse as
	// versions, plain string ordering otherwise (versions are opaque
	// tokens as far as the inventory is concerned).
	want, errW := goversion.NewVersion(s.version)
	have, errH := goversion.NewVersion(installed)

	var cmp int
	if errW == nil && errH == nil {
		cmp = have.Compare(want)
	} else {
		cmp = strings.Compare(installed, s.version)
	}

	switch s.op {
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	}
	return false
}

// matchToken compares a constraint token to an installed value. A trailing
// "*" makes the token a segment-prefix match ("1.2.*" matches "1.2.3" and
// "1.2" but not "1.25"); a bare "*" matches anything.
func matchToken(token, value string) bool {
	if token == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(token, "*"); ok {
		prefix = strings.TrimSuffix(prefix, ".")
		return value == prefix || strings.HasPrefix(value, prefix+".")
	}
	return token == value
}
