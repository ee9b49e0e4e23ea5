package du

import (
	"path/filepath"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Patterns is a set of exclusion patterns.
//
// Plain patterns are path prefixes: a path matches when it equals the pattern
// or lies beneath it. Patterns containing glob metacharacters are matched
// against the base name and against the whole path. The zero value matches
// nothing.
type Patterns struct {
	prefixes mapset.Set[string]
	globs    []string
}

// NewPatterns builds a pattern set. Empty patterns are ignored; malformed
// globs are a ConfigError.
func NewPatterns(patterns ...string) (Patterns, error) {
	p := Patterns{prefixes: mapset.NewThreadUnsafeSet[string]()}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !isGlob(pattern) {
			p.prefixes.Add(filepath.Clean(pattern))

			continue
		}

		if _, err := filepath.Match(pattern, ""); err != nil {
			return Patterns{}, &ConfigError{Field: "exclude pattern " + pattern, Reason: err.Error()}
		}

		p.globs = append(p.globs, pattern)
	}

	return p, nil
}

// isGlob reports whether pattern contains glob metacharacters.
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// Len returns the number of distinct patterns.
func (p Patterns) Len() int {
	n := len(p.globs)
	if p.prefixes != nil {
		n += p.prefixes.Cardinality()
	}

	return n
}

// Strings returns the patterns in sorted order.
func (p Patterns) Strings() []string {
	out := slices.Clone(p.globs)
	if p.prefixes != nil {
		out = append(out, p.prefixes.ToSlice()...)
	}

	slices.Sort(out)

	return out
}

// Match reports whether path is excluded by any pattern.
func (p Patterns) Match(path string) bool {
	if p.Len() == 0 {
		return false
	}

	clean := filepath.Clean(path)

	if p.prefixes != nil {
		for cur := clean; ; {
			if p.prefixes.Contains(cur) {
				return true
			}

			parent := filepath.Dir(cur)
			if parent == cur {
				break
			}

			cur = parent
		}
	}

	base := filepath.Base(clean)

	for _, glob := range p.globs {
		if ok, _ := filepath.Match(glob, base); ok {
			return true
		}

		if ok, _ := filepath.Match(glob, clean); ok {
			return true
		}
	}

	return false
}
