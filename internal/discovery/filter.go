package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows spec files down by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the specs whose base name matches pattern. Patterns
// with wildcards match as a glob or, failing that, when their fragments occur
// in order anywhere in the name ("*hash*" matches "hash_pair.tree.yml").
// Patterns without wildcards match as a substring.
func (f *Filter) FilterByName(specs []string, pattern string) []string {
	if pattern == "" {
		return specs
	}

	var filtered []string
	for _, spec := range specs {
		if matchName(filepath.Base(spec), pattern) {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "?") {
		return false
	}

	rest := name
	fragments := 0
	for _, fragment := range strings.Split(pattern, "*") {
		if fragment == "" {
			continue
		}
		i := strings.Index(rest, fragment)
		if i < 0 {
			return false
		}
		rest = rest[i+len(fragment):]
		fragments++
	}
	return fragments > 0
}
