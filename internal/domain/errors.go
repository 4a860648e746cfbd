package domain

import (
	"fmt"
	"strings"
)

// GenerationError reports a malformed tree. Path holds the descriptions from
// the root to the offending node.
type GenerationError struct {
	Path   []string
	Reason string
}

func (e *GenerationError) Error() string {
	if len(e.Path) == 0 {
		return "generation: " + e.Reason
	}
	return fmt.Sprintf("generation: %s: %s", strings.Join(quoteAll(e.Path), " > "), e.Reason)
}

// ParseError reports source text that does not follow the emission convention
type ParseError struct {
	Path   []string
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse: ")
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, "/"))
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ModelError reports a structural model that cannot be compared, such as one
// with duplicate identifiers under a single parent
type ModelError struct {
	Side   string
	Path   []string
	Reason string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("malformed %s model at /%s: %s", e.Side, strings.Join(e.Path, "/"), e.Reason)
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return quoted
}
