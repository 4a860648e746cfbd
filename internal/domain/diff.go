package domain

import (
	"fmt"
	"strings"
)

// DiffKind classifies a discrepancy between an expected and an actual model
type DiffKind string

const (
	DiffMissing      DiffKind = "missing"
	DiffExtra        DiffKind = "extra"
	DiffRenamed      DiffKind = "renamed"
	DiffReordered    DiffKind = "reordered"
	DiffKindMismatch DiffKind = "kind_mismatch"
)

// Severity decides whether a discrepancy fails a check
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityOff     Severity = "off"
)

// ParseSeverity converts a configuration value into a Severity
func ParseSeverity(value string) (Severity, error) {
	switch s := Severity(strings.ToLower(strings.TrimSpace(value))); s {
	case SeverityError, SeverityWarning, SeverityOff:
		return s, nil
	default:
		return "", fmt.Errorf("unknown severity %q (want error, warning or off)", value)
	}
}

// DiffEntry is one discrepancy. Path holds the identifiers from the root
// down to and including the offending scope.
type DiffEntry struct {
	Kind     DiffKind `json:"kind"`
	Severity Severity `json:"severity"`
	Path     []string `json:"path"`
	Expected string   `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// Scope returns the identifier path of the scope containing the discrepancy
func (e DiffEntry) Scope() []string {
	if len(e.Path) == 0 {
		return nil
	}
	return e.Path[:len(e.Path)-1]
}

// Name returns the identifier the entry is about
func (e DiffEntry) Name() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// String renders the entry as a single report line
func (e DiffEntry) String() string {
	location := strings.Join(e.Path, "/")
	switch e.Kind {
	case DiffMissing:
		return fmt.Sprintf("%s: %s %s is missing", location, e.Expected, e.Name())
	case DiffExtra:
		return fmt.Sprintf("%s: unexpected %s %s", location, e.Actual, e.Name())
	case DiffRenamed:
		return fmt.Sprintf("%s: %s appears renamed to %s", location, e.Expected, e.Actual)
	case DiffReordered:
		return fmt.Sprintf("%s: expected at position %s, found at position %s", location, e.Expected, e.Actual)
	case DiffKindMismatch:
		return fmt.Sprintf("%s: expected a %s, found a %s", location, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("%s: %s", location, e.Kind)
	}
}

// Diff is the ordered result of a structural comparison. An empty diff means
// full conformance.
type Diff []DiffEntry

// Failed reports whether any entry has error severity
func (d Diff) Failed() bool {
	for _, entry := range d {
		if entry.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many entries have the given kind
func (d Diff) Count(kind DiffKind) int {
	n := 0
	for _, entry := range d {
		if entry.Kind == kind {
			n++
		}
	}
	return n
}
