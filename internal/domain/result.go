package domain

import "time"

// CheckResult is the outcome of checking one tree spec against its test file
type CheckResult struct {
	TreePath        string        `json:"tree_path"`
	TestPath        string        `json:"test_path"`
	TestFileMissing bool          `json:"test_file_missing,omitempty"`
	Entries         Diff          `json:"entries"`
	Error           error         `json:"-"`
	ErrorMessage    string        `json:"error,omitempty"`
	Duration        time.Duration `json:"-"`
	Resolved        bool          `json:"resolved,omitempty"`
	Fixed           int           `json:"fixed,omitempty"` // Entries repaired by --fix; Entries holds what is left
	Source          []byte        `json:"-"`               // Fixed source, kept when printing to stdout
}

// Conforms reports whether the test file matches its spec under the active policy
func (r CheckResult) Conforms() bool {
	return r.Error == nil && r.ErrorMessage == "" && !r.Entries.Failed()
}

// Errored reports whether the check could not be completed
func (r CheckResult) Errored() bool {
	return r.Error != nil || r.ErrorMessage != ""
}

// ScaffoldResult is the outcome of scaffolding one tree spec
type ScaffoldResult struct {
	TreePath string
	TestPath string
	Source   []byte // Emitted source, kept when printing to stdout
	Written  bool   // Whether the test file was written
	Skipped  bool   // Test file already existed and --force was not given
	Error    error
}

// CheckReportMeta contains metadata about a check run
type CheckReportMeta struct {
	TotalSpecs      int     `json:"total_specs"`
	ConformingSpecs int     `json:"conforming_specs"`
	DriftedSpecs    int     `json:"drifted_specs"`
	ErroredSpecs    int     `json:"errored_specs"`
	Entries         int     `json:"entries"`
	Fixed           int     `json:"fixed"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// CheckReport is the complete stored output of a check run
type CheckReport struct {
	Meta    CheckReportMeta `json:"meta"`
	Details []CheckResult   `json:"details"`
}
