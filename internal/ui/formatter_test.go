package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"btt/internal/config"
	"btt/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func driftResult() domain.CheckResult {
	return domain.CheckResult{
		TreePath: "/project/hash_pair.tree.yml",
		TestPath: "/project/hash_pair_test.go",
		Entries: domain.Diff{
			{Kind: domain.DiffMissing, Severity: domain.SeverityError, Path: []string{"hash_pair", "it_succeeds"}, Expected: "leaf"},
			{Kind: domain.DiffExtra, Severity: domain.SeverityError, Path: []string{"hash_pair", "it_passes"}, Actual: "leaf", Line: 14},
			{Kind: domain.DiffReordered, Severity: domain.SeverityWarning, Path: []string{"hash_pair", "condition_a", "it_reverts"}, Expected: "1", Actual: "2", Line: 9},
		},
	}
}

func TestEntryLabel(t *testing.T) {
	tests := []struct {
		entry    domain.DiffEntry
		expected string
	}{
		{
			entry:    domain.DiffEntry{Kind: domain.DiffMissing, Path: []string{"unit", "it_works"}, Expected: "leaf"},
			expected: "- it_works (missing leaf)",
		},
		{
			entry:    domain.DiffEntry{Kind: domain.DiffExtra, Path: []string{"unit", "it_passes"}, Actual: "leaf", Line: 7},
			expected: "+ it_passes (unexpected leaf) line 7",
		},
		{
			entry:    domain.DiffEntry{Kind: domain.DiffRenamed, Path: []string{"unit", "it_works"}, Expected: "it_works", Actual: "it_passes"},
			expected: "~ it_works -> it_passes (renamed)",
		},
		{
			entry:    domain.DiffEntry{Kind: domain.DiffKindMismatch, Path: []string{"unit", "when_a"}, Expected: "branch", Actual: "leaf"},
			expected: "! when_a (expected branch, found leaf)",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.entry.Kind), func(t *testing.T) {
			if got := EntryLabel(tt.entry); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatter_PrintDrift(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = "/project"
	f := NewFormatter(cfg)
	var out bytes.Buffer
	f.SetOutput(&out)

	if err := f.PrintDrift(driftResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"hash_pair_test.go",
		"hash_pair",
		"condition_a",
		"- it_succeeds (missing leaf)",
		"+ it_passes (unexpected leaf) line 14",
		"it_reverts (expected position 1, found 2) line 9",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Count(output, "hash_pair\n") != 1 {
		t.Errorf("expected scopes shared between entries:\n%s", output)
	}
}

func TestFormatter_PrintCheckSummary(t *testing.T) {
	cfg := config.New()
	f := NewFormatter(cfg)
	var out bytes.Buffer
	f.SetOutput(&out)

	t.Run("all conforming", func(t *testing.T) {
		out.Reset()
		f.PrintCheckSummary(&domain.CheckReport{Meta: domain.CheckReportMeta{TotalSpecs: 2, ConformingSpecs: 2}})
		if !strings.Contains(out.String(), "All test files match their specs") {
			t.Errorf("unexpected summary:\n%s", out.String())
		}
	})

	t.Run("drift listed", func(t *testing.T) {
		out.Reset()
		f.PrintCheckSummary(&domain.CheckReport{
			Meta:    domain.CheckReportMeta{TotalSpecs: 1, DriftedSpecs: 1, Entries: 3},
			Details: []domain.CheckResult{driftResult()},
		})
		output := out.String()
		if !strings.Contains(output, "1 spec(s) drifted") || !strings.Contains(output, "it_succeeds") {
			t.Errorf("unexpected summary:\n%s", output)
		}
	})
}

func TestFormatter_PrintSpecList(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "hash_pair.tree.yml")
	content := "trees:\n  - description: HashPair\n    children:\n      - description: it succeeds\n      - description: it succeeds\n"
	if err := os.WriteFile(spec, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write spec: %v", err)
	}

	cfg := config.New()
	cfg.ProjectPath = dir
	f := NewFormatter(cfg)
	var out bytes.Buffer
	f.SetOutput(&out)

	if err := f.PrintSpecList([]string{spec}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Found 1 spec file(s)", "HashPair [hash_pair]", "it succeeds [it_succeeds]", "it succeeds [it_succeeds_2]"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatDriftDetails(t *testing.T) {
	result := driftResult()
	result.TestFileMissing = true

	details := FormatDriftDetails(result)
	for _, want := range []string{"Test file does not exist", "Entries (3)", "/hash_pair/it_succeeds", "line 14"} {
		if !strings.Contains(details, want) {
			t.Errorf("expected %q in details:\n%s", want, details)
		}
	}
}

func TestDriftedResults(t *testing.T) {
	report := &domain.CheckReport{Details: []domain.CheckResult{
		{TestPath: "a_test.go", Entries: domain.Diff{}},
		driftResult(),
		{TestPath: "c_test.go", ErrorMessage: "parse: line 3: bad"},
	}}

	indexes := DriftedResults(report)
	if len(indexes) != 2 || indexes[0] != 1 || indexes[1] != 2 {
		t.Errorf("expected [1 2], got %v", indexes)
	}
}
