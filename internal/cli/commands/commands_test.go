package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"btt/internal/cli"
	"btt/internal/config"
	"btt/internal/domain"
)

const hashPairSpec = `trees:
  - description: HashPair
    children:
      - description: ConditionA
        children:
          - description: it reverts
      - description: it succeeds
`

const swappedTest = `package hashpair

import "testing"

func Test_hash_pair(t *testing.T) {
	t.Run("it_succeeds", func(t *testing.T) {})
	t.Run("condition_a", func(t *testing.T) {
		t.Run("it_reverts", func(t *testing.T) {})
	})
}
`

const emptiedTest = `package hashpair

import "testing"

func Test_hash_pair(t *testing.T) {
	t.Run("condition_a", func(t *testing.T) {})
	t.Run("it_succeeds", func(t *testing.T) {})
}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// project writes files into a fresh project directory
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// execute runs btt against dir the way main wires it
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	rootCmd := &cobra.Command{
		Use:           "btt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg := config.New()
	var flags cli.Flags
	NewCommands(cfg).Register(rootCmd, &flags, cfg)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "-C", dir))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand_Execute(t *testing.T) {
	tests := []struct {
		name     string
		testFile string
		args     []string
		drift    bool
	}{
		{
			name:     "reordered scopes fail by default",
			testFile: swappedTest,
			args:     []string{"check"},
			drift:    true,
		},
		{
			name:     "reordered scopes pass as warnings",
			testFile: swappedTest,
			args:     []string{"check", "--reordered", "warning"},
			drift:    false,
		},
		{
			name:     "reordered scopes ignored",
			testFile: swappedTest,
			args:     []string{"check", "--reordered", "off"},
			drift:    false,
		},
		{
			name:     "deleted leaf fails",
			testFile: emptiedTest,
			args:     []string{"check", "--reordered", "warning"},
			drift:    true,
		},
		{
			name:  "missing test file fails",
			args:  []string{"check"},
			drift: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{"hash_pair.tree.yml": hashPairSpec}
			if tt.testFile != "" {
				files["hash_pair_test.go"] = tt.testFile
			}
			dir := project(t, files)

			_, err := execute(t, dir, tt.args...)
			if tt.drift && !errors.Is(err, ErrDrift) {
				t.Errorf("expected ErrDrift, got %v", err)
			}
			if !tt.drift && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := project(t, map[string]string{
		"hash_pair.tree.yml": hashPairSpec,
		"hash_pair_test.go":  emptiedTest,
	})

	out, err := execute(t, dir, "check", "--json")
	if !errors.Is(err, ErrDrift) {
		t.Fatalf("expected ErrDrift, got %v", err)
	}

	var report domain.CheckReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if report.Meta.TotalSpecs != 1 || report.Meta.DriftedSpecs != 1 {
		t.Errorf("unexpected meta: %+v", report.Meta)
	}
	if len(report.Details) != 1 || len(report.Details[0].Entries) != 1 {
		t.Fatalf("expected one result with one entry, got %+v", report.Details)
	}
	if got := strings.Join(report.Details[0].Entries[0].Path, "/"); got != "hash_pair/condition_a/it_reverts" {
		t.Errorf("expected missing it_reverts, got %s", got)
	}

	if _, err := os.Stat(filepath.Join(dir, config.DefaultOutputJSONDir, config.DefaultOutputJSONFile)); err != nil {
		t.Errorf("expected stored report: %v", err)
	}
}

func TestCheckCommand_Fix(t *testing.T) {
	t.Run("stdout requires fix", func(t *testing.T) {
		dir := project(t, map[string]string{"hash_pair.tree.yml": hashPairSpec})
		if _, err := execute(t, dir, "check", "--stdout"); err == nil || errors.Is(err, ErrDrift) {
			t.Errorf("expected usage error, got %v", err)
		}
	})

	t.Run("fix writes the repaired file", func(t *testing.T) {
		dir := project(t, map[string]string{
			"hash_pair.tree.yml": hashPairSpec,
			"hash_pair_test.go":  swappedTest,
		})

		out, err := execute(t, dir, "check", "--fix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "1 issue(s) fixed") {
			t.Errorf("expected fix summary, got:\n%s", out)
		}
		if _, err := execute(t, dir, "check"); err != nil {
			t.Errorf("expected repaired file to check clean, got %v", err)
		}
	})

	t.Run("fix with stdout prints without writing", func(t *testing.T) {
		dir := project(t, map[string]string{
			"hash_pair.tree.yml": hashPairSpec,
			"hash_pair_test.go":  emptiedTest,
		})

		out, err := execute(t, dir, "check", "--fix", "--stdout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "--> ") || !strings.Contains(out, `t.Run("it_reverts"`) {
			t.Errorf("expected fixed source, got:\n%s", out)
		}

		data, _ := os.ReadFile(filepath.Join(dir, "hash_pair_test.go"))
		if string(data) != emptiedTest {
			t.Error("expected test file to be untouched")
		}
	})
}

func TestScaffoldCommand_Execute(t *testing.T) {
	t.Run("writes test files that check clean", func(t *testing.T) {
		dir := project(t, map[string]string{"hash_pair.tree.yml": hashPairSpec})

		if _, err := execute(t, dir, "scaffold"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "hash_pair_test.go")); err != nil {
			t.Fatalf("expected test file: %v", err)
		}
		if _, err := execute(t, dir, "check"); err != nil {
			t.Errorf("expected clean check, got %v", err)
		}
	})

	t.Run("stdout prints without writing", func(t *testing.T) {
		dir := project(t, map[string]string{"hash_pair.tree.yml": hashPairSpec})

		out, err := execute(t, dir, "scaffold", "--stdout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "func Test_hash_pair(t *testing.T)") {
			t.Errorf("expected emitted source, got:\n%s", out)
		}
		if _, err := os.Stat(filepath.Join(dir, "hash_pair_test.go")); !errors.Is(err, os.ErrNotExist) {
			t.Error("expected no test file on disk")
		}
	})
}

func TestListCommand_Execute(t *testing.T) {
	dir := project(t, map[string]string{"hash_pair.tree.yml": hashPairSpec})

	out, err := execute(t, dir, "list", "--tree")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Found 1 spec file(s)", "[condition_a]", "[it_reverts]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
