package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("trees: []\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir,
		"specs/token/transfer.tree.yml",
		"specs/token/approve.tree.yml",
		"specs/pair/hash_pair.tree.yml",
		"specs/pair/hash_pair_test.go",
		"vendor/lib/ignored.tree.yml",
		".git/hooks/ignored.tree.yml",
		"notes.yml",
	)

	scanner := NewScanner([]string{"vendor"}, ".tree.yml")

	t.Run("scans spec files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should find 3 specs, not the ones in vendor or hidden directories
		if len(results) != 3 {
			t.Errorf("expected 3 spec files, got %d: %v", len(results), results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "notes.yml"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
