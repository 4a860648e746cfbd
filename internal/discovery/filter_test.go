package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		specs    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			specs:    []string{"transfer.tree.yml", "approve.tree.yml", "hash_pair.tree.yml"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			specs:    []string{"transfer.tree.yml", "approve.tree.yml", "hash_pair.tree.yml"},
			pattern:  "*pair.tree.yml",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			specs:    []string{"transfer.tree.yml", "transfer_from.tree.yml", "approve.tree.yml"},
			pattern:  "*transfer*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			specs:    []string{"transfer.tree.yml", "approve.tree.yml"},
			pattern:  "approve",
			expected: 1,
		},
		{
			name:     "no matches",
			specs:    []string{"transfer.tree.yml", "approve.tree.yml"},
			pattern:  "*mint*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			specs:    []string{"/path/to/transfer.tree.yml", "/path/to/approve.tree.yml"},
			pattern:  "*approve.tree.yml",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.specs, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty spec list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.tree.yml")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		specs := []string{"transfer_from.tree.yml", "transfer_to.tree.yml", "approve.tree.yml"}
		result := filter.FilterByName(specs, "*transfer*tree.yml")
		if len(result) < 2 {
			t.Errorf("expected at least 2 matches, got %d", len(result))
		}
	})
}
