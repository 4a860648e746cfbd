package domain

import (
	"strings"
	"testing"
)

func TestKind_Text(t *testing.T) {
	for _, kind := range []Kind{KindBranch, KindLeaf} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded Kind
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded != kind {
			t.Errorf("expected %s, got %s", kind, decoded)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("twig")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestTreeNode_Leaves(t *testing.T) {
	root := NewBranch("Unit",
		NewBranch("when a", NewLeaf("it x"), NewLeaf("it y")),
		NewLeaf("it z"),
	)

	var descriptions []string
	for _, leaf := range root.Leaves() {
		descriptions = append(descriptions, leaf.Description)
	}
	if strings.Join(descriptions, ",") != "it x,it y,it z" {
		t.Errorf("unexpected leaves %v", descriptions)
	}
}

func TestModel(t *testing.T) {
	model := &Model{Roots: []*ModelNode{
		{Identifier: "unit", Kind: KindBranch, Children: []*ModelNode{
			{Identifier: "when_a", Kind: KindBranch, Children: []*ModelNode{
				{Identifier: "it_x", Kind: KindLeaf},
			}},
			{Identifier: "it_z", Kind: KindLeaf},
		}},
	}}

	t.Run("find", func(t *testing.T) {
		if node := model.Find("unit", "when_a", "it_x"); node == nil || node.Kind != KindLeaf {
			t.Errorf("expected leaf it_x, got %+v", node)
		}
		if node := model.Find("unit", "it_x"); node != nil {
			t.Errorf("expected nil for wrong scope, got %+v", node)
		}
		if node := model.Find(); node != nil {
			t.Error("expected nil for empty path")
		}
	})

	t.Run("walk in pre-order", func(t *testing.T) {
		var paths []string
		model.Walk(func(path []string, _ *ModelNode) {
			paths = append(paths, strings.Join(path, "/"))
		})
		expected := "unit unit/when_a unit/when_a/it_x unit/it_z"
		if strings.Join(paths, " ") != expected {
			t.Errorf("expected %s, got %v", expected, paths)
		}
	})

	t.Run("count", func(t *testing.T) {
		branches, leaves := model.Count()
		if branches != 2 || leaves != 2 {
			t.Errorf("expected 2 branches and 2 leaves, got %d and %d", branches, leaves)
		}
	})
}

func TestDiffEntry_String(t *testing.T) {
	tests := []struct {
		entry    DiffEntry
		expected string
	}{
		{
			entry:    DiffEntry{Kind: DiffMissing, Path: []string{"hash_pair", "it_succeeds"}, Expected: "leaf"},
			expected: "hash_pair/it_succeeds: leaf it_succeeds is missing",
		},
		{
			entry:    DiffEntry{Kind: DiffExtra, Path: []string{"hash_pair", "it_passes"}, Actual: "leaf"},
			expected: "hash_pair/it_passes: unexpected leaf it_passes",
		},
		{
			entry:    DiffEntry{Kind: DiffReordered, Path: []string{"unit", "b"}, Expected: "2", Actual: "1"},
			expected: "unit/b: expected at position 2, found at position 1",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.entry.Kind), func(t *testing.T) {
			if got := tt.entry.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	entry := DiffEntry{Path: []string{"a", "b", "c"}}
	if strings.Join(entry.Scope(), "/") != "a/b" || entry.Name() != "c" {
		t.Errorf("unexpected scope %v or name %s", entry.Scope(), entry.Name())
	}
}

func TestParseSeverity(t *testing.T) {
	for _, input := range []string{"error", "Warning", " off "} {
		if _, err := ParseSeverity(input); err != nil {
			t.Errorf("unexpected error for %q: %v", input, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestErrors(t *testing.T) {
	genErr := &GenerationError{Path: []string{"Unit", "when empty"}, Reason: "branch has no children"}
	if genErr.Error() != `generation: "Unit" > "when empty": branch has no children` {
		t.Errorf("unexpected message %q", genErr.Error())
	}

	parseErr := &ParseError{Path: []string{"unit"}, Line: 7, Reason: "duplicate subtest"}
	if parseErr.Error() != "parse: line 7: unit: duplicate subtest" {
		t.Errorf("unexpected message %q", parseErr.Error())
	}
}
