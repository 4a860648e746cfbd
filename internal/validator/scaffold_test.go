package validator

import (
	"strconv"
	"strings"
	"testing"

	"btt/internal/domain"
	"btt/internal/emitter"
	"btt/internal/extractor"
	"btt/internal/naming"
)

// deleteSubtest removes the t.Run block named id from scaffolded source
func deleteSubtest(t *testing.T, src, id string) string {
	t.Helper()
	lines := strings.Split(src, "\n")
	opening := ".Run(" + strconv.Quote(id) + ", "
	for i, line := range lines {
		if !strings.Contains(line, opening) {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, "\t"))]
		for j := i + 1; j < len(lines); j++ {
			if lines[j] == indent+"})" {
				return strings.Join(append(lines[:i:i], lines[j+1:]...), "\n")
			}
		}
	}
	t.Fatalf("subtest %s not found in:\n%s", id, src)
	return ""
}

func TestValidator_Compare_DeletedSubtest(t *testing.T) {
	forest := domain.Forest{
		domain.NewBranch("HashPair",
			domain.NewBranch("ConditionA", domain.NewLeaf("it reverts")),
			domain.NewBranch("ConditionB",
				domain.NewBranch("when the pair is sorted", domain.NewLeaf("it hashes in order")),
				domain.NewLeaf("it reverts"),
			),
			domain.NewLeaf("it succeeds"),
		),
	}

	strategy := naming.Default()
	expected, err := strategy.Model(forest)
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	source, err := emitter.NewEmitter(emitter.Options{}, strategy).Emit(forest)
	if err != nil {
		t.Fatalf("failed to emit: %v", err)
	}

	var targets [][]string
	expected.Walk(func(path []string, node *domain.ModelNode) {
		if node.Kind == domain.KindLeaf {
			targets = append(targets, path)
		}
	})

	for _, target := range targets {
		t.Run(strings.Join(target, "/"), func(t *testing.T) {
			// Leaf names repeat across branches, so cut inside the parent's block
			parent := strings.Join(target[:len(target)-1], "/")
			edited := string(source)
			if len(target) > 2 {
				start := strings.Index(edited, strconv.Quote(target[len(target)-2])+", ")
				edited = edited[:start] + deleteSubtest(t, edited[start:], target[len(target)-1])
			} else {
				edited = deleteSubtest(t, edited, target[len(target)-1])
			}

			actual, err := extractor.NewExtractor().Extract("hash_pair_test.go", []byte(edited))
			if err != nil {
				t.Fatalf("failed to extract edited source: %v\n%s", err, edited)
			}

			entries, err := New(DefaultPolicy()).Compare(expected, actual)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entries) != 1 || entries[0].Kind != domain.DiffMissing {
				t.Fatalf("expected exactly one missing entry under %s, got %v", parent, entries)
			}
			if strings.Join(entries[0].Path, "/") != strings.Join(target, "/") {
				t.Errorf("expected path %v, got %v", target, entries[0].Path)
			}
		})
	}
}
