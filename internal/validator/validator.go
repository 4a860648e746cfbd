// Package validator compares an expected structural model with an actual one
// and reports every discrepancy in a single pass.
package validator

import (
	"fmt"
	"strconv"

	"btt/internal/domain"
)

// Validator compares structural models under a Policy
type Validator struct {
	policy Policy
}

// New creates a new Validator
func New(policy Policy) *Validator {
	return &Validator{policy: policy.withDefaults()}
}

// Compare returns the discrepancies between expected and actual. Roots are
// compared as the children of one virtual top scope. Entries follow the
// scopes left to right in pre-order: an unexpected scope is reported before
// the first matched sibling that follows it in the actual file. The only
// error is a *domain.ModelError for a model that cannot be compared.
func (v *Validator) Compare(expected, actual *domain.Model) (domain.Diff, error) {
	c := &comparison{policy: v.policy, diff: domain.Diff{}}
	if err := c.scope(nil, roots(expected), roots(actual)); err != nil {
		return nil, err
	}
	return c.diff, nil
}

type comparison struct {
	policy Policy
	diff   domain.Diff
}

func (c *comparison) scope(path []string, expected, actual []*domain.ModelNode) error {
	expectedIndex, err := index("expected", path, expected)
	if err != nil {
		return err
	}
	actualIndex, err := index("actual", path, actual)
	if err != nil {
		return err
	}

	inOrder := ordered(expected, actualIndex)
	renamedTo := c.renames(expected, actual, actualIndex, expectedIndex)
	renamed := make(map[int]bool, len(renamedTo))
	for _, k := range renamedTo {
		renamed[k] = true
	}

	// extras reports the unexpected actual scopes left of position limit
	next := 0
	extras := func(limit int) {
		for ; next < limit && next < len(actual); next++ {
			act := actual[next]
			if _, ok := expectedIndex[act.Identifier]; ok || renamed[next] {
				continue
			}
			c.add(domain.DiffEntry{
				Kind:     domain.DiffExtra,
				Severity: domain.SeverityError,
				Path:     extend(path, act.Identifier),
				Actual:   act.Kind.String(),
				Line:     act.Line,
			})
		}
	}

	for i, exp := range expected {
		entryPath := extend(path, exp.Identifier)
		j, found := actualIndex[exp.Identifier]

		if !found {
			if k, ok := renamedTo[i]; ok {
				c.add(domain.DiffEntry{
					Kind:     domain.DiffRenamed,
					Severity: domain.SeverityError,
					Path:     entryPath,
					Expected: exp.Identifier,
					Actual:   actual[k].Identifier,
					Line:     actual[k].Line,
				})
				continue
			}
			c.add(domain.DiffEntry{
				Kind:     domain.DiffMissing,
				Severity: domain.SeverityError,
				Path:     entryPath,
				Expected: exp.Kind.String(),
			})
			continue
		}

		extras(j)
		act := actual[j]
		if !compatible(exp, act) {
			c.add(domain.DiffEntry{
				Kind:     domain.DiffKindMismatch,
				Severity: domain.SeverityError,
				Path:     entryPath,
				Expected: exp.Kind.String(),
				Actual:   act.Kind.String(),
				Line:     act.Line,
			})
			continue
		}

		if !inOrder[exp.Identifier] && c.policy.Reordered != domain.SeverityOff {
			c.add(domain.DiffEntry{
				Kind:     domain.DiffReordered,
				Severity: c.policy.Reordered,
				Path:     entryPath,
				Expected: strconv.Itoa(i + 1),
				Actual:   strconv.Itoa(j + 1),
				Line:     act.Line,
			})
		}

		if exp.Kind == domain.KindBranch {
			if err := c.scope(entryPath, exp.Children, act.Children); err != nil {
				return err
			}
		}
	}
	extras(len(actual))

	return nil
}

// compatible reports whether act can stand for exp. A branch whose scopes
// were all deleted reads back as a leaf and still matches, so its children
// are reported missing one by one.
func compatible(exp, act *domain.ModelNode) bool {
	if exp.Kind == act.Kind {
		return true
	}
	return exp.Kind == domain.KindBranch && act.Kind == domain.KindLeaf && len(act.Children) == 0
}

// renames pairs missing expected scopes with the actual scope they were
// renamed to, keyed by expected position
func (c *comparison) renames(expected, actual []*domain.ModelNode, actualIndex, expectedIndex map[string]int) map[int]int {
	result := make(map[int]int)
	if !c.policy.DetectRenames {
		return result
	}
	for i, exp := range expected {
		if _, found := actualIndex[exp.Identifier]; found {
			continue
		}
		if k, ok := renameCandidate(i, exp, actual, expectedIndex); ok {
			result[i] = k
		}
	}
	return result
}

// renameCandidate finds the unexpected actual scope occupying the same
// sibling position as a missing expected scope, with a compatible kind
func renameCandidate(i int, exp *domain.ModelNode, actual []*domain.ModelNode, expectedIndex map[string]int) (int, bool) {
	if i >= len(actual) {
		return 0, false
	}
	candidate := actual[i]
	if _, ok := expectedIndex[candidate.Identifier]; ok {
		return 0, false
	}
	if !compatible(exp, candidate) {
		return 0, false
	}
	return i, true
}

func (c *comparison) add(entry domain.DiffEntry) {
	c.diff = append(c.diff, entry)
}

// ordered marks the shared identifiers that lie on a longest common
// subsequence of both sibling orders
func ordered(expected []*domain.ModelNode, actualIndex map[string]int) map[string]bool {
	var shared []string
	var positions []int
	for _, exp := range expected {
		if j, ok := actualIndex[exp.Identifier]; ok {
			shared = append(shared, exp.Identifier)
			positions = append(positions, j)
		}
	}

	result := make(map[string]bool, len(shared))
	for _, k := range longestIncreasing(positions) {
		result[shared[k]] = true
	}
	return result
}

func index(side string, path []string, nodes []*domain.ModelNode) (map[string]int, error) {
	result := make(map[string]int, len(nodes))
	for i, node := range nodes {
		if node == nil {
			return nil, &domain.ModelError{Side: side, Path: path, Reason: fmt.Sprintf("nil scope at position %d", i+1)}
		}
		if _, dup := result[node.Identifier]; dup {
			return nil, &domain.ModelError{Side: side, Path: path, Reason: fmt.Sprintf("duplicate identifier %q", node.Identifier)}
		}
		result[node.Identifier] = i
	}
	return result, nil
}

func roots(model *domain.Model) []*domain.ModelNode {
	if model == nil {
		return nil
	}
	return model.Roots
}

func extend(path []string, id string) []string {
	return append(append([]string{}, path...), id)
}
