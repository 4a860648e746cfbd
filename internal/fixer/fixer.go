// Package fixer repairs the drift scaffolding can undo: it inserts missing
// scopes and puts misordered ones back in expected order. Everything else in
// the file, user code included, is copied through unchanged.
package fixer

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"btt/internal/domain"
	"btt/internal/emitter"
	"btt/internal/extractor"
)

// Fixer rewrites scaffolded test files
type Fixer struct {
	emitter   *emitter.Emitter
	extractor *extractor.Extractor
}

// NewFixer creates a new Fixer rendering inserted scopes with em
func NewFixer(em *emitter.Emitter) *Fixer {
	return &Fixer{
		emitter:   em,
		extractor: extractor.NewExtractor(),
	}
}

// Fixable counts the entries Fix can repair
func Fixable(diff domain.Diff) int {
	return diff.Count(domain.DiffMissing) + diff.Count(domain.DiffReordered)
}

// Fix rewrites src so that every Missing entry of diff is scaffolded and every
// scope holding a Reordered entry lists its children in expected order. A
// missing scope goes right after its nearest preceding expected sibling, or
// before its nearest following one. Other entries are left for the user.
// The result is gofmt-formatted.
func (f *Fixer) Fix(filename string, src []byte, expected *domain.Model, diff domain.Diff) ([]byte, error) {
	if expected == nil {
		return nil, fmt.Errorf("no expected model")
	}
	source, err := f.extractor.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	r := &repair{
		emitter: f.emitter,
		src:     src,
		missing: make(map[string]bool),
		reorder: make(map[string]bool),
	}
	for _, entry := range diff {
		switch entry.Kind {
		case domain.DiffMissing:
			r.missing[key(entry.Path)] = true
		case domain.DiffReordered:
			r.reorder[key(entry.Path[:len(entry.Path)-1])] = true
		}
	}

	var b bytes.Buffer
	r.region(&b, nil, 0, len(src), len(src), expected.Roots, source.Roots, "")

	formatted, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format fixed source: %w", err)
	}
	return formatted, nil
}

type repair struct {
	emitter *emitter.Emitter
	src     []byte
	missing map[string]bool
	reorder map[string]bool
}

// region copies src[start:end], the span holding the scopes in actual.
// Scopes with no sibling to attach to are inserted at tail.
func (r *repair) region(b *bytes.Buffer, path []string, start, end, tail int, expected []*domain.ModelNode, actual []*extractor.Scope, param string) {
	byID := make(map[string]*extractor.Scope, len(actual))
	for _, scope := range actual {
		byID[scope.Node.Identifier] = scope
	}

	// Slots are the positions of expected scopes found in the file. Without
	// reordering every scope keeps its own slot.
	var slots []int
	var present []*domain.ModelNode
	for j, scope := range actual {
		if exp := find(expected, scope.Node.Identifier); exp != nil {
			slots = append(slots, j)
			present = append(present, exp)
		}
	}
	if r.reorder[key(path)] {
		present = present[:0]
		for _, exp := range expected {
			if _, ok := byID[exp.Identifier]; ok {
				present = append(present, exp)
			}
		}
	}
	occupant := make(map[int]*domain.ModelNode, len(slots))
	slotOf := make(map[string]int, len(slots))
	for k, j := range slots {
		occupant[j] = present[k]
		slotOf[present[k].Identifier] = j
	}

	before := make(map[int][]string)
	after := make(map[int][]string)
	var atTail []string
	for i, exp := range expected {
		if _, ok := byID[exp.Identifier]; ok || !r.missing[key(extend(path, exp.Identifier))] {
			continue
		}
		text := r.render(exp, param)
		if j, ok := nearest(expected, slotOf, i, -1); ok {
			after[j] = append(after[j], text)
		} else if j, ok := nearest(expected, slotOf, i, 1); ok {
			before[j] = append(before[j], text)
		} else {
			atTail = append(atTail, text)
		}
	}

	separator := "\n"
	if param == "" {
		separator = "\n\n"
	}

	cursor := start
	for j, scope := range actual {
		b.Write(r.src[cursor:scope.Start])
		for _, text := range before[j] {
			b.WriteString(text + separator)
		}
		if exp, ok := occupant[j]; ok {
			r.scope(b, path, exp, byID[exp.Identifier])
		} else {
			b.Write(r.src[scope.Start:scope.End])
		}
		for _, text := range after[j] {
			b.WriteString(separator + text)
		}
		cursor = scope.End
	}

	if len(atTail) > 0 {
		b.Write(r.src[cursor:tail])
		for _, text := range atTail {
			b.WriteString(separator + text)
		}
		b.WriteString("\n")
		cursor = tail
	}
	b.Write(r.src[cursor:end])
}

// scope copies one matched scope, repairing inside it when a branch is
// expected. A leaf expected where the file has a branch is left as is.
func (r *repair) scope(b *bytes.Buffer, path []string, exp *domain.ModelNode, act *extractor.Scope) {
	if exp.Kind != domain.KindBranch {
		b.Write(r.src[act.Start:act.End])
		return
	}
	r.region(b, extend(path, exp.Identifier), act.Start, act.End, act.Rbrace, exp.Children, act.Children, act.Param)
}

func (r *repair) render(scope *domain.ModelNode, param string) string {
	if param == "" {
		return strings.TrimRight(r.emitter.RenderRoot(scope), "\n")
	}
	return strings.TrimRight(r.emitter.RenderScope(scope, param), "\n")
}

// nearest returns the slot of the closest expected sibling of expected[i]
// present in the file, searching in direction step
func nearest(expected []*domain.ModelNode, slotOf map[string]int, i, step int) (int, bool) {
	for k := i + step; k >= 0 && k < len(expected); k += step {
		if j, ok := slotOf[expected[k].Identifier]; ok {
			return j, true
		}
	}
	return 0, false
}

func find(nodes []*domain.ModelNode, id string) *domain.ModelNode {
	for _, node := range nodes {
		if node.Identifier == id {
			return node
		}
	}
	return nil
}

func key(path []string) string {
	return strings.Join(path, "/")
}

func extend(path []string, id string) []string {
	return append(append([]string{}, path...), id)
}
