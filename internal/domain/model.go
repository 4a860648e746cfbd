package domain

// ModelNode is one scope of a structural model: a nesting scope for a
// branch, a test unit for a leaf.
type ModelNode struct {
	Identifier  string       `json:"identifier"`
	Kind        Kind         `json:"kind"`
	Description string       `json:"description,omitempty"`
	Line        int          `json:"line,omitempty"`
	Children    []*ModelNode `json:"children,omitempty"`
}

// Model is an ordered forest of scopes, either expected (built from a tree)
// or actual (extracted from source).
type Model struct {
	Roots []*ModelNode `json:"roots"`
}

// Find returns the node at the given identifier path, or nil
func (m *Model) Find(path ...string) *ModelNode {
	if m == nil || len(path) == 0 {
		return nil
	}
	nodes := m.Roots
	var found *ModelNode
	for _, id := range path {
		found = nil
		for _, node := range nodes {
			if node.Identifier == id {
				found = node
				break
			}
		}
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}

// Walk visits every node in pre-order, passing the identifier path of each
func (m *Model) Walk(fn func(path []string, node *ModelNode)) {
	if m == nil {
		return
	}
	var walk func(prefix []string, nodes []*ModelNode)
	walk = func(prefix []string, nodes []*ModelNode) {
		for _, node := range nodes {
			path := append(append([]string{}, prefix...), node.Identifier)
			fn(path, node)
			walk(path, node.Children)
		}
	}
	walk(nil, m.Roots)
}

// Count returns the number of branch and leaf scopes in the model
func (m *Model) Count() (branches int, leaves int) {
	m.Walk(func(_ []string, node *ModelNode) {
		if node.Kind == KindLeaf {
			leaves++
		} else {
			branches++
		}
	})
	return branches, leaves
}
