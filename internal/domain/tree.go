package domain

import "fmt"

// Kind tags a tree or model node as a branch (condition) or a leaf (assertion)
type Kind int

const (
	KindBranch Kind = iota
	KindLeaf
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name so reports stay readable
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "branch":
		*k = KindBranch
	case "leaf":
		*k = KindLeaf
	default:
		return fmt.Errorf("unknown node kind %q", string(text))
	}
	return nil
}

// TreeNode is one node of a BTT tree.
// A parent exclusively owns its children; sibling order is significant.
type TreeNode struct {
	Description string
	Kind        Kind
	Children    []*TreeNode
}

// Forest holds the roots described by a single tree file
type Forest []*TreeNode

// NewBranch creates a branch node with the given children
func NewBranch(description string, children ...*TreeNode) *TreeNode {
	return &TreeNode{
		Description: description,
		Kind:        KindBranch,
		Children:    children,
	}
}

// NewLeaf creates a leaf node carrying an assertion statement
func NewLeaf(description string) *TreeNode {
	return &TreeNode{
		Description: description,
		Kind:        KindLeaf,
	}
}

// IsLeaf reports whether the node is a leaf
func (n *TreeNode) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// Leaves returns the leaves under the node in tree order
func (n *TreeNode) Leaves() []*TreeNode {
	if n.IsLeaf() {
		return []*TreeNode{n}
	}
	var leaves []*TreeNode
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
