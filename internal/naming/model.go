package naming

import (
	"btt/internal/domain"
)

// Model resolves identifiers for a whole forest and returns the structural
// model a conforming test file must have. Malformed trees are rejected with a
// *domain.GenerationError before any identifier is assigned.
func (s Strategy) Model(forest domain.Forest) (*domain.Model, error) {
	if len(forest) == 0 {
		return nil, &domain.GenerationError{Reason: "forest has no roots"}
	}

	for _, root := range forest {
		if root == nil {
			return nil, &domain.GenerationError{Reason: "nil root"}
		}
		if root.Kind != domain.KindBranch {
			return nil, &domain.GenerationError{
				Path:   []string{root.Description},
				Reason: "root must be a branch naming the unit under test",
			}
		}
		if err := checkShape(root, nil); err != nil {
			return nil, err
		}
	}

	roots, err := s.scopes(forest, nil)
	if err != nil {
		return nil, err
	}

	return &domain.Model{Roots: roots}, nil
}

// checkShape rejects leaves with children and branches without any
func checkShape(node *domain.TreeNode, parent []string) error {
	path := append(append([]string{}, parent...), node.Description)

	switch node.Kind {
	case domain.KindLeaf:
		if len(node.Children) > 0 {
			return &domain.GenerationError{Path: path, Reason: "leaf has children"}
		}
		return nil
	case domain.KindBranch:
		if len(node.Children) == 0 {
			return &domain.GenerationError{Path: path, Reason: "branch has no children"}
		}
	default:
		return &domain.GenerationError{Path: path, Reason: "unknown node kind"}
	}

	for _, child := range node.Children {
		if child == nil {
			return &domain.GenerationError{Path: path, Reason: "nil child"}
		}
		if err := checkShape(child, path); err != nil {
			return err
		}
	}
	return nil
}

func (s Strategy) scopes(nodes []*domain.TreeNode, parent []string) ([]*domain.ModelNode, error) {
	descriptions := make([]string, len(nodes))
	for i, node := range nodes {
		descriptions[i] = node.Description
	}

	ids, err := s.Siblings(descriptions)
	if err != nil {
		return nil, &domain.GenerationError{Path: parent, Reason: err.Error()}
	}

	scopes := make([]*domain.ModelNode, len(nodes))
	for i, node := range nodes {
		scope := &domain.ModelNode{
			Identifier:  ids[i],
			Kind:        node.Kind,
			Description: node.Description,
		}
		if node.Kind == domain.KindBranch {
			path := append(append([]string{}, parent...), node.Description)
			scope.Children, err = s.scopes(node.Children, path)
			if err != nil {
				return nil, err
			}
		}
		scopes[i] = scope
	}

	return scopes, nil
}
