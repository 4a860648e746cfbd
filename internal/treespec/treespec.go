// Package treespec loads serialized tree specifications. A spec file holds
// the output of the .tree parser as YAML:
//
//	trees:
//	  - description: HashPair
//	    children:
//	      - description: ConditionA
//	        children:
//	          - description: it reverts
//	      - description: it succeeds
package treespec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"btt/internal/domain"
)

type document struct {
	Trees []node `yaml:"trees"`
}

type node struct {
	Description string `yaml:"description"`
	Kind        string `yaml:"kind,omitempty"`
	Children    []node `yaml:"children,omitempty"`
}

// Parse decodes a spec document. A node without an explicit kind is a
// branch when it has children and a leaf otherwise; roots are always
// branches. Explicit kinds are kept as written so that shape errors surface
// when the forest is emitted.
func Parse(data []byte) (domain.Forest, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("tree spec is empty")
		}
		return nil, fmt.Errorf("decode tree spec: %w", err)
	}

	forest := make(domain.Forest, 0, len(doc.Trees))
	for i, root := range doc.Trees {
		tree, err := convert(root, true, []string{fmt.Sprintf("trees[%d]", i)})
		if err != nil {
			return nil, err
		}
		forest = append(forest, tree)
	}
	return forest, nil
}

// Load reads and parses the spec file at path
func Load(path string) (domain.Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree spec %s: %w", path, err)
	}
	forest, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return forest, nil
}

// TestPathFor returns the test file path paired with a spec file:
// foo.tree.yml becomes foo_test.go next to it
func TestPathFor(treePath, treeSuffix, testSuffix string) string {
	base := strings.TrimSuffix(treePath, treeSuffix)
	if base == treePath {
		base = strings.TrimSuffix(treePath, filepath.Ext(treePath))
	}
	return base + testSuffix
}

func convert(n node, root bool, path []string) (*domain.TreeNode, error) {
	tree := &domain.TreeNode{Description: n.Description}

	switch {
	case n.Kind != "":
		if err := tree.Kind.UnmarshalText([]byte(n.Kind)); err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(path, "."), err)
		}
	case root || len(n.Children) > 0:
		tree.Kind = domain.KindBranch
	default:
		tree.Kind = domain.KindLeaf
	}

	for i, child := range n.Children {
		converted, err := convert(child, false, append(path, fmt.Sprintf("children[%d]", i)))
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, converted)
	}
	return tree, nil
}
