package nodeutil

import (
	sitter "github.com/smacker/go-tree-sitter"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/exp/slices"
)

// AssertTypeIs returns an error when the node is missing or not of the
// expected type
func AssertTypeIs(node *sitter.Node, expectedType string) error {
	if node == nil {
		return errors.Errorf("assertion failed: expected node of type %s, got none", expectedType)
	}
	if node.Type() != expectedType {
		return errors.Errorf("assertion failed: Type of node differs from expected: %s, got: %s", expectedType, node.Type())
	}
	return nil
}

// NamedChildren returns the named children of a node, in order
func NamedChildren(node *sitter.Node) []*sitter.Node {
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, count)
	for i := 0; i < count; i++ {
		children[i] = node.NamedChild(i)
	}
	return children
}

// AllChildren returns every child of a node, including anonymous tokens like
// keywords and punctuation
func AllChildren(node *sitter.Node) []*sitter.Node {
	count := int(node.ChildCount())
	children := make([]*sitter.Node, count)
	for i := 0; i < count; i++ {
		children[i] = node.Child(i)
	}
	return children
}

// FirstChildOfType returns the first named child with one of the given types
func FirstChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	for _, child := range NamedChildren(node) {
		for _, typ := range types {
			if child.Type() == typ {
				return child
			}
		}
	}
	return nil
}

// HasToken reports whether one of the anonymous children of the node is the
// given token
func HasToken(node *sitter.Node, token string) bool {
	for _, child := range AllChildren(node) {
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// FirstError returns the first node in the tree that is an error or was
// inserted by the parser to recover from one. Inserted nodes of the optional
// types are part of a valid tree, like a grammar's implicit statement
// terminators, and are not errors
func FirstError(node *sitter.Node, optional ...string) *sitter.Node {
	if node.Type() == "ERROR" {
		return node
	}
	if node.IsMissing() && !slices.Contains(optional, node.Type()) {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for _, child := range AllChildren(node) {
		if found := FirstError(child, optional...); found != nil {
			return found
		}
	}
	return nil
}
