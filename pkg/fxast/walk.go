package fxast

import (
	"errors"
	"slices"
)

// ErrStopWalk may be returned by a walk callback to end the walk early.
// Walk and Inspect return nil in that case.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// If walkFunc returns a non-nil error, the walk stops immediately and returns
// that error, unless it is ErrStopWalk.
func Walk(root Node, walkFunc WalkFunc) error {
	return Inspect(root, walkFunc, nil)
}

// Inspect performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func Inspect(root Node, enter, leave WalkFunc) error {
	err := inspect(root, enter, leave)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func inspect(node Node, enter, leave WalkFunc) error {
	if node == nil {
		return nil
	}

	if enter != nil {
		if err := enter(node); err != nil {
			return err
		}
	}

	for _, child := range Children(node) {
		if err := inspect(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(node); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck // The callback never fails.
	Walk(root, func(node Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck // ErrStopWalk is swallowed by Walk.
	Walk(root, func(node Node) error {
		if predicate(node) {
			found = node
			return ErrStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root Node, kind NodeKind) []Node {
	return FindAll(root, func(n Node) bool {
		return n.Kind() == kind
	})
}

// Depth returns the nesting depth of the tree; a lone leaf has depth 1.
func Depth(root Node) int {
	if root == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(root) {
		deepest = max(deepest, Depth(child))
	}
	return deepest + 1
}

// Identifiers returns the sorted, de-duplicated names the formula refers to.
// Property names after '.' and object keys are not references and are skipped.
func Identifiers(root Node) []string {
	seen := make(map[string]struct{})
	collectIdentifiers(root, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func collectIdentifiers(n Node, seen map[string]struct{}) {
	switch node := n.(type) {
	case nil:
		return
	case *Identifier:
		seen[node.Name] = struct{}{}
	case *MemberExpression:
		collectIdentifiers(node.Object, seen)
		if node.Computed {
			collectIdentifiers(node.Property, seen)
		}
	case *ObjectExpression:
		for _, prop := range node.Properties {
			collectIdentifiers(prop.Value, seen)
		}
	default:
		for _, child := range Children(n) {
			collectIdentifiers(child, seen)
		}
	}
}
