package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/formulint/pkg/fxast"
)

// FormatTree renders a syntax tree with one line per node. Each child is
// labeled with its role in the parent (left, callee, test, ...). When
// showSpans is set, each line ends with the node's byte range.
func (s *Styles) FormatTree(root fxast.Node, showSpans bool) string {
	if root == nil {
		return ""
	}

	t := s.buildTree("", root, showSpans)
	t.Enumerator(tree.RoundedEnumerator).EnumeratorStyle(s.TreeBranch.PaddingRight(1))

	return t.String() + "\n"
}

type roleNode struct {
	role string
	node fxast.Node
}

func (s *Styles) buildTree(role string, n fxast.Node, showSpans bool) *tree.Tree {
	t := tree.Root(s.nodeLabel(role, n, showSpans))
	for _, child := range roleChildren(n) {
		t.Child(s.buildTree(child.role, child.node, showSpans))
	}
	return t
}

func (s *Styles) nodeLabel(role string, n fxast.Node, showSpans bool) string {
	var builder strings.Builder

	if role != "" {
		builder.WriteString(s.Role.Render(role+":") + " ")
	}
	builder.WriteString(s.NodeKind.Render(n.Kind().String()))

	switch node := n.(type) {
	case *fxast.Literal:
		builder.WriteString(" " + s.Literal.Render(literalText(node)))
	case *fxast.Identifier:
		builder.WriteString(" " + s.Identifier.Render(node.Name))
	case *fxast.BinaryExpression:
		builder.WriteString(" " + s.Operator.Render(node.Operator))
	case *fxast.UnaryExpression:
		builder.WriteString(" " + s.Operator.Render(node.Operator))
	case *fxast.MemberExpression:
		if node.Computed {
			builder.WriteString(" " + s.Operator.Render("[]"))
		} else {
			builder.WriteString(" " + s.Operator.Render("."))
		}
	}

	if showSpans {
		span := n.SourceRange()
		builder.WriteString(" " + s.Dim.Render(fmt.Sprintf("[%d,%d)", span.Start, span.End)))
	}

	return builder.String()
}

func literalText(lit *fxast.Literal) string {
	if lit.Raw != "" {
		return lit.Raw
	}
	return fxast.String(lit)
}

// roleChildren lists the children of n with the role each plays.
func roleChildren(n fxast.Node) []roleNode {
	switch node := n.(type) {
	case *fxast.BinaryExpression:
		return []roleNode{{"left", node.Left}, {"right", node.Right}}
	case *fxast.UnaryExpression:
		return []roleNode{{"argument", node.Argument}}
	case *fxast.ConditionalExpression:
		return []roleNode{{"test", node.Test}, {"consequent", node.Consequent}, {"alternate", node.Alternate}}
	case *fxast.CallExpression:
		out := []roleNode{{"callee", node.Callee}}
		for i, arg := range node.Arguments {
			out = append(out, roleNode{fmt.Sprintf("arg[%d]", i), arg})
		}
		return out
	case *fxast.MemberExpression:
		return []roleNode{{"object", node.Object}, {"property", node.Property}}
	case *fxast.ArrayExpression:
		out := make([]roleNode, 0, len(node.Elements))
		for i, el := range node.Elements {
			out = append(out, roleNode{fmt.Sprintf("[%d]", i), el})
		}
		return out
	case *fxast.ObjectExpression:
		out := make([]roleNode, 0, len(node.Properties))
		for _, prop := range node.Properties {
			out = append(out, roleNode{prop.KeyName(), prop.Value})
		}
		return out
	default:
		return nil
	}
}
