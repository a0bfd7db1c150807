package fxast

import (
	"strconv"
	"strings"
)

// String renders the tree as a fully parenthesized formula. Every binary,
// unary, and conditional expression gets its own parentheses, so operator
// grouping is visible at a glance.
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

//nolint:cyclop // One case per node kind.
func writeNode(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Literal:
		sb.WriteString(literalText(node))
	case *Identifier:
		sb.WriteString(node.Name)
	case *BinaryExpression:
		sb.WriteByte('(')
		writeNode(sb, node.Left)
		sb.WriteString(" " + node.Operator + " ")
		writeNode(sb, node.Right)
		sb.WriteByte(')')
	case *UnaryExpression:
		sb.WriteString("(" + node.Operator)
		writeNode(sb, node.Argument)
		sb.WriteByte(')')
	case *ConditionalExpression:
		sb.WriteByte('(')
		writeNode(sb, node.Test)
		sb.WriteString(" ? ")
		writeNode(sb, node.Consequent)
		sb.WriteString(" : ")
		writeNode(sb, node.Alternate)
		sb.WriteByte(')')
	case *CallExpression:
		writeNode(sb, node.Callee)
		sb.WriteByte('(')
		writeList(sb, node.Arguments)
		sb.WriteByte(')')
	case *MemberExpression:
		writeNode(sb, node.Object)
		if node.Computed {
			sb.WriteByte('[')
			writeNode(sb, node.Property)
			sb.WriteByte(']')
		} else {
			sb.WriteByte('.')
			writeNode(sb, node.Property)
		}
	case *ArrayExpression:
		sb.WriteByte('[')
		writeList(sb, node.Elements)
		sb.WriteByte(']')
	case *ObjectExpression:
		sb.WriteByte('{')
		for i, prop := range node.Properties {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeNode(sb, prop.Key)
			sb.WriteString(": ")
			writeNode(sb, prop.Value)
		}
		sb.WriteByte('}')
	}
}

func writeList(sb *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeNode(sb, n)
	}
}

func literalText(lit *Literal) string {
	switch value := lit.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(value)
	case string:
		return strconv.Quote(value)
	case float64:
		if lit.Raw != "" {
			return lit.Raw
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return lit.Raw
	}
}
