// Package fxast defines the tokens and syntax tree of formula expressions.
package fxast

import "fmt"

// NodeKind identifies the variant of an AST node.
type NodeKind uint8

// Node kinds, one per grammar production that yields a node.
const (
	KindLiteral NodeKind = iota
	KindIdentifier
	KindBinaryExpression
	KindUnaryExpression
	KindConditionalExpression
	KindCallExpression
	KindMemberExpression
	KindArrayExpression
	KindObjectExpression
)

// String returns the node type name as it appears in exported trees.
func (k NodeKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindIdentifier:
		return "Identifier"
	case KindBinaryExpression:
		return "BinaryExpression"
	case KindUnaryExpression:
		return "UnaryExpression"
	case KindConditionalExpression:
		return "ConditionalExpression"
	case KindCallExpression:
		return "CallExpression"
	case KindMemberExpression:
		return "MemberExpression"
	case KindArrayExpression:
		return "ArrayExpression"
	case KindObjectExpression:
		return "ObjectExpression"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is an expression in a parsed formula.
//
// The set of implementations is closed: only the node types in this package
// satisfy Node, so a type switch over them is exhaustive.
type Node interface {
	// Kind returns the node variant.
	Kind() NodeKind

	// SourceRange returns the byte span the node covers in the source.
	SourceRange() Span

	exprNode()
}

// Literal is a number, string, boolean, or null constant.
type Literal struct {
	Span

	// Value is float64, string, bool, or nil for null.
	Value any

	// Raw is the source text of a number, boolean, or null, and the
	// re-quoted form of a string.
	Raw string
}

// Identifier is a bare name.
type Identifier struct {
	Span

	Name string
}

// BinaryExpression applies an infix operator to two operands.
// Logical operators are normalized to "&&" and "||" whatever their spelling.
type BinaryExpression struct {
	Span

	Operator string
	Left     Node
	Right    Node
}

// UnaryExpression applies a prefix operator ("-", "+", or "!").
type UnaryExpression struct {
	Span

	Operator string
	Argument Node

	// Prefix is always true.
	Prefix bool
}

// ConditionalExpression is the ternary test ? consequent : alternate.
type ConditionalExpression struct {
	Span

	Test       Node
	Consequent Node
	Alternate  Node
}

// CallExpression is callee(arguments...).
type CallExpression struct {
	Span

	Callee    Node
	Arguments []Node
}

// MemberExpression is object.property or object[property].
type MemberExpression struct {
	Span

	Object Node

	// Property is an *Identifier when Computed is false.
	Property Node

	Computed bool
}

// ArrayExpression is a bracketed list of elements.
type ArrayExpression struct {
	Span

	Elements []Node
}

// ObjectExpression is a braced list of key/value properties.
type ObjectExpression struct {
	Span

	Properties []*Property
}

// Property is one key/value entry of an object expression.
// Key is an *Identifier or a string *Literal.
type Property struct {
	Span

	Key   Node
	Value Node
}

// KeyName returns the property name the key denotes.
func (p *Property) KeyName() string {
	switch key := p.Key.(type) {
	case *Identifier:
		return key.Name
	case *Literal:
		if s, ok := key.Value.(string); ok {
			return s
		}
		return key.Raw
	default:
		return ""
	}
}

func (*Literal) Kind() NodeKind               { return KindLiteral }
func (*Identifier) Kind() NodeKind            { return KindIdentifier }
func (*BinaryExpression) Kind() NodeKind      { return KindBinaryExpression }
func (*UnaryExpression) Kind() NodeKind       { return KindUnaryExpression }
func (*ConditionalExpression) Kind() NodeKind { return KindConditionalExpression }
func (*CallExpression) Kind() NodeKind        { return KindCallExpression }
func (*MemberExpression) Kind() NodeKind      { return KindMemberExpression }
func (*ArrayExpression) Kind() NodeKind       { return KindArrayExpression }
func (*ObjectExpression) Kind() NodeKind      { return KindObjectExpression }

func (*Literal) exprNode()               {}
func (*Identifier) exprNode()            {}
func (*BinaryExpression) exprNode()      {}
func (*UnaryExpression) exprNode()       {}
func (*ConditionalExpression) exprNode() {}
func (*CallExpression) exprNode()        {}
func (*MemberExpression) exprNode()      {}
func (*ArrayExpression) exprNode()       {}
func (*ObjectExpression) exprNode()      {}

// Children returns the direct child nodes of n in source order.
// Object properties contribute their key followed by their value.
func Children(n Node) []Node {
	switch node := n.(type) {
	case *BinaryExpression:
		return []Node{node.Left, node.Right}
	case *UnaryExpression:
		return []Node{node.Argument}
	case *ConditionalExpression:
		return []Node{node.Test, node.Consequent, node.Alternate}
	case *CallExpression:
		children := make([]Node, 0, len(node.Arguments)+1)
		children = append(children, node.Callee)
		return append(children, node.Arguments...)
	case *MemberExpression:
		return []Node{node.Object, node.Property}
	case *ArrayExpression:
		return node.Elements
	case *ObjectExpression:
		children := make([]Node, 0, 2*len(node.Properties))
		for _, prop := range node.Properties {
			children = append(children, prop.Key, prop.Value)
		}
		return children
	default:
		return nil
	}
}
