package fxast

import "math"

// Exported node shapes. Field order follows the ESTree convention of
// type, start, end, then variant fields, and is preserved by both the JSON
// and YAML encoders.

type exportedLiteral struct {
	Type  string `json:"type" yaml:"type"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Value any    `json:"value" yaml:"value"`
	Raw   string `json:"raw" yaml:"raw"`
}

type exportedIdentifier struct {
	Type  string `json:"type" yaml:"type"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Name  string `json:"name" yaml:"name"`
}

type exportedBinary struct {
	Type     string `json:"type" yaml:"type"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Operator string `json:"operator" yaml:"operator"`
	Left     any    `json:"left" yaml:"left"`
	Right    any    `json:"right" yaml:"right"`
}

type exportedUnary struct {
	Type     string `json:"type" yaml:"type"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Operator string `json:"operator" yaml:"operator"`
	Argument any    `json:"argument" yaml:"argument"`
	Prefix   bool   `json:"prefix" yaml:"prefix"`
}

type exportedConditional struct {
	Type       string `json:"type" yaml:"type"`
	Start      int    `json:"start" yaml:"start"`
	End        int    `json:"end" yaml:"end"`
	Test       any    `json:"test" yaml:"test"`
	Consequent any    `json:"consequent" yaml:"consequent"`
	Alternate  any    `json:"alternate" yaml:"alternate"`
}

type exportedCall struct {
	Type      string `json:"type" yaml:"type"`
	Start     int    `json:"start" yaml:"start"`
	End       int    `json:"end" yaml:"end"`
	Callee    any    `json:"callee" yaml:"callee"`
	Arguments []any  `json:"arguments" yaml:"arguments"`
}

type exportedMember struct {
	Type     string `json:"type" yaml:"type"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Object   any    `json:"object" yaml:"object"`
	Property any    `json:"property" yaml:"property"`
	Computed bool   `json:"computed" yaml:"computed"`
}

type exportedArray struct {
	Type     string `json:"type" yaml:"type"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Elements []any  `json:"elements" yaml:"elements"`
}

type exportedObject struct {
	Type       string             `json:"type" yaml:"type"`
	Start      int                `json:"start" yaml:"start"`
	End        int                `json:"end" yaml:"end"`
	Properties []exportedProperty `json:"properties" yaml:"properties"`
}

type exportedProperty struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
	Key   any `json:"key" yaml:"key"`
	Value any `json:"value" yaml:"value"`
}

// Export converts a tree into plain tagged structs ready for JSON or YAML
// encoding. Each object carries a "type" field naming its NodeKind.
//
//nolint:funlen // One case per node kind.
func Export(n Node) any {
	switch node := n.(type) {
	case *Literal:
		return exportedLiteral{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Value: exportValue(node.Value), Raw: node.Raw,
		}
	case *Identifier:
		return exportedIdentifier{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Name: node.Name,
		}
	case *BinaryExpression:
		return exportedBinary{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Operator: node.Operator, Left: Export(node.Left), Right: Export(node.Right),
		}
	case *UnaryExpression:
		return exportedUnary{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Operator: node.Operator, Argument: Export(node.Argument), Prefix: node.Prefix,
		}
	case *ConditionalExpression:
		return exportedConditional{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Test: Export(node.Test), Consequent: Export(node.Consequent), Alternate: Export(node.Alternate),
		}
	case *CallExpression:
		return exportedCall{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Callee: Export(node.Callee), Arguments: exportList(node.Arguments),
		}
	case *MemberExpression:
		return exportedMember{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Object: Export(node.Object), Property: Export(node.Property), Computed: node.Computed,
		}
	case *ArrayExpression:
		return exportedArray{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Elements: exportList(node.Elements),
		}
	case *ObjectExpression:
		props := make([]exportedProperty, 0, len(node.Properties))
		for _, prop := range node.Properties {
			props = append(props, exportedProperty{
				Start: prop.Start, End: prop.End,
				Key: Export(prop.Key), Value: Export(prop.Value),
			})
		}
		return exportedObject{
			Type: node.Kind().String(), Start: node.Start, End: node.End,
			Properties: props,
		}
	default:
		return nil
	}
}

func exportList(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Export(n))
	}
	return out
}

// exportValue replaces non-finite numbers with nil; JSON has no encoding for
// them.
func exportValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil
	}
	return v
}
