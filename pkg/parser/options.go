package parser

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 256

// Option configures a parse.
type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth of sub-expressions, unary
// operator chains, and power chains. Deeper input fails with
// "maximum nesting depth exceeded" instead of exhausting the stack.
// A depth of zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}
