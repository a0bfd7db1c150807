// Package parser turns formula text into an fxast tree or a ParseError.
//
// Parsing is a pure function of its input: every call owns its tokenizer,
// cursor, and token buffer, and there is no package-level mutable state, so
// Parse is safe to call from any number of goroutines.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/formulint/pkg/fxast"
)

// Result is the outcome of a parse: exactly one of AST and Err is set.
type Result struct {
	AST fxast.Node
	Err *ParseError
}

// Success reports whether the parse produced an AST.
func (r Result) Success() bool {
	return r.Err == nil
}

// Parse tokenizes and parses a single formula.
//
// The first lexical error, if any, fails the parse before the grammar runs.
// Otherwise the whole token stream must form one expression; tokens left
// over before EOF are a syntax error.
func Parse(input string, opts ...Option) Result {
	tokens, lexErrs := Tokenize(input)
	if len(lexErrs) > 0 {
		first := lexErrs[0]
		return Result{Err: newParseError(input, first.Message, first.Start, first.Line, first.Column)}
	}

	p := &parser{
		src:      input,
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	root, err := p.parseFormula()
	if err != nil {
		tok := p.current()
		var synErr *syntaxError
		if errors.As(err, &synErr) {
			tok = synErr.token
		}
		return Result{Err: newParseError(input, err.Error(), tok.Start, tok.Line, tok.Column)}
	}

	return Result{AST: root}
}

// ParseExpression is Parse in (value, error) form. The error, when
// non-nil, is a *ParseError.
func ParseExpression(input string, opts ...Option) (fxast.Node, error) {
	result := Parse(input, opts...)
	if result.Err != nil {
		return nil, result.Err
	}
	return result.AST, nil
}

// MustParse is like Parse but panics if the formula does not parse.
// It is intended for tests and fixed formulas known to be valid.
func MustParse(input string, opts ...Option) fxast.Node {
	node, err := ParseExpression(input, opts...)
	if err != nil {
		panic(fmt.Sprintf("parser: MustParse(%q): %v", input, err))
	}
	return node
}

// parser holds the cursor state of one parse.
type parser struct {
	src    string
	tokens []fxast.Token
	pos    int

	depth    int
	maxDepth int
}

func (p *parser) parseFormula() (fxast.Node, error) {
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != fxast.TokEOF {
		return nil, unexpectedToken(tok)
	}

	return root, nil
}

// current returns the token under the cursor. The cursor never moves past
// the trailing EOF token.
func (p *parser) current() fxast.Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() fxast.Token {
	tok := p.tokens[p.pos]
	if tok.Type != fxast.TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) check(types ...fxast.TokenType) bool {
	current := p.current().Type
	for _, typ := range types {
		if current == typ {
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or fails with a message naming
// what was required.
func (p *parser) expect(typ fxast.TokenType, what string) (fxast.Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, &syntaxError{
			message: fmt.Sprintf("Expected %s but found %s", what, tok.Describe()),
			token:   tok,
		}
	}
	return p.advance(), nil
}

// enter records one more level of nesting. Every successful enter must be
// paired with leave.
func (p *parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.depth--
		return &syntaxError{message: "maximum nesting depth exceeded", token: p.current()}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseExpression is the entry point of the precedence cascade.
func (p *parser) parseExpression() (fxast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseConditional()
}

// parseConditional parses test ? consequent : alternate. Both branches are
// full expressions, which makes the operator right-associative.
func (p *parser) parseConditional() (fxast.Node, error) {
	test, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if !p.check(fxast.TokQuestion) {
		return test, nil
	}
	p.advance()

	consequent, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(fxast.TokColon, "':' in conditional expression"); err != nil {
		return nil, err
	}

	alternate, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &fxast.ConditionalExpression{
		Span:       fxast.Cover(test, alternate),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

// parseBinary parses a left-associative chain of the given operators with
// operands from the next tighter level.
func (p *parser) parseBinary(next func() (fxast.Node, error), ops ...fxast.TokenType) (fxast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.check(ops...) {
		opTok := p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &fxast.BinaryExpression{
			Span:     fxast.Cover(left, right),
			Operator: binaryOperator(opTok),
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

// binaryOperator normalizes keyword spellings of the logical operators.
func binaryOperator(tok fxast.Token) string {
	switch tok.Type {
	case fxast.TokAnd:
		return "&&"
	case fxast.TokOr:
		return "||"
	default:
		return tok.Value
	}
}

func (p *parser) parseLogicalOr() (fxast.Node, error) {
	return p.parseBinary(p.parseLogicalAnd, fxast.TokOr)
}

func (p *parser) parseLogicalAnd() (fxast.Node, error) {
	return p.parseBinary(p.parseEquality, fxast.TokAnd)
}

func (p *parser) parseEquality() (fxast.Node, error) {
	return p.parseBinary(p.parseComparison,
		fxast.TokEq, fxast.TokNeq, fxast.TokStrictEq, fxast.TokStrictNeq)
}

func (p *parser) parseComparison() (fxast.Node, error) {
	return p.parseBinary(p.parseConcat,
		fxast.TokLt, fxast.TokGt, fxast.TokLte, fxast.TokGte)
}

func (p *parser) parseConcat() (fxast.Node, error) {
	return p.parseBinary(p.parseAdditive, fxast.TokConcat)
}

func (p *parser) parseAdditive() (fxast.Node, error) {
	return p.parseBinary(p.parseMultiplicative, fxast.TokPlus, fxast.TokMinus)
}

func (p *parser) parseMultiplicative() (fxast.Node, error) {
	return p.parseBinary(p.parsePower, fxast.TokMultiply, fxast.TokDivide, fxast.TokModulo)
}

// parsePower parses base ** exponent. The exponent recurses into this level
// rather than the tighter one, so 2 ** 3 ** 2 groups as 2 ** (3 ** 2).
func (p *parser) parsePower() (fxast.Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if !p.check(fxast.TokPower) {
		return base, nil
	}
	opTok := p.advance()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	exponent, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &fxast.BinaryExpression{
		Span:     fxast.Cover(base, exponent),
		Operator: opTok.Value,
		Left:     base,
		Right:    exponent,
	}, nil
}

// parseUnary parses stacked prefix operators; each becomes its own node.
func (p *parser) parseUnary() (fxast.Node, error) {
	tok := p.current()
	operator, ok := unaryOperator(tok)
	if !ok {
		return p.parseCallMember()
	}
	p.advance()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	argument, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &fxast.UnaryExpression{
		Span:     fxast.Span{Start: tok.Start, End: argument.SourceRange().End},
		Operator: operator,
		Argument: argument,
		Prefix:   true,
	}, nil
}

// unaryOperator maps a token to its prefix operator. The keyword form of
// NOT is accepted only when spelled "not" or "NOT".
func unaryOperator(tok fxast.Token) (string, bool) {
	switch tok.Type {
	case fxast.TokMinus:
		return "-", true
	case fxast.TokPlus:
		return "+", true
	case fxast.TokNot:
		switch tok.Value {
		case "!", "not", "NOT":
			return "!", true
		}
	}
	return "", false
}

// parseCallMember parses a primary followed by any chain of calls, dotted
// members, and computed members.
func (p *parser) parseCallMember() (fxast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Type {
		case fxast.TokLParen:
			expr, err = p.finishCall(expr)
		case fxast.TokDot:
			expr, err = p.finishMember(expr)
		case fxast.TokLBracket:
			expr, err = p.finishComputedMember(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) finishCall(callee fxast.Node) (fxast.Node, error) {
	p.advance()

	args, err := p.parseList(fxast.TokRParen)
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(fxast.TokRParen, "')' after arguments")
	if err != nil {
		return nil, err
	}

	return &fxast.CallExpression{
		Span:      fxast.Span{Start: callee.SourceRange().Start, End: closing.End},
		Callee:    callee,
		Arguments: args,
	}, nil
}

func (p *parser) finishMember(object fxast.Node) (fxast.Node, error) {
	p.advance()

	name, err := p.expect(fxast.TokIdentifier, "property name after '.'")
	if err != nil {
		return nil, err
	}

	property := &fxast.Identifier{
		Span: name.SourceRange(),
		Name: name.Value,
	}

	return &fxast.MemberExpression{
		Span:     fxast.Cover(object, property),
		Object:   object,
		Property: property,
		Computed: false,
	}, nil
}

func (p *parser) finishComputedMember(object fxast.Node) (fxast.Node, error) {
	p.advance()

	property, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(fxast.TokRBracket, "']' after index")
	if err != nil {
		return nil, err
	}

	return &fxast.MemberExpression{
		Span:     fxast.Span{Start: object.SourceRange().Start, End: closing.End},
		Object:   object,
		Property: property,
		Computed: true,
	}, nil
}

// parseList parses zero or more comma-separated expressions up to, but not
// including, the closing token. A trailing comma is an error.
func (p *parser) parseList(closing fxast.TokenType) ([]fxast.Node, error) {
	nodes := []fxast.Node{}
	if p.check(closing) {
		return nodes, nil
	}

	for {
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		if !p.check(fxast.TokComma) {
			return nodes, nil
		}
		p.advance()
	}
}

//nolint:cyclop // One case per primary form.
func (p *parser) parsePrimary() (fxast.Node, error) {
	tok := p.current()

	switch tok.Type {
	case fxast.TokNumber:
		p.advance()
		// The tokenizer only emits well-formed numbers; out-of-range values
		// become ±Inf, which ParseFloat still returns.
		value, _ := strconv.ParseFloat(tok.Value, 64)
		return &fxast.Literal{Span: tok.SourceRange(), Value: value, Raw: tok.Value}, nil

	case fxast.TokString:
		p.advance()
		return stringLiteral(tok), nil

	case fxast.TokBoolean:
		p.advance()
		return &fxast.Literal{Span: tok.SourceRange(), Value: strings.EqualFold(tok.Value, "true"), Raw: tok.Value}, nil

	case fxast.TokNull:
		p.advance()
		return &fxast.Literal{Span: tok.SourceRange(), Value: nil, Raw: tok.Value}, nil

	case fxast.TokIdentifier:
		p.advance()
		return &fxast.Identifier{Span: tok.SourceRange(), Name: tok.Value}, nil

	case fxast.TokLBracket:
		return p.parseArray()

	case fxast.TokLBrace:
		return p.parseObject()

	case fxast.TokLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(fxast.TokRParen, "')' after expression"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, unexpectedToken(tok)
	}
}

func stringLiteral(tok fxast.Token) *fxast.Literal {
	return &fxast.Literal{
		Span:  tok.SourceRange(),
		Value: tok.Value,
		Raw:   strconv.Quote(tok.Value),
	}
}

func (p *parser) parseArray() (fxast.Node, error) {
	opening := p.advance()

	elements, err := p.parseList(fxast.TokRBracket)
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(fxast.TokRBracket, "']' after array elements")
	if err != nil {
		return nil, err
	}

	return &fxast.ArrayExpression{
		Span:     fxast.Span{Start: opening.Start, End: closing.End},
		Elements: elements,
	}, nil
}

func (p *parser) parseObject() (fxast.Node, error) {
	opening := p.advance()

	properties := []*fxast.Property{}
	if !p.check(fxast.TokRBrace) {
		for {
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			properties = append(properties, prop)

			if !p.check(fxast.TokComma) {
				break
			}
			p.advance()
		}
	}

	closing, err := p.expect(fxast.TokRBrace, "'}' after object properties")
	if err != nil {
		return nil, err
	}

	return &fxast.ObjectExpression{
		Span:       fxast.Span{Start: opening.Start, End: closing.End},
		Properties: properties,
	}, nil
}

// parseProperty parses key: value, where key is an identifier or a string.
func (p *parser) parseProperty() (*fxast.Property, error) {
	var key fxast.Node

	tok := p.current()
	switch tok.Type {
	case fxast.TokIdentifier:
		p.advance()
		key = &fxast.Identifier{Span: tok.SourceRange(), Name: tok.Value}
	case fxast.TokString:
		p.advance()
		key = stringLiteral(tok)
	default:
		return nil, &syntaxError{
			message: "Expected property key but found " + tok.Describe(),
			token:   tok,
		}
	}

	if _, err := p.expect(fxast.TokColon, "':' after property key"); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &fxast.Property{
		Span:  fxast.Cover(key, value),
		Key:   key,
		Value: value,
	}, nil
}
