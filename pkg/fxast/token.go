package fxast

import "fmt"

// TokenType classifies a lexical token of a formula.
type TokenType uint8

// Token types. The set is closed; String returns the canonical upper-case name.
const (
	TokNumber TokenType = iota
	TokString
	TokBoolean
	TokNull
	TokIdentifier

	TokPlus     // '+'
	TokMinus    // '-'
	TokMultiply // '*'
	TokDivide   // '/'
	TokModulo   // '%'
	TokPower    // '**'

	TokEq        // '=='
	TokNeq       // '!='
	TokStrictEq  // '==='
	TokStrictNeq // '!=='
	TokLt        // '<'
	TokGt        // '>'
	TokLte       // '<='
	TokGte       // '>='

	TokAnd // '&&' or 'and'
	TokOr  // '||' or 'or'
	TokNot // '!' or 'not'

	TokConcat // '&'

	TokLParen   // '('
	TokRParen   // ')'
	TokLBracket // '['
	TokRBracket // ']'
	TokLBrace   // '{'
	TokRBrace   // '}'
	TokComma    // ','
	TokDot      // '.'
	TokColon    // ':'
	TokQuestion // '?'

	TokEOF
)

// String returns the canonical name of the token type.
//
//nolint:cyclop,funlen // One case per token type.
func (t TokenType) String() string {
	switch t {
	case TokNumber:
		return "NUMBER"
	case TokString:
		return "STRING"
	case TokBoolean:
		return "BOOLEAN"
	case TokNull:
		return "NULL"
	case TokIdentifier:
		return "IDENTIFIER"
	case TokPlus:
		return "PLUS"
	case TokMinus:
		return "MINUS"
	case TokMultiply:
		return "MULTIPLY"
	case TokDivide:
		return "DIVIDE"
	case TokModulo:
		return "MODULO"
	case TokPower:
		return "POWER"
	case TokEq:
		return "EQ"
	case TokNeq:
		return "NEQ"
	case TokStrictEq:
		return "STRICT_EQ"
	case TokStrictNeq:
		return "STRICT_NEQ"
	case TokLt:
		return "LT"
	case TokGt:
		return "GT"
	case TokLte:
		return "LTE"
	case TokGte:
		return "GTE"
	case TokAnd:
		return "AND"
	case TokOr:
		return "OR"
	case TokNot:
		return "NOT"
	case TokConcat:
		return "CONCAT"
	case TokLParen:
		return "LPAREN"
	case TokRParen:
		return "RPAREN"
	case TokLBracket:
		return "LBRACKET"
	case TokRBracket:
		return "RBRACKET"
	case TokLBrace:
		return "LBRACE"
	case TokRBrace:
		return "RBRACE"
	case TokComma:
		return "COMMA"
	case TokDot:
		return "DOT"
	case TokColon:
		return "COLON"
	case TokQuestion:
		return "QUESTION"
	case TokEOF:
		return "EOF"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

// MarshalText encodes the token type by name for JSON and YAML output.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsLiteral reports whether tokens of this type become Literal nodes.
func (t TokenType) IsLiteral() bool {
	switch t {
	case TokNumber, TokString, TokBoolean, TokNull:
		return true
	default:
		return false
	}
}

// Token is a single lexical unit of a formula.
// Tokens are values and are never modified after the tokenizer emits them.
type Token struct {
	// Type classifies the token.
	Type TokenType `json:"type" yaml:"type"`

	// Value is the token text. For strings it holds the decoded content
	// without quotes; for everything else it is the matched lexeme.
	Value string `json:"value" yaml:"value"`

	// Start is the byte index where the lexeme begins (inclusive).
	Start int `json:"start" yaml:"start"`

	// End is the byte index where the lexeme ends (exclusive).
	End int `json:"end" yaml:"end"`

	// Line is the 1-based line of the first character.
	Line int `json:"line" yaml:"line"`

	// Column is the 1-based column of the first character, counted in runes.
	Column int `json:"column" yaml:"column"`
}

// SourceRange returns the byte span of the lexeme.
func (t Token) SourceRange() Span {
	return Span{Start: t.Start, End: t.End}
}

// Position returns the line and column of the first character.
func (t Token) Position() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Lexeme returns the raw source text the token was matched from.
func (t Token) Lexeme(source string) string {
	return t.SourceRange().Text(source)
}

// Describe returns the token value, or the type name when the value is empty.
func (t Token) Describe() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return t.Value
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Type, t.Value, t.Line, t.Column)
}
