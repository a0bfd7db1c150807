package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/formulint/pkg/fxast"
)

// LexError is a lexical fault found while scanning a formula.
// Its position points at the start of the offending text.
type LexError struct {
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// tokenizer performs a single forward pass over a formula.
// Errors are collected and scanning continues, so one pass reports every
// lexical problem in the input.
type tokenizer struct {
	src    string
	pos    int
	line   int
	column int
	tokens []fxast.Token
	errs   []*LexError
}

// mark captures the cursor before a token or error is consumed.
type mark struct {
	pos    int
	line   int
	column int
}

// Tokenize converts a formula into its token stream and the lexical errors
// found along the way. The stream always ends with exactly one EOF token,
// even when errors are reported.
func Tokenize(input string) ([]fxast.Token, []*LexError) {
	const initialCapacityDivisor = 2
	tok := &tokenizer{
		src:    input,
		line:   1,
		column: 1,
		tokens: make([]fxast.Token, 0, len(input)/initialCapacityDivisor+1),
	}

	tok.tokenize()

	return tok.tokens, tok.errs
}

func (t *tokenizer) tokenize() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		r, _ := utf8.DecodeRuneInString(t.src[t.pos:])

		switch {
		case isSpace(r):
			t.advance()
		case isDigit(c) || (c == '.' && isDigit(t.peek(1))):
			t.scanNumber()
		case c == '"' || c == '\'':
			t.scanString()
		case isIdentStart(c):
			t.scanIdentifier()
		default:
			if !t.scanOperator() {
				at := t.mark()
				t.advance()
				t.errorf(at, "Unexpected character: %c", r)
			}
		}
	}

	t.tokens = append(t.tokens, fxast.Token{
		Type:   fxast.TokEOF,
		Start:  len(t.src),
		End:    len(t.src),
		Line:   t.line,
		Column: t.column,
	})
}

// advance consumes one rune and updates line/column bookkeeping.
func (t *tokenizer) advance() rune {
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	t.pos += size
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r
}

// peek returns the byte offset bytes ahead of the cursor, or 0 past the end.
func (t *tokenizer) peek(offset int) byte {
	idx := t.pos + offset
	if idx >= len(t.src) {
		return 0
	}
	return t.src[idx]
}

func (t *tokenizer) mark() mark {
	return mark{pos: t.pos, line: t.line, column: t.column}
}

func (t *tokenizer) emit(typ fxast.TokenType, value string, at mark) {
	t.tokens = append(t.tokens, fxast.Token{
		Type:   typ,
		Value:  value,
		Start:  at.pos,
		End:    t.pos,
		Line:   at.line,
		Column: at.column,
	})
}

func (t *tokenizer) errorf(at mark, format string, args ...any) {
	t.errs = append(t.errs, &LexError{
		Message: fmt.Sprintf(format, args...),
		Start:   at.pos,
		End:     t.pos,
		Line:    at.line,
		Column:  at.column,
	})
}

func (t *tokenizer) consumeDigits() {
	for isDigit(t.peek(0)) {
		t.advance()
	}
}

// scanNumber scans an integer part, an optional fraction, and an optional
// exponent. A '.' only starts a fraction when a digit follows it.
func (t *tokenizer) scanNumber() {
	at := t.mark()

	t.consumeDigits()

	if t.peek(0) == '.' && isDigit(t.peek(1)) {
		t.advance()
		t.consumeDigits()
	}

	if c := t.peek(0); c == 'e' || c == 'E' {
		t.advance()
		if sign := t.peek(0); sign == '+' || sign == '-' {
			t.advance()
		}
		if !isDigit(t.peek(0)) {
			t.errorf(at, "Invalid number: expected digit after exponent")
			return
		}
		t.consumeDigits()
	}

	t.emit(fxast.TokNumber, t.src[at.pos:t.pos], at)
}

// scanString scans a quoted string and stores its decoded content.
// The opening quote character must also close the string.
func (t *tokenizer) scanString() {
	at := t.mark()
	quote := t.advance()

	var sb strings.Builder
	for {
		if t.pos >= len(t.src) {
			t.errorf(at, "Unterminated string")
			return
		}

		r, _ := utf8.DecodeRuneInString(t.src[t.pos:])
		switch r {
		case quote:
			t.advance()
			t.emit(fxast.TokString, sb.String(), at)
			return
		case '\n':
			t.errorf(at, "Unterminated string: unexpected newline")
			return
		case '\\':
			t.advance()
			if t.pos >= len(t.src) {
				t.errorf(at, "Unterminated string")
				return
			}
			sb.WriteRune(unescape(t.advance()))
		default:
			sb.WriteRune(t.advance())
		}
	}
}

// unescape resolves the character after a backslash. Unknown escapes keep
// the character and drop the backslash.
func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

func (t *tokenizer) scanIdentifier() {
	at := t.mark()
	for isIdentPart(t.peek(0)) {
		t.advance()
	}

	text := t.src[at.pos:t.pos]
	t.emit(keywordType(text), text, at)
}

// keywordType classifies identifier text. Keywords match case-insensitively.
func keywordType(text string) fxast.TokenType {
	switch strings.ToLower(text) {
	case "true", "false":
		return fxast.TokBoolean
	case "null":
		return fxast.TokNull
	case "and":
		return fxast.TokAnd
	case "or":
		return fxast.TokOr
	case "not":
		return fxast.TokNot
	default:
		return fxast.TokIdentifier
	}
}

// scanOperator matches operators and punctuation, longest first, so "==="
// is never split into shorter operators.
func (t *tokenizer) scanOperator() bool {
	rest := t.src[t.pos:]

	if len(rest) >= 3 {
		if typ, ok := threeCharOperator(rest[:3]); ok {
			t.emitOperator(typ, 3)
			return true
		}
	}

	if len(rest) >= 2 {
		if typ, ok := twoCharOperator(rest[:2]); ok {
			t.emitOperator(typ, 2)
			return true
		}
	}

	if typ, ok := oneCharOperator(rest[0]); ok {
		t.emitOperator(typ, 1)
		return true
	}

	return false
}

// emitOperator consumes width ASCII bytes as one token.
func (t *tokenizer) emitOperator(typ fxast.TokenType, width int) {
	at := t.mark()
	for range width {
		t.advance()
	}
	t.emit(typ, t.src[at.pos:t.pos], at)
}

func threeCharOperator(s string) (fxast.TokenType, bool) {
	switch s {
	case "===":
		return fxast.TokStrictEq, true
	case "!==":
		return fxast.TokStrictNeq, true
	default:
		return 0, false
	}
}

func twoCharOperator(s string) (fxast.TokenType, bool) {
	switch s {
	case "==":
		return fxast.TokEq, true
	case "!=":
		return fxast.TokNeq, true
	case "<=":
		return fxast.TokLte, true
	case ">=":
		return fxast.TokGte, true
	case "&&":
		return fxast.TokAnd, true
	case "||":
		return fxast.TokOr, true
	case "**":
		return fxast.TokPower, true
	default:
		return 0, false
	}
}

//nolint:cyclop // One case per operator.
func oneCharOperator(c byte) (fxast.TokenType, bool) {
	switch c {
	case '+':
		return fxast.TokPlus, true
	case '-':
		return fxast.TokMinus, true
	case '*':
		return fxast.TokMultiply, true
	case '/':
		return fxast.TokDivide, true
	case '%':
		return fxast.TokModulo, true
	case '<':
		return fxast.TokLt, true
	case '>':
		return fxast.TokGt, true
	case '!':
		return fxast.TokNot, true
	case '&':
		return fxast.TokConcat, true
	case '(':
		return fxast.TokLParen, true
	case ')':
		return fxast.TokRParen, true
	case '[':
		return fxast.TokLBracket, true
	case ']':
		return fxast.TokRBracket, true
	case '{':
		return fxast.TokLBrace, true
	case '}':
		return fxast.TokRBrace, true
	case ',':
		return fxast.TokComma, true
	case '.':
		return fxast.TokDot, true
	case ':':
		return fxast.TokColon, true
	case '?':
		return fxast.TokQuestion, true
	default:
		return 0, false
	}
}

// isSpace reports Unicode white space plus the zero-width no-break space
// (U+FEFF), which editors leave behind as a byte order mark.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
