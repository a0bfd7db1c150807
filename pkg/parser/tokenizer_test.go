package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/pkg/fxast"
	"github.com/yaklabco/formulint/pkg/parser"
)

// typesAndValues strips positions so tables stay readable.
func typesAndValues(tokens []fxast.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type.String()+" "+tok.Value)
	}
	return out
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()

	tokens, errs := parser.Tokenize("1 + 2")
	require.Empty(t, errs)

	want := []fxast.Token{
		{Type: fxast.TokNumber, Value: "1", Start: 0, End: 1, Line: 1, Column: 1},
		{Type: fxast.TokPlus, Value: "+", Start: 2, End: 3, Line: 1, Column: 3},
		{Type: fxast.TokNumber, Value: "2", Start: 4, End: 5, Line: 1, Column: 5},
		{Type: fxast.TokEOF, Value: "", Start: 5, End: 5, Line: 1, Column: 6},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	tokens, errs := parser.Tokenize("")
	assert.Empty(t, errs)
	assert.Equal(t, []fxast.Token{{Type: fxast.TokEOF, Line: 1, Column: 1}}, tokens)
}

func TestTokenize_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "strict equality is one token",
			input: "a===b!==c",
			want:  []string{"IDENTIFIER a", "STRICT_EQ ===", "IDENTIFIER b", "STRICT_NEQ !==", "IDENTIFIER c", "EOF "},
		},
		{
			name:  "two character operators",
			input: "a==b!=c<=d>=e**f",
			want: []string{
				"IDENTIFIER a", "EQ ==", "IDENTIFIER b", "NEQ !=", "IDENTIFIER c", "LTE <=",
				"IDENTIFIER d", "GTE >=", "IDENTIFIER e", "POWER **", "IDENTIFIER f", "EOF ",
			},
		},
		{
			name:  "logical symbols and concat",
			input: "a&&b||!c&d",
			want: []string{
				"IDENTIFIER a", "AND &&", "IDENTIFIER b", "OR ||", "NOT !", "IDENTIFIER c",
				"CONCAT &", "IDENTIFIER d", "EOF ",
			},
		},
		{
			name:  "punctuation",
			input: "f([1]{a:b},x.y)?%/-*",
			want: []string{
				"IDENTIFIER f", "LPAREN (", "LBRACKET [", "NUMBER 1", "RBRACKET ]", "LBRACE {",
				"IDENTIFIER a", "COLON :", "IDENTIFIER b", "RBRACE }", "COMMA ,", "IDENTIFIER x",
				"DOT .", "IDENTIFIER y", "RPAREN )", "QUESTION ?", "MODULO %", "DIVIDE /",
				"MINUS -", "MULTIPLY *", "EOF ",
			},
		},
		{
			name:  "numbers",
			input: "3.14 .5 1e10 2.5E-3 7E+2",
			want: []string{
				"NUMBER 3.14", "NUMBER .5", "NUMBER 1e10", "NUMBER 2.5E-3", "NUMBER 7E+2", "EOF ",
			},
		},
		{
			name:  "dot without following digit is member access",
			input: "1.e5",
			want:  []string{"NUMBER 1", "DOT .", "IDENTIFIER e5", "EOF "},
		},
		{
			name:  "dot followed by digit starts a number",
			input: "a.5",
			want:  []string{"IDENTIFIER a", "NUMBER .5", "EOF "},
		},
		{
			name:  "keywords keep their casing",
			input: "TRUE and Null Or NOT x false",
			want: []string{
				"BOOLEAN TRUE", "AND and", "NULL Null", "OR Or", "NOT NOT", "IDENTIFIER x",
				"BOOLEAN false", "EOF ",
			},
		},
		{
			name:  "identifier characters",
			input: "$row._id2",
			want:  []string{"IDENTIFIER $row", "DOT .", "IDENTIFIER _id2", "EOF "},
		},
		{
			name:  "whitespace is skipped",
			input: "a +\tb\r\n",
			want:  []string{"IDENTIFIER a", "PLUS +", "IDENTIFIER b", "EOF "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, errs := parser.Tokenize(tt.input)
			require.Empty(t, errs)
			assert.Equal(t, tt.want, typesAndValues(tokens))
		})
	}
}

func TestTokenize_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "double quoted", input: `"hello"`, want: "hello"},
		{name: "single quoted", input: `'hello'`, want: "hello"},
		{name: "other quote inside", input: `'say "hi"'`, want: `say "hi"`},
		{name: "escaped quote", input: `'it\'s'`, want: "it's"},
		{name: "control escapes", input: `"a\nb\tc\rd"`, want: "a\nb\tc\rd"},
		{name: "escaped backslash", input: `"a\\b"`, want: `a\b`},
		{name: "unknown escape drops backslash", input: `"\q\$"`, want: "q$"},
		{name: "empty", input: `""`, want: ""},
		{name: "unicode", input: `"naïve €"`, want: "naïve €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, errs := parser.Tokenize(tt.input)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, fxast.TokString, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Value)
			assert.Equal(t, tt.input, tokens[0].Lexeme(tt.input))
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantErrs   []parser.LexError
		wantTokens []string
	}{
		{
			name:  "exponent without digits",
			input: "1e",
			wantErrs: []parser.LexError{
				{Message: "Invalid number: expected digit after exponent", Start: 0, End: 2, Line: 1, Column: 1},
			},
			wantTokens: []string{"EOF "},
		},
		{
			name:  "exponent sign without digits",
			input: "x + 2e+",
			wantErrs: []parser.LexError{
				{Message: "Invalid number: expected digit after exponent", Start: 4, End: 7, Line: 1, Column: 5},
			},
			wantTokens: []string{"IDENTIFIER x", "PLUS +", "EOF "},
		},
		{
			name:  "unterminated at end of input",
			input: `"abc`,
			wantErrs: []parser.LexError{
				{Message: "Unterminated string", Start: 0, End: 4, Line: 1, Column: 1},
			},
			wantTokens: []string{"EOF "},
		},
		{
			name:  "newline inside string then scanning resumes",
			input: "\"ab\ncd\"",
			wantErrs: []parser.LexError{
				{Message: "Unterminated string: unexpected newline", Start: 0, End: 3, Line: 1, Column: 1},
				{Message: "Unterminated string", Start: 6, End: 7, Line: 2, Column: 3},
			},
			wantTokens: []string{"IDENTIFIER cd", "EOF "},
		},
		{
			name:  "unknown characters are skipped",
			input: "a # b = c",
			wantErrs: []parser.LexError{
				{Message: "Unexpected character: #", Start: 2, End: 3, Line: 1, Column: 3},
				{Message: "Unexpected character: =", Start: 6, End: 7, Line: 1, Column: 7},
			},
			wantTokens: []string{"IDENTIFIER a", "IDENTIFIER b", "IDENTIFIER c", "EOF "},
		},
		{
			name:  "multibyte unknown character",
			input: "é",
			wantErrs: []parser.LexError{
				{Message: "Unexpected character: é", Start: 0, End: 2, Line: 1, Column: 1},
			},
			wantTokens: []string{"EOF "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, errs := parser.Tokenize(tt.input)

			got := make([]parser.LexError, 0, len(errs))
			for _, err := range errs {
				got = append(got, *err)
			}
			if diff := cmp.Diff(tt.wantErrs, got); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantTokens, typesAndValues(tokens))
		})
	}
}

func TestTokenize_LineAndColumn(t *testing.T) {
	t.Parallel()

	tokens, errs := parser.Tokenize("a +\n  bé")
	require.Len(t, errs, 1)
	require.Len(t, tokens, 4)

	b := tokens[2]
	assert.Equal(t, "b", b.Value)
	assert.Equal(t, 6, b.Start)
	assert.Equal(t, fxast.Position{Line: 2, Column: 3}, b.Position())

	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, 4, errs[0].Column)

	eof := tokens[3]
	assert.Equal(t, fxast.TokEOF, eof.Type)
	assert.Equal(t, 9, eof.Start)
	assert.Equal(t, fxast.Position{Line: 2, Column: 5}, eof.Position())
}

func TestTokenize_UnicodeWhitespace(t *testing.T) {
	t.Parallel()

	tokens, errs := parser.Tokenize("\uFEFFa\u00A0+\u30001")
	require.Empty(t, errs)
	assert.Equal(t, []string{"IDENTIFIER a", "PLUS +", "NUMBER 1", "EOF "}, typesAndValues(tokens))

	assert.Equal(t, 3, tokens[0].Start)
	assert.Equal(t, fxast.Position{Line: 1, Column: 2}, tokens[0].Position())
	assert.Equal(t, 6, tokens[1].Start)
	assert.Equal(t, 10, tokens[2].Start)
	assert.Equal(t, fxast.Position{Line: 1, Column: 6}, tokens[2].Position())
}

func TestTokenize_LexemeRoundTrip(t *testing.T) {
	t.Parallel()

	source := `IF(total >= 1e3 && !done, "big\t" & name, {k: [1, .5]}) ?: x.y[0] === NULL`
	tokens, errs := parser.Tokenize(source)
	require.Empty(t, errs)

	for _, tok := range tokens {
		lexeme := tok.Lexeme(source)
		switch tok.Type {
		case fxast.TokEOF:
			assert.Empty(t, lexeme)
		case fxast.TokString:
			assert.Equal(t, `"big\t"`, lexeme)
		default:
			assert.Equal(t, tok.Value, lexeme, "token %s", tok)
		}
	}
}
