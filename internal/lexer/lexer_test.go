package lexer_test

import (
	"testing"

	"componentengine/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func significantKinds(t *testing.T, src string) []lexer.TokenKind {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	var kinds []lexer.TokenKind
	for _, tok := range toks {
		if tok.Significant() {
			kinds = append(kinds, tok.Kind)
		}
	}
	return kinds
}

func TestTokenize(t *testing.T) {
	type testCase struct {
		name  string
		input string
		kinds []lexer.TokenKind
	}

	testCases := []testCase{
		{
			name:  "operators",
			input: "a === b !== c && d || !e",
			kinds: []lexer.TokenKind{
				lexer.TokenIdent, lexer.TokenStrictEq, lexer.TokenIdent, lexer.TokenStrictNotEq,
				lexer.TokenIdent, lexer.TokenAndAnd, lexer.TokenIdent, lexer.TokenOrOr,
				lexer.TokenBang, lexer.TokenIdent, lexer.TokenEOF,
			},
		},
		{
			name:  "optional chain",
			input: "a?.b.c",
			kinds: []lexer.TokenKind{
				lexer.TokenIdent, lexer.TokenOptionalDot, lexer.TokenIdent, lexer.TokenDot,
				lexer.TokenIdent, lexer.TokenEOF,
			},
		},
		{
			name:  "ternary is not optional chaining",
			input: "a ? b : c",
			kinds: []lexer.TokenKind{
				lexer.TokenIdent, lexer.TokenQuestion, lexer.TokenIdent, lexer.TokenColon,
				lexer.TokenIdent, lexer.TokenEOF,
			},
		},
		{
			name:  "match arms",
			input: "match (x) { A -> 1 default -> 2 }",
			kinds: []lexer.TokenKind{
				lexer.TokenMatch, lexer.TokenLParen, lexer.TokenIdent, lexer.TokenRParen,
				lexer.TokenLBrace, lexer.TokenIdent, lexer.TokenMatchArrow, lexer.TokenNumber,
				lexer.TokenDefault, lexer.TokenMatchArrow, lexer.TokenNumber, lexer.TokenRBrace,
				lexer.TokenEOF,
			},
		},
		{
			name:  "less than is not a tag after an operand",
			input: "a < b",
			kinds: []lexer.TokenKind{lexer.TokenIdent, lexer.TokenLT, lexer.TokenIdent, lexer.TokenEOF},
		},
		{
			name:  "template literal",
			input: "`Hello ${name}!`",
			kinds: []lexer.TokenKind{
				lexer.TokenTemplateStart, lexer.TokenTemplateString, lexer.TokenTemplateExprStart,
				lexer.TokenIdent, lexer.TokenTemplateExprEnd, lexer.TokenTemplateString,
				lexer.TokenTemplateEnd, lexer.TokenEOF,
			},
		},
		{
			name:  "tag literal",
			input: `<a href={link.url} class="x" hidden>Go {label}</a>`,
			kinds: []lexer.TokenKind{
				lexer.TokenTagOpen, lexer.TokenTagName, lexer.TokenAttrName, lexer.TokenEq,
				lexer.TokenLBrace, lexer.TokenIdent, lexer.TokenDot, lexer.TokenIdent, lexer.TokenRBrace,
				lexer.TokenAttrName, lexer.TokenEq, lexer.TokenString, lexer.TokenAttrName,
				lexer.TokenTagClose, lexer.TokenTagText, lexer.TokenLBrace, lexer.TokenIdent,
				lexer.TokenRBrace, lexer.TokenTagEndOpen, lexer.TokenTagName, lexer.TokenTagClose,
				lexer.TokenEOF,
			},
		},
		{
			name:  "keywords as member names",
			input: "props.default?.match.from",
			kinds: []lexer.TokenKind{
				lexer.TokenIdent, lexer.TokenDot, lexer.TokenIdent, lexer.TokenOptionalDot,
				lexer.TokenIdent, lexer.TokenDot, lexer.TokenIdent, lexer.TokenEOF,
			},
		},
		{
			name:  "self closing tag after arrow",
			input: "-> <br/>",
			kinds: []lexer.TokenKind{
				lexer.TokenMatchArrow, lexer.TokenTagOpen, lexer.TokenTagName, lexer.TokenTagSelfClose,
				lexer.TokenEOF,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kinds, significantKinds(t, tc.input))
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	for _, src := range []string{"42", "3.14", "1e10", "2.5E-3", "0b1010", "0o17", "0xFF"} {
		toks, err := lexer.Tokenize(src)
		require.NoError(t, err, src)
		require.Len(t, toks, 2, src)
		assert.Equal(t, lexer.TokenNumber, toks[0].Kind, src)
		assert.Equal(t, src, toks[0].Text)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := lexer.Tokenize(`"a\n\"bA"`)
	require.NoError(t, err)
	assert.Equal(t, "a\n\"bA", toks[0].Text)
}

func TestTokenizeErrors(t *testing.T) {
	for _, src := range []string{`"open`, "`open ${x}", "<div>", "a & b", "/* never closed", "'\xff'", "`a\xffb`"} {
		_, err := lexer.Tokenize(src)
		var lexErr *lexer.Error
		assert.ErrorAs(t, err, &lexErr, src)
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	_, err := lexer.Tokenize("x + 'ab\xff'")
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Pos.Line)
	assert.Equal(t, 8, lexErr.Pos.Col)
	assert.Contains(t, lexErr.Msg, "invalid UTF-8")

	toks, err := lexer.Tokenize("'héllo'")
	require.NoError(t, err)
	assert.Equal(t, "héllo", toks[0].Text)
}

func TestPositions(t *testing.T) {
	toks, err := lexer.Tokenize("a\n  bc")
	require.NoError(t, err)
	var last lexer.Token
	for _, tok := range toks {
		if tok.Kind == lexer.TokenIdent {
			last = tok
		}
	}
	assert.Equal(t, lexer.Position{Line: 2, Col: 3, Offset: 4}, last.Pos)
	assert.Equal(t, lexer.Position{Line: 2, Col: 5, Offset: 6}, last.End)
}

func TestStreamMarkRestore(t *testing.T) {
	s, err := lexer.NewStreamFromSource("(a) => b")
	require.NoError(t, err)

	m := s.Mark()
	s.Advance()
	s.Advance()
	assert.Equal(t, lexer.TokenRParen, s.Current().Kind)

	s.Restore(m)
	assert.Equal(t, lexer.TokenLParen, s.Current().Kind)
	assert.Equal(t, lexer.TokenIdent, s.Lookahead(1).Kind)
	assert.Equal(t, lexer.TokenEOF, s.Lookahead(100).Kind)
}

func TestStreamSkipInsignificant(t *testing.T) {
	s, err := lexer.NewStreamFromSource("  // note\n  x")
	require.NoError(t, err)
	assert.Equal(t, lexer.TokenIdent, s.PeekSignificant().Kind)
	s.SkipInsignificant()
	assert.Equal(t, "x", s.Current().Text)
	s.Advance()
	assert.True(t, s.IsAtEnd())
	s.Advance()
	assert.True(t, s.IsAtEnd())
}
