package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funk-lang/funk/pkg/lexer"
)

func scanAll(source string) []lexer.Token {
	l := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == lexer.TokenEOF {
			return tokens
		}
	}
}

func types(tokens []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestScansPunctuationAndKeywords(t *testing.T) {
	tokens := scanAll("function greet(x) { return x } greet(I)")
	got := types(tokens)

	require.Equal(t, []lexer.TokenType{
		lexer.TokenFunction, lexer.TokenName, lexer.TokenLeftParen, lexer.TokenName,
		lexer.TokenRightParen, lexer.TokenLeftBrace, lexer.TokenReturn, lexer.TokenName,
		lexer.TokenRightBrace, lexer.TokenName, lexer.TokenLeftParen, lexer.TokenName,
		lexer.TokenRightParen, lexer.TokenEOF,
	}, got)
}

func TestArrowToken(t *testing.T) {
	tokens := scanAll("(x) => x")
	got := types(tokens)
	assert.Contains(t, got, lexer.TokenArrow)
}

func TestNamesWithHyphenAndDot(t *testing.T) {
	tokens := scanAll("my-name.field")
	require.Len(t, tokens, 2)
	assert.Equal(t, lexer.TokenName, tokens[0].Type)
	assert.Equal(t, "my-name.field", tokens[0].Lexeme)
}

func TestLineComment(t *testing.T) {
	tokens := scanAll("a // this is ignored\nb")
	got := types(tokens)
	require.Equal(t, []lexer.TokenType{lexer.TokenName, lexer.TokenName, lexer.TokenEOF}, got)
}

func TestBlockCommentStopsAtFirstCloseMarker(t *testing.T) {
	// Block comments don't nest: the inner /* opens nothing and the first
	// */ ends the comment, per spec.md's boundary case.
	tokens := scanAll("a /* one /* two */ b")
	got := types(tokens)
	// "b" after the first closing marker is a real NAME token.
	require.Equal(t, []lexer.TokenType{lexer.TokenName, lexer.TokenName, lexer.TokenEOF}, got)
	assert.Equal(t, "b", tokens[1].Lexeme)
}

func TestUnrecognizedByteYieldsEOF(t *testing.T) {
	tokens := scanAll("a $ b")
	// scanning stops producing useful tokens once it hits '$'
	assert.Equal(t, lexer.TokenName, tokens[0].Type)
	assert.Equal(t, lexer.TokenEOF, tokens[1].Type)
}

func TestLineNumbersTrackNewlines(t *testing.T) {
	l := lexer.New("a\n\nb")
	first := l.Next()
	second := l.Next()
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 3, second.Line)
}

func TestEmptySourceIsImmediatelyEOF(t *testing.T) {
	tokens := scanAll("")
	assert.Equal(t, []lexer.TokenType{lexer.TokenEOF}, types(tokens))
}
