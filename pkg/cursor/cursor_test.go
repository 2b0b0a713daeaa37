package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lintfang/pkg/cursor"
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

func makeToken(tokenType, value string, start int) token.Token {
	return token.Token{
		Type:  tokenType,
		Value: value,
		Pos:   tree.Positions{StartOffset: start, EndOffset: start + len(value)},
	}
}

func testTokens() []token.Token {
	return []token.Token{
		makeToken("Keyword", "var", 0),
		makeToken("Identifier", "x", 4),
		makeToken("Punctuator", "=", 6),
		makeToken("Numeric", "1", 8),
		makeToken("Punctuator", ";", 9),
	}
}

func testComments() []token.Token {
	return []token.Token{
		makeToken(token.TypeLineComment, "// lead", 11),
		makeToken(token.TypeBlockComment, "/* tail */", 20),
	}
}

func values(tokens []token.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Value)
	}

	return out
}

func TestFactory_ForwardWholeRange(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())

	got := cursor.Collect(factory.Forward(0, 100, cursor.DefaultOptions()))
	assert.Equal(t, []string{"var", "x", "=", "1", ";"}, values(got))
}

func TestFactory_ForwardRespectsBounds(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())

	// Half-open window: the token starting at offset 9 is excluded.
	got := cursor.Collect(factory.Forward(4, 9, cursor.DefaultOptions()))
	assert.Equal(t, []string{"x", "=", "1"}, values(got))
}

func TestFactory_BackwardReversesOrder(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())

	got := cursor.Collect(factory.Backward(0, 100, cursor.DefaultOptions()))
	assert.Equal(t, []string{";", "1", "=", "x", "var"}, values(got))
}

func TestFactory_MergedIncludesCommentsInPositionOrder(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())
	opts := cursor.DefaultOptions()
	opts.IncludeComments = true

	forward := cursor.Collect(factory.Forward(0, 100, opts))
	assert.Equal(t, []string{"var", "x", "=", "1", ";", "// lead", "/* tail */"}, values(forward))

	backward := cursor.Collect(factory.Backward(0, 100, opts))
	assert.Equal(t, []string{"/* tail */", "// lead", ";", "1", "=", "x", "var"}, values(backward))
}

func TestFactory_FilterSkipLimitCompose(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())
	opts := cursor.Options{
		Filter: func(tok token.Token) bool { return tok.Type != "Punctuator" },
		Skip:   1,
		Count:  2,
	}

	// Filter first drops punctuators, skip removes "var", limit keeps two.
	got := cursor.Collect(factory.Forward(0, 100, opts))
	assert.Equal(t, []string{"x", "1"}, values(got))
}

func TestFactory_ZeroCountIsEmpty(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())
	opts := cursor.DefaultOptions()
	opts.Count = 0

	assert.Empty(t, cursor.Collect(factory.Forward(0, 100, opts)))
}

func TestFactory_NoLimitIsUnbounded(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())
	opts := cursor.DefaultOptions()
	require.Equal(t, cursor.NoLimit, opts.Count)

	got := cursor.Collect(factory.Forward(0, 100, opts))
	assert.Len(t, got, 5)
}

func TestFactory_SkipPastEnd(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())
	opts := cursor.DefaultOptions()
	opts.Skip = 10

	assert.Empty(t, cursor.Collect(factory.Forward(0, 100, opts)))
}

func TestFactory_EmptyWindow(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), testComments())

	assert.Empty(t, cursor.Collect(factory.Forward(50, 60, cursor.DefaultOptions())))
	assert.Empty(t, cursor.Collect(factory.Backward(50, 60, cursor.DefaultOptions())))
}

func TestCursor_SingleUse(t *testing.T) {
	t.Parallel()

	factory := cursor.NewFactory(testTokens(), nil)
	c := factory.Forward(0, 100, cursor.DefaultOptions())

	require.NotEmpty(t, cursor.Collect(c))
	assert.False(t, c.MoveNext())
}
