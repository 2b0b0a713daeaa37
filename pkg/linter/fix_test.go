package linter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lintfang/internal/patcher"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// replaceWord reports every Identifier equal to from and fixes it to to.
func replaceWord(from, to string) linter.Rule {
	return linter.Rule{
		Meta: linter.Meta{Fixable: linter.FixableCode},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{"Identifier": func(node *tree.Node) {
				if node.Token != from {
					return
				}

				ctx.Report(linter.ReportDescriptor{
					Node:    node,
					Message: "use " + to,
					Fix: func(fixer linter.RuleFixer) []linter.Edit {
						return []linter.Edit{fixer.Replace(node, to)}
					},
				})
			}}
		},
	}
}

// shrinkWord halves any Identifier longer than one byte, so repeated passes
// converge on single-character words.
func shrinkWord() linter.Rule {
	return linter.Rule{
		Meta: linter.Meta{Fixable: linter.FixableCode},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{"Identifier": func(node *tree.Node) {
				if len(node.Token) < 2 {
					return
				}

				ctx.Report(linter.ReportDescriptor{
					Node:    node,
					Message: "too long",
					Fix: func(fixer linter.RuleFixer) []linter.Edit {
						return []linter.Edit{fixer.Replace(node, node.Token[:len(node.Token)/2])}
					},
				})
			}}
		},
	}
}

func TestVerifyAndFix_RequiresPatcher(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, map[string]linter.Rule{"swap": replaceWord("a", "b")})

	_, err := engine.VerifyAndFix("a", linter.Config{
		Rules: map[string]any{"swap": "error"},
	}, linter.FixOptions{})
	require.ErrorIs(t, err, linter.ErrNoPatcher)
}

func TestVerifyAndFix_SinglePass(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, map[string]linter.Rule{"swap": replaceWord("bad", "good")},
		linter.WithPatcher(patcher.New()))

	result, err := engine.VerifyAndFix("bad ok bad", linter.Config{
		Rules: map[string]any{"swap": "error"},
	}, linter.FixOptions{})
	require.NoError(t, err)

	assert.True(t, result.Fixed)
	assert.Equal(t, "good ok good", result.Output)
	assert.Empty(t, result.Messages)
}

func TestVerifyAndFix_ConvergesOverMultiplePasses(t *testing.T) {
	t.Parallel()

	parses := 0
	engine := linter.New(linter.WithPatcher(patcher.New()))
	engine.DefineParser(linter.DefaultParserName, parserFunc(
		func(_, text string, _ map[string]any) (*linter.ParseResult, error) {
			parses++

			return parseWords(text), nil
		}))
	engine.DefineRule("shrink", shrinkWord())

	result, err := engine.VerifyAndFix("aaaa", linter.Config{
		Rules: map[string]any{"shrink": "error"},
	}, linter.FixOptions{})
	require.NoError(t, err)

	assert.True(t, result.Fixed)
	assert.Equal(t, "a", result.Output)
	assert.Empty(t, result.Messages)

	// Two fixing passes plus the clean pass that terminates the loop.
	assert.Equal(t, 3, parses)
}

func TestVerifyAndFix_PassCapWithFinalReverify(t *testing.T) {
	t.Parallel()

	// The rule oscillates the text, so every pass applies an edit and the
	// loop only stops at the pass cap.
	engine := newEngine(t, map[string]linter.Rule{
		"to-b": replaceWord("a", "b"),
		"to-a": replaceWord("b", "a"),
	}, linter.WithPatcher(patcher.New()))

	result, err := engine.VerifyAndFix("a", linter.Config{
		Rules: map[string]any{"to-b": "error", "to-a": "error"},
	}, linter.FixOptions{})
	require.NoError(t, err)

	assert.True(t, result.Fixed)

	// Ten flips land back on the original text, and the final verification
	// reports against that exact text.
	assert.Equal(t, "a", result.Output)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "use b", result.Messages[0].Message)
}

func TestVerifyAndFix_FatalProblemStopsImmediately(t *testing.T) {
	t.Parallel()

	engine := linter.New(linter.WithPatcher(patcher.New()))
	engine.DefineParser(linter.DefaultParserName, parserFunc(
		func(_, _ string, _ map[string]any) (*linter.ParseResult, error) {
			return nil, &linter.ParseError{Message: "broken input", Line: 1, Column: 1}
		}))

	result, err := engine.VerifyAndFix("{{{", linter.Config{}, linter.FixOptions{})
	require.NoError(t, err)

	assert.False(t, result.Fixed)
	assert.Equal(t, "{{{", result.Output)
	require.Len(t, result.Messages, 1)
	assert.True(t, result.Messages[0].Fatal)
}

func TestVerifyAndFix_FilterBlocksEdits(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, map[string]linter.Rule{"swap": replaceWord("bad", "good")},
		linter.WithPatcher(patcher.New()))

	result, err := engine.VerifyAndFix("bad", linter.Config{
		Rules: map[string]any{"swap": "error"},
	}, linter.FixOptions{
		Filter: func(linter.Problem) bool { return false },
	})
	require.NoError(t, err)

	assert.False(t, result.Fixed)
	assert.Equal(t, "bad", result.Output)
	require.Len(t, result.Messages, 1)
}

func TestVerifyAndFix_RuleDefectPropagatesAsError(t *testing.T) {
	t.Parallel()

	broken := linter.Rule{Create: func(*linter.Context) linter.ListenerMap {
		return linter.ListenerMap{"Identifier": func(*tree.Node) {
			panic("defect")
		}}
	}}

	engine := newEngine(t, map[string]linter.Rule{"broken": broken},
		linter.WithPatcher(patcher.New()))

	_, err := engine.VerifyAndFix("x", linter.Config{
		Rules: map[string]any{"broken": "error"},
	}, linter.FixOptions{})
	require.Error(t, err)

	var ruleErr *linter.RuleError
	assert.ErrorAs(t, err, &ruleErr)
}
