package linter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// verifyOne runs a single-rule engine over text and returns the outcome.
func verifyOne(t *testing.T, rule linter.Rule, text string, opts linter.VerifyOptions) ([]linter.Problem, error) {
	t.Helper()

	engine := newEngine(t, map[string]linter.Rule{"subject": rule})

	return engine.Verify(text, linter.Config{
		Rules: map[string]any{"subject": "error"},
	}, opts)
}

// reportFirstWord reports the first Identifier with the given descriptor
// fields merged over the node.
func reportFirstWord(desc linter.ReportDescriptor, meta linter.Meta) linter.Rule {
	return linter.Rule{
		Meta: meta,
		Create: func(ctx *linter.Context) linter.ListenerMap {
			done := false

			return linter.ListenerMap{"Identifier": func(node *tree.Node) {
				if done {
					return
				}

				done = true

				if desc.Node == nil && desc.Loc == nil {
					desc.Node = node
				}

				ctx.Report(desc)
			}}
		},
	}
}

func TestReport_MessageInterpolation(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Message: "Unexpected {{name}} near {{name}}.",
		Data:    map[string]string{"name": "tab"},
	}, linter.Meta{})

	problems, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "Unexpected tab near tab.", problems[0].Message)
	assert.Empty(t, problems[0].MessageID)
}

func TestReport_MessageIDResolvesTemplate(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		MessageID: "found",
		Data:      map[string]string{"what": "marker"},
	}, linter.Meta{Messages: map[string]string{"found": "Found a {{what}}."}})

	problems, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "Found a marker.", problems[0].Message)
	assert.Equal(t, "found", problems[0].MessageID)
}

func TestReport_UnknownMessageID(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{MessageID: "missing"},
		linter.Meta{Messages: map[string]string{"found": "Found."}})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)

	var contractErr *linter.ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "subject", contractErr.RuleID)
	assert.Contains(t, err.Error(), "unknown messageId")
}

func TestReport_MessageAndIDAreExclusive(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{Message: "text", MessageID: "found"},
		linter.Meta{Messages: map[string]string{"found": "Found."}})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestReport_MessageRequired(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{}, linter.Meta{})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a message nor a messageId")
}

func TestReport_LocationRequired(t *testing.T) {
	t.Parallel()

	rule := linter.Rule{Create: func(ctx *linter.Context) linter.ListenerMap {
		return linter.ListenerMap{tree.Program: func(*tree.Node) {
			ctx.Report(linter.ReportDescriptor{Message: "floating"})
		}}
	}}

	engine := newEngine(t, map[string]linter.Rule{"subject": rule})

	_, err := engine.Verify("x", linter.Config{
		Rules: map[string]any{"subject": "error"},
	}, linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a node or an explicit location")
}

func TestReport_LocOverridesNodePosition(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Loc:     &tree.Positions{StartLine: 9, StartCol: 4, EndLine: 9, EndCol: 6},
		Message: "shifted",
	}, linter.Meta{})

	problems, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, 9, problems[0].Line)
	assert.Equal(t, 4, problems[0].Column)
	assert.Equal(t, 9, problems[0].EndLine)
	assert.Equal(t, 6, problems[0].EndColumn)

	// No node was attached, so no type tag is recorded.
	assert.Empty(t, problems[0].NodeType)
}

func TestReport_FixRequiresFixableMeta(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Message: "m",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			return []linter.Edit{fixer.ReplaceRange([2]int{0, 1}, "y")}
		},
	}, linter.Meta{})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)

	var contractErr *linter.ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Contains(t, err.Error(), "meta.fixable")
}

func TestReport_FixWithFixableMeta(t *testing.T) {
	t.Parallel()

	rule := linter.Rule{
		Meta: linter.Meta{Fixable: linter.FixableCode},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{"Identifier": func(node *tree.Node) {
				ctx.Report(linter.ReportDescriptor{
					Node:    node,
					Message: "m",
					Fix: func(fixer linter.RuleFixer) []linter.Edit {
						return []linter.Edit{fixer.Replace(node, "fixed")}
					},
				})
			}}
		},
	}

	problems, err := verifyOne(t, rule, "bad", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.NotNil(t, problems[0].Fix)
	assert.Equal(t, [2]int{0, 3}, problems[0].Fix.Range)
	assert.Equal(t, "fixed", problems[0].Fix.Text)
}

func TestReport_EmptyFixIsWithdrawn(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Message: "m",
		Fix:     func(linter.RuleFixer) []linter.Edit { return nil },
	}, linter.Meta{Fixable: linter.FixableWhitespace})

	problems, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Nil(t, problems[0].Fix)
}

func TestReport_MultipleEditsMergePreservingMiddleText(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Message: "m",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			// Supplied out of order on purpose.
			return []linter.Edit{
				fixer.ReplaceRange([2]int{6, 7}, "Z"),
				fixer.ReplaceRange([2]int{0, 1}, "A"),
			}
		},
	}, linter.Meta{Fixable: linter.FixableCode})

	problems, err := verifyOne(t, rule, "abcdefg", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.NotNil(t, problems[0].Fix)
	assert.Equal(t, [2]int{0, 7}, problems[0].Fix.Range)
	assert.Equal(t, "AbcdefZ", problems[0].Fix.Text)
}

func TestReport_OverlappingEditsRejected(t *testing.T) {
	t.Parallel()

	rule := reportFirstWord(linter.ReportDescriptor{
		Message: "m",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			return []linter.Edit{
				fixer.ReplaceRange([2]int{0, 4}, "A"),
				fixer.ReplaceRange([2]int{2, 6}, "B"),
			}
		},
	}, linter.Meta{Fixable: linter.FixableCode})

	_, err := verifyOne(t, rule, "abcdefg", linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not overlap")
}

func TestReport_SuggestionsRequireMeta(t *testing.T) {
	t.Parallel()

	suggest := []linter.SuggestionDescriptor{{
		Desc: "remove it",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			return []linter.Edit{fixer.RemoveRange([2]int{0, 1})}
		},
	}}

	rule := reportFirstWord(linter.ReportDescriptor{Message: "m", Suggest: suggest}, linter.Meta{})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta.hasSuggestions")
	assert.NotContains(t, err.Error(), "deprecated")
}

func TestReport_DeprecatedSuggestionFlagIsCalledOut(t *testing.T) {
	t.Parallel()

	suggest := []linter.SuggestionDescriptor{{
		Desc: "remove it",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			return []linter.Edit{fixer.RemoveRange([2]int{0, 1})}
		},
	}}

	rule := reportFirstWord(linter.ReportDescriptor{Message: "m", Suggest: suggest},
		linter.Meta{Docs: linter.Docs{Suggestion: true}})

	_, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deprecated meta.docs.suggestion")
}

func TestReport_SuggestionsWithMeta(t *testing.T) {
	t.Parallel()

	suggest := []linter.SuggestionDescriptor{
		{
			Desc: "remove it",
			Fix: func(fixer linter.RuleFixer) []linter.Edit {
				return []linter.Edit{fixer.RemoveRange([2]int{0, 1})}
			},
		},
		{Desc: "fixless entry is skipped"},
	}

	rule := reportFirstWord(linter.ReportDescriptor{Message: "m", Suggest: suggest},
		linter.Meta{HasSuggestions: true})

	problems, err := verifyOne(t, rule, "x", linter.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Len(t, problems[0].Suggestions, 1)
	assert.Equal(t, [2]int{0, 1}, problems[0].Suggestions[0].Range)
	assert.Empty(t, problems[0].Suggestions[0].Text)
}

func TestReport_DisableFixesStripsAfterValidation(t *testing.T) {
	t.Parallel()

	valid := linter.Rule{
		Meta: linter.Meta{Fixable: linter.FixableCode, HasSuggestions: true},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{"Identifier": func(node *tree.Node) {
				ctx.Report(linter.ReportDescriptor{
					Node:    node,
					Message: "m",
					Fix: func(fixer linter.RuleFixer) []linter.Edit {
						return []linter.Edit{fixer.Replace(node, "y")}
					},
					Suggest: []linter.SuggestionDescriptor{{
						Desc: "alt",
						Fix: func(fixer linter.RuleFixer) []linter.Edit {
							return []linter.Edit{fixer.Remove(node)}
						},
					}},
				})
			}}
		},
	}

	problems, err := verifyOne(t, valid, "x", linter.VerifyOptions{DisableFixes: true})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Nil(t, problems[0].Fix)
	assert.Nil(t, problems[0].Suggestions)

	// Contract validation still applies with fixes disabled.
	invalid := reportFirstWord(linter.ReportDescriptor{
		Message: "m",
		Fix: func(fixer linter.RuleFixer) []linter.Edit {
			return []linter.Edit{fixer.ReplaceRange([2]int{0, 1}, "y")}
		},
	}, linter.Meta{})

	_, err = verifyOne(t, invalid, "x", linter.VerifyOptions{DisableFixes: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta.fixable")
}

func TestReport_FixerEditShapes(t *testing.T) {
	t.Parallel()

	node := tree.NewBuilder("Identifier").WithPositions(span("hello", 0, 5)).Build()

	var fixer linter.RuleFixer

	assert.Equal(t, linter.Edit{Range: [2]int{0, 5}, Text: "bye"}, fixer.Replace(node, "bye"))
	assert.Equal(t, linter.Edit{Range: [2]int{0, 0}, Text: "x"}, fixer.InsertBefore(node, "x"))
	assert.Equal(t, linter.Edit{Range: [2]int{5, 5}, Text: "x"}, fixer.InsertAfter(node, "x"))
	assert.Equal(t, linter.Edit{Range: [2]int{0, 5}}, fixer.Remove(node))
	assert.Equal(t, linter.Edit{Range: [2]int{1, 2}, Text: "y"}, fixer.ReplaceRange([2]int{1, 2}, "y"))
	assert.Equal(t, linter.Edit{Range: [2]int{1, 2}}, fixer.RemoveRange([2]int{1, 2}))
}
