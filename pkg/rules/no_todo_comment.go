package rules

import (
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// todoMarkers are the comment markers the rule flags.
var todoMarkers = []string{"TODO", "FIXME", "XXX"}

func noTodoCommentRule() linter.Rule {
	return linter.Rule{
		Meta: linter.Meta{
			Docs: linter.Docs{
				Description: "disallow TODO-style markers in comments",
				Category:    "hygiene",
				Recommended: false,
			},
			Type:           "suggestion",
			HasSuggestions: true,
			Messages: map[string]string{
				"unexpectedMarker": "Unexpected {{marker}} comment.",
				"removeComment":    "Remove this comment.",
			},
		},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{
				tree.Program: func(_ *tree.Node) {
					for _, comment := range ctx.SourceCode().Comments {
						marker := markerIn(comment.Value)
						if marker == "" {
							continue
						}

						pos := comment.Pos
						start, end := pos.StartOffset, pos.EndOffset

						ctx.Report(linter.ReportDescriptor{
							Loc:       &pos,
							MessageID: "unexpectedMarker",
							Data:      map[string]string{"marker": marker},
							Suggest: []linter.SuggestionDescriptor{{
								MessageID: "removeComment",
								Fix: func(fixer linter.RuleFixer) []linter.Edit {
									return []linter.Edit{fixer.RemoveRange([2]int{start, end})}
								},
							}},
						})
					}
				},
			}
		},
	}
}

func markerIn(comment string) string {
	upper := strings.ToUpper(comment)

	for _, marker := range todoMarkers {
		if strings.Contains(upper, marker) {
			return marker
		}
	}

	return ""
}
