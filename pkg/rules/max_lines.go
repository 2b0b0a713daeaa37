package rules

import (
	"strconv"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// DefaultMaxLines bounds file length when the rule is configured bare.
const DefaultMaxLines = 300

func maxLinesRule() linter.Rule {
	return linter.Rule{
		Meta: linter.Meta{
			Docs: linter.Docs{
				Description: "enforce a maximum number of lines per file",
				Category:    "hygiene",
				Recommended: false,
			},
			Type: "suggestion",
			Messages: map[string]string{
				"tooManyLines": "File has too many lines ({{actual}}). Maximum allowed is {{max}}.",
			},
			Schema: []any{
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"max": map[string]any{"type": "integer", "minimum": 0},
					},
					"additionalProperties": false,
				},
			},
		},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			limit := maxLinesLimit(ctx.Options())

			return linter.ListenerMap{
				tree.Program: func(_ *tree.Node) {
					lines := ctx.SourceCode().Lines()
					if len(lines) <= limit {
						return
					}

					ctx.Report(linter.ReportDescriptor{
						Loc: &tree.Positions{
							StartLine: limit + 1,
							StartCol:  1,
							EndLine:   len(lines),
							EndCol:    1,
						},
						MessageID: "tooManyLines",
						Data: map[string]string{
							"actual": strconv.Itoa(len(lines)),
							"max":    strconv.Itoa(limit),
						},
					})
				},
			}
		},
	}
}

func maxLinesLimit(options []any) int {
	if len(options) == 0 {
		return DefaultMaxLines
	}

	opts, ok := options[0].(map[string]any)
	if !ok {
		return DefaultMaxLines
	}

	switch v := opts["max"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return DefaultMaxLines
	}
}
