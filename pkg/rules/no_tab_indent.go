package rules

import (
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// tabReplacement is what each leading tab becomes when the rule fixes.
const tabReplacement = "    "

func noTabIndentRule() linter.Rule {
	return linter.Rule{
		Meta: linter.Meta{
			Docs: linter.Docs{
				Description: "disallow tabs in line indentation",
				Category:    "layout",
				Recommended: false,
			},
			Type:    "layout",
			Fixable: linter.FixableWhitespace,
			Messages: map[string]string{
				"tabIndent": "Indentation uses tabs; spaces are required.",
			},
		},
		Create: func(ctx *linter.Context) linter.ListenerMap {
			return linter.ListenerMap{
				tree.Program: func(_ *tree.Node) {
					text := ctx.SourceCode().Text
					offset := 0

					for lineNo, line := range strings.Split(text, "\n") {
						tabs := leadingTabs(line)
						if tabs > 0 {
							start, end := offset, offset+tabs

							ctx.Report(linter.ReportDescriptor{
								Loc: &tree.Positions{
									StartLine: lineNo + 1,
									StartCol:  1,
									EndLine:   lineNo + 1,
									EndCol:    tabs + 1,
								},
								MessageID: "tabIndent",
								Fix: func(fixer linter.RuleFixer) []linter.Edit {
									return []linter.Edit{
										fixer.ReplaceRange([2]int{start, end}, strings.Repeat(tabReplacement, tabs)),
									}
								},
							})
						}

						offset += len(line) + 1
					}
				},
			}
		},
	}
}

func leadingTabs(line string) int {
	count := 0
	for count < len(line) && line[count] == '\t' {
		count++
	}

	return count
}
