// Package rules ships the built-in rules. They are intentionally small and
// language-agnostic: each works off the generic tree, token, and line view
// of a file rather than grammar-specific node shapes.
package rules

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// All returns the built-in rule set keyed by rule id.
func All() map[string]linter.Rule {
	return map[string]linter.Rule{
		"max-lines":       maxLinesRule(),
		"no-tab-indent":   noTabIndentRule(),
		"no-todo-comment": noTodoCommentRule(),
	}
}

// Register defines every built-in rule on the given engine.
func Register(engine *linter.Linter) {
	engine.DefineRules(All())
}
