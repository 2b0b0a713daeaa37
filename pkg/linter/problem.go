package linter

import (
	"sort"
)

// Edit is one atomic textual replacement over the current text: the
// half-open byte range [Start, End) is replaced by Text.
type Edit struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// Problem is one diagnostic finding. The field set is the interoperability
// contract with downstream formatters and patchers; reimplementations of
// either must preserve it field for field.
type Problem struct {
	// RuleID identifies the producing rule; empty for engine-synthesized
	// problems such as parse failures.
	RuleID string `json:"ruleId"`

	// Severity is SeverityWarn or SeverityError; problems never carry
	// SeverityOff.
	Severity Severity `json:"severity"`

	// Message is the resolved, interpolated diagnostic text.
	Message string `json:"message"`

	// MessageID is the meta.Messages key the message came from, when the
	// rule reported by id rather than raw text.
	MessageID string `json:"messageId,omitempty"`

	// Line and Column are 1-based start coordinates; EndLine and EndColumn
	// are the 1-based exclusive end, zero when unknown.
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"endLine,omitempty"`
	EndColumn int `json:"endColumn,omitempty"`

	// NodeType is the reported node's type tag, empty when the report was
	// not tied to a node.
	NodeType string `json:"nodeType,omitempty"`

	// Fatal marks a parse failure. Unresolved-parser and missing-rule
	// problems are severity-2 but not fatal.
	Fatal bool `json:"fatal,omitempty"`

	// Fix is present only when the owning rule declares meta.Fixable.
	Fix *Edit `json:"fix,omitempty"`

	// Suggestions are alternative, non-automatically-applied edits; present
	// only when the owning rule declares meta.HasSuggestions.
	Suggestions []Edit `json:"suggestions,omitempty"`
}

// FixResult is the outcome of one VerifyAndFix convergence run.
type FixResult struct {
	// Fixed reports whether any pass ever applied an edit, even if the
	// final pass applied none.
	Fixed bool `json:"fixed"`

	// Messages are the problems remaining against Output.
	Messages []Problem `json:"messages"`

	// Output is the latest text, rewritten or not.
	Output string `json:"output"`
}

// sortProblems orders problems by (line, column), stably, so downstream
// consumers see a deterministic order independent of producing rule.
func sortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Line != problems[j].Line {
			return problems[i].Line < problems[j].Line
		}

		return problems[i].Column < problems[j].Column
	})
}
