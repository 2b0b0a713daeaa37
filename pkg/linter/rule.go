package linter

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// Listener observes one traversal event for one node.
type Listener func(node *tree.Node)

// ListenerMap maps selector keys to listeners. A selector is a plain node
// type name for the enter phase, or a node type name suffixed with
// ":exit" for the leave phase.
type ListenerMap map[string]Listener

// ExitSuffix qualifies a selector with the leave phase.
const ExitSuffix = ":exit"

// Docs carries descriptive rule metadata surfaced by tooling.
type Docs struct {
	Description string
	Category    string
	Recommended bool
	URL         string

	// Suggestion is the deprecated predecessor of Meta.HasSuggestions. It
	// no longer enables suggestion reports; rules still carrying only this
	// flag are rejected when they report suggestions.
	Suggestion bool
}

// Meta declares a rule's capabilities and documentation.
type Meta struct {
	Docs Docs

	// Type classifies the rule: "problem", "suggestion", or "layout".
	Type string

	// Fixable must be "code" or "whitespace" for the rule to report edits.
	Fixable string

	// HasSuggestions must be true for the rule to report suggestions.
	HasSuggestions bool

	// Deprecated marks the rule as scheduled for removal.
	Deprecated bool

	// Messages maps message ids to templates with {{name}} placeholders.
	Messages map[string]string

	// Schema optionally holds a JSON schema (as Go values) validating the
	// rule's configured options.
	Schema any
}

// Fixable values.
const (
	FixableCode       = "code"
	FixableWhitespace = "whitespace"
)

// canFix reports whether the meta declares an accepted fixable capability.
func (m *Meta) canFix() bool {
	return m.Fixable == FixableCode || m.Fixable == FixableWhitespace
}

// Rule is the normalized analysis-unit descriptor: a listener factory plus
// capability metadata. Rules supplied as bare factory functions are
// normalized through RuleFromFunc at registration time so dispatch never
// inspects the shape dynamically.
type Rule struct {
	// Create builds the rule's listeners for one file pass. It receives
	// the per-rule capability context and must not retain it past the
	// pass.
	Create func(ctx *Context) ListenerMap

	Meta Meta
}

// RuleFromFunc normalizes a legacy bare listener factory into a Rule with
// empty metadata. Such rules cannot report fixes or suggestions.
func RuleFromFunc(create func(ctx *Context) ListenerMap) Rule {
	return Rule{Create: create}
}

// RuleEntry pairs a registered rule with its id.
type RuleEntry struct {
	ID   string
	Rule Rule
}
