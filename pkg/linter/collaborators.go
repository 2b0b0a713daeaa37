package linter

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// ParseResult is the contract a parser fulfils: everything the engine needs
// to build a SourceCode.
type ParseResult struct {
	AST      *tree.Node
	Tokens   []token.Token
	Comments []token.Token

	// VisitorKeys may be nil; traversal then falls back to per-node field
	// enumeration.
	VisitorKeys tree.KeyMap

	// ScopeManager may be nil when the parser performs no scope analysis;
	// the engine then builds a single empty global scope so augmentation
	// and rule queries stay total.
	ScopeManager ScopeManager

	// Services exposes parser-specific helpers to rules.
	Services map[string]any
}

// ParseError is the recoverable parse-failure outcome. The engine folds it
// into a single fatal Problem instead of propagating it as an error.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parser turns raw text into a parse result. Implementations live outside
// the engine and are registered via DefineParser.
type Parser interface {
	Parse(filename, text string, options map[string]any) (*ParseResult, error)
}

// DirectiveType discriminates inline suppression directives.
type DirectiveType string

// Directive types.
const (
	DirectiveDisable         DirectiveType = "disable"
	DirectiveEnable          DirectiveType = "enable"
	DirectiveDisableLine     DirectiveType = "disable-line"
	DirectiveDisableNextLine DirectiveType = "disable-next-line"
)

// DisableDirective is the structured form of one inline suppression
// comment, consumed as opaque input by the engine and interpreted by the
// directive handler.
type DisableDirective struct {
	Type   DirectiveType
	Line   int
	Column int

	// RuleID is empty when the directive applies to every rule.
	RuleID string
}

// GlobalValue describes one declared global's writability.
type GlobalValue struct {
	Writeable bool

	// Off removes the global when true.
	Off bool
}

// Directives is everything a directive handler extracts from a file's
// comments.
type Directives struct {
	Disable []DisableDirective

	// EnabledGlobals are globals declared by inline comments.
	EnabledGlobals map[string]GlobalValue

	// Exported names are marked used during scope augmentation.
	Exported []string

	// Problems reports malformed directives.
	Problems []Problem
}

// DirectiveHandler is the external inline-comment collaborator: it parses
// comments into directives and filters problems through them. A nil
// handler on the engine disables inline configuration entirely.
type DirectiveHandler interface {
	// Extract parses the file's comments into structured directives.
	Extract(src *SourceCode) Directives

	// Apply removes suppressed problems and, per the unused-directive
	// policy ("off", "warn", or "error"), adds problems for directives
	// that suppressed nothing. The input is sorted by (line, column).
	Apply(problems []Problem, directives []DisableDirective, reportUnused string) []Problem
}

// PatchResult is one text-patch round's outcome.
type PatchResult struct {
	Fixed  bool
	Output string
}

// FixFilter decides per finding whether its edit is applied. A nil filter
// applies every applicable edit.
type FixFilter func(Problem) bool

// TextPatcher is the external edit-application collaborator. It must apply
// only non-overlapping edits; the exact conflict policy is its own.
type TextPatcher interface {
	Apply(text string, problems []Problem, filter FixFilter) PatchResult
}

// EventHandlers is the enter/leave pair the dispatcher feeds node events
// through.
type EventHandlers struct {
	Enter func(node *tree.Node)
	Leave func(node *tree.Node)
}

// FlowBuilder is the external control-flow-graph collaborator, treated as
// an event-stream transformer. When set, the dispatcher routes events for
// Program-rooted trees through Wrap exactly once per pass.
type FlowBuilder interface {
	Wrap(inner EventHandlers) EventHandlers
}

// Env is one resolvable environment: predefined globals plus parser option
// overrides.
type Env struct {
	Globals       map[string]GlobalValue
	ParserOptions map[string]any
}

// EnvResolver resolves configured environment identifiers. Identifiers that
// do not resolve are dropped, never a hard failure.
type EnvResolver interface {
	Resolve(name string) (Env, bool)
}

// noEnvResolver is the explicit "no environments available" default.
type noEnvResolver struct{}

func (noEnvResolver) Resolve(string) (Env, bool) {
	return Env{}, false
}
