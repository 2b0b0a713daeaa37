package linter

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// sharedContext carries the accessors common to every rule in one pass. It
// is built once per pass and shared by all rule contexts; nothing in it is
// mutable after construction, so no rule can corrupt another rule's view.
type sharedContext struct {
	src              *SourceCode
	filename         string
	physicalFilename string
	settings         map[string]any
	parserName       string
	parserOptions    map[string]any
	disableFixes     bool

	disp *dispatcher
}

// Context is the per-rule, per-pass capability object handed to a rule's
// listener factory. It layers rule identity and options over the shared
// pass context; both layers are immutable after construction.
type Context struct {
	shared   *sharedContext
	id       string
	options  []any
	severity Severity
	meta     *Meta

	trans *translator
}

func newContext(shared *sharedContext, id string, options []any, severity Severity, meta *Meta) *Context {
	return &Context{
		shared:   shared,
		id:       id,
		options:  options,
		severity: severity,
		meta:     meta,
	}
}

// ID returns the rule's configured identifier.
func (c *Context) ID() string {
	return c.id
}

// Options returns the rule's configured options: the config value minus its
// severity head.
func (c *Context) Options() []any {
	return c.options
}

// Settings returns the shared free-form settings map.
func (c *Context) Settings() map[string]any {
	return c.shared.settings
}

// ParserName returns the resolved parser identifier for this pass.
func (c *Context) ParserName() string {
	return c.shared.parserName
}

// ParserOptions returns the merged parser options for this pass.
func (c *Context) ParserOptions() map[string]any {
	return c.shared.parserOptions
}

// Filename returns the effective filename under analysis.
func (c *Context) Filename() string {
	return c.shared.filename
}

// PhysicalFilename returns the on-disk filename, which differs from
// Filename when a preprocessor synthesized the analyzed text.
func (c *Context) PhysicalFilename() string {
	return c.shared.physicalFilename
}

// SourceCode returns the parsed unit under analysis.
func (c *Context) SourceCode() *SourceCode {
	return c.shared.src
}

// Ancestors returns the ancestor chain of the node currently being
// dispatched, ordered root-first. The slice is a snapshot.
func (c *Context) Ancestors() []*tree.Node {
	return c.shared.disp.ancestorsOfCurrent()
}

// Scope returns the innermost scope of the node currently being
// dispatched.
func (c *Context) Scope() *Scope {
	return c.shared.src.Scopes().Acquire(c.shared.disp.currentNode())
}

// MarkVariableAsUsed marks the named variable as used, searching from the
// current scope outwards to the global scope. It reports whether a
// variable with that name was found.
func (c *Context) MarkVariableAsUsed(name string) bool {
	scopes := c.shared.src.Scopes()

	for _, scope := range []*Scope{scopes.Acquire(c.shared.disp.currentNode()), scopes.GlobalScope()} {
		if variable := scope.Variable(name); variable != nil {
			variable.Used = true

			return true
		}
	}

	return false
}

// Report records one finding. Contract violations (an edit without
// meta.Fixable, suggestions without meta.HasSuggestions, a malformed
// descriptor) abort the whole pass.
func (c *Context) Report(desc ReportDescriptor) {
	if c.trans == nil {
		c.trans = &translator{
			src:          c.shared.src,
			ruleID:       c.id,
			severity:     c.severity,
			meta:         c.meta,
			disableFixes: c.shared.disableFixes,
		}
	}

	problem, err := c.trans.translate(desc)
	if err != nil {
		c.shared.disp.setFatal(err)

		return
	}

	c.shared.disp.addProblem(problem)
}

// GetSourceCode is a pass-through onto SourceCode.
//
// Deprecated: use SourceCode.
func (c *Context) GetSourceCode() *SourceCode {
	return c.SourceCode()
}

// GetAncestors is a pass-through onto Ancestors.
//
// Deprecated: use Ancestors.
func (c *Context) GetAncestors() []*tree.Node {
	return c.Ancestors()
}

// GetScope is a pass-through onto Scope.
//
// Deprecated: use Scope.
func (c *Context) GetScope() *Scope {
	return c.Scope()
}

// GetFilename is a pass-through onto Filename.
//
// Deprecated: use Filename.
func (c *Context) GetFilename() string {
	return c.Filename()
}

// GetSource is a pass-through onto SourceCode().GetText.
//
// Deprecated: use SourceCode().GetText.
func (c *Context) GetSource(node *tree.Node) string {
	return c.shared.src.GetText(node)
}
