package linter

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// Variable is one resolvable name in a scope.
type Variable struct {
	Name string

	// Writeable reports whether assignments to the variable are legal.
	Writeable bool

	// FromConfig and FromComment record how a global came to exist when it
	// was injected by scope augmentation rather than declared in source.
	FromConfig  bool
	FromComment bool

	// Used marks the variable as referenced for no-unused style analyses;
	// configured "exported" names are marked used during augmentation.
	Used bool

	// References are the resolved references pointing at this variable.
	References []*Reference
}

// Reference is one identifier use site.
type Reference struct {
	Name       string
	Identifier *tree.Node
	Write      bool

	// Resolved points at the variable the reference binds to, nil while
	// unresolved.
	Resolved *Variable
}

// Scope is a lexical scope. The engine only manipulates the global scope
// directly (for configured-global augmentation); rules may inspect any
// scope their scope manager exposes.
type Scope struct {
	Type      string
	Block     *tree.Node
	Variables []*Variable

	// Through holds references that did not resolve inside this scope.
	// Global augmentation re-links entries that match an injected global.
	Through []*Reference

	variablesByName map[string]*Variable
}

// NewScope creates an empty scope of the given type for the given block.
func NewScope(scopeType string, block *tree.Node) *Scope {
	return &Scope{
		Type:            scopeType,
		Block:           block,
		variablesByName: make(map[string]*Variable),
	}
}

// Variable returns the scope's variable with the given name, or nil.
func (s *Scope) Variable(name string) *Variable {
	return s.variablesByName[name]
}

// AddVariable inserts a variable, replacing none; the caller guarantees the
// name is not already present.
func (s *Scope) AddVariable(variable *Variable) {
	s.Variables = append(s.Variables, variable)
	s.variablesByName[variable.Name] = variable
}

// ScopeManager is the external scope-resolution collaborator. The engine
// requires only global-scope access for augmentation plus per-node lookup
// for rule queries.
type ScopeManager interface {
	// GlobalScope returns the program's outermost scope.
	GlobalScope() *Scope

	// Acquire returns the innermost scope for the given node, or the
	// global scope when no narrower scope applies.
	Acquire(node *tree.Node) *Scope
}
