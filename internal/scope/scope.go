// Package scope provides the default scope manager used when a parser does
// not supply its own. It builds a single global scope from the tree's
// identifier nodes: every identifier becomes an unresolved reference in the
// global Through list, ready for the engine to link against configured and
// declared globals.
package scope

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
	"github.com/Sumatoshi-tech/lintfang/pkg/walker"
)

// identifierType is the node type treated as a variable reference.
const identifierType = "Identifier"

// Manager implements linter.ScopeManager over a flat global scope.
type Manager struct {
	global *linter.Scope
}

// Build walks the tree and collects identifier references into a global
// scope. A nil root yields an empty scope.
func Build(root *tree.Node, keys tree.KeyMap) *Manager {
	global := linter.NewScope("global", root)

	if root != nil {
		w := walker.New(keys, func(node, _ *tree.Node) {
			if node.Type != identifierType {
				return
			}

			global.Through = append(global.Through, &linter.Reference{
				Name:       referenceName(node),
				Identifier: node,
			})
		}, nil)
		w.Traverse(root)
	}

	return &Manager{global: global}
}

// GlobalScope returns the single scope the manager maintains.
func (m *Manager) GlobalScope() *linter.Scope {
	return m.global
}

// Acquire returns the global scope for every node; the manager tracks no
// narrower scopes.
func (m *Manager) Acquire(*tree.Node) *linter.Scope {
	return m.global
}

func referenceName(node *tree.Node) string {
	if node.Token != "" {
		return node.Token
	}

	if name, ok := node.Field("name").(string); ok {
		return name
	}

	return ""
}
