// Package tsparse implements the default parser on top of tree-sitter
// grammars. Language routing follows file content and extension detection,
// and the concrete syntax tree is converted into the engine's node, token,
// and comment representation.
package tsparse

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"unsafe"

	forest "github.com/alexaandru/go-sitter-forest"
	golang "github.com/alexaandru/go-sitter-forest/go"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/lintfang/internal/scope"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// Sentinel errors for language routing failures.
var (
	ErrLanguageUndetected   = errors.New("language could not be detected")
	ErrLanguageNotAvailable = errors.New("no grammar available for language")
)

// identifierType is the canonical type emitted for leaf identifier nodes so
// that scope analysis can collect references uniformly across grammars.
const identifierType = "Identifier"

// childrenKey is the single traversal field every converted node uses.
const childrenKey = "children"

// pinnedGrammars maps languages whose grammars are compiled in directly,
// bypassing the forest registry lookup.
var pinnedGrammars = map[string]func() unsafe.Pointer{
	"go": golang.GetLanguage,
}

// grammarAliases maps detected language names that differ from the grammar
// directory naming.
var grammarAliases = map[string]string{
	"c++":             "cpp",
	"c#":              "c_sharp",
	"shell":           "bash",
	"makefile":        "make",
	"protocol buffer": "proto",
	"objective-c":     "c",
}

// Parser implements linter.Parser. Tree-sitter parser instances are pooled
// per language because SetLanguage is the expensive step.
type Parser struct {
	mu    sync.Mutex
	pools map[string]*sync.Pool
}

// New creates a parser with an empty grammar pool.
func New() *Parser {
	return &Parser{pools: make(map[string]*sync.Pool)}
}

// Parse detects the language, runs the grammar, and converts the concrete
// syntax tree. A syntax error in the input is reported as *linter.ParseError
// so callers can surface its location.
func (p *Parser) Parse(filename, text string, options map[string]any) (*linter.ParseResult, error) {
	content := []byte(text)

	langName, err := p.detectLanguage(filename, content, options)
	if err != nil {
		return nil, err
	}

	pool, err := p.poolFor(langName)
	if err != nil {
		return nil, err
	}

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotAvailable, langName)
	}

	defer pool.Put(tsParser)

	tsTree, err := tsParser.ParseString(context.Background(), nil, content)
	if err != nil {
		return nil, &linter.ParseError{Message: err.Error(), Line: 1, Column: 1}
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root.IsNull() {
		return nil, &linter.ParseError{Message: "empty syntax tree", Line: 1, Column: 1}
	}

	if errNode, found := firstErrorNode(root); found {
		pos := nodePositions(errNode)

		return nil, &linter.ParseError{
			Message: fmt.Sprintf("Unexpected token at line %d", pos.StartLine),
			Line:    pos.StartLine,
			Column:  pos.StartCol,
		}
	}

	conv := &converter{source: content, keys: tree.KeyMap{}}
	ast := conv.convert(root, true)

	return &linter.ParseResult{
		AST:          ast,
		Tokens:       conv.tokens,
		Comments:     conv.comments,
		VisitorKeys:  conv.keys,
		ScopeManager: scope.Build(ast, conv.keys),
		Services:     map[string]any{"language": langName},
	}, nil
}

func (p *Parser) detectLanguage(filename string, content []byte, options map[string]any) (string, error) {
	if forced, ok := options["language"].(string); ok && forced != "" {
		return normalizeLanguage(forced), nil
	}

	detected := enry.GetLanguage(path.Base(filename), content)
	if detected == "" {
		return "", fmt.Errorf("%w: %s", ErrLanguageUndetected, filename)
	}

	return normalizeLanguage(detected), nil
}

func (p *Parser) poolFor(langName string) (*sync.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[langName]; ok {
		return pool, nil
	}

	var lang *sitter.Language

	if fn, pinned := pinnedGrammars[langName]; pinned {
		lang = sitter.NewLanguage(fn())
	} else {
		// Grammar lookup panics for unknown names inside the generated
		// registry, so the probe is wrapped in a recover.
		func() {
			defer func() {
				_ = recover() //nolint:errcheck // recover() returns any, not error
			}()

			lang = forest.GetLanguage(langName)
		}()
	}

	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotAvailable, langName)
	}

	pool := &sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(lang)

			return tsParser
		},
	}
	p.pools[langName] = pool

	return pool, nil
}

func normalizeLanguage(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := grammarAliases[lower]; ok {
		return alias
	}

	return strings.ReplaceAll(lower, " ", "_")
}

// converter accumulates tokens and comments while building the owned tree.
type converter struct {
	source   []byte
	tokens   []token.Token
	comments []token.Token
	keys     tree.KeyMap
}

func (c *converter) convert(tsNode sitter.Node, isRoot bool) *tree.Node {
	nodeType := canonicalType(tsNode, isRoot)
	pos := nodePositions(tsNode)

	node := tree.NewBuilder(nodeType).WithPositions(pos).Build()

	childCount := tsNode.NamedChildCount()
	if childCount == 0 {
		node.Token = tsNode.Content(c.source)
		c.tokens = append(c.tokens, token.Token{Type: tsNode.Type(), Value: node.Token, Pos: *pos})

		return node
	}

	children := make([]*tree.Node, 0, childCount)

	for i := range childCount {
		child := tsNode.NamedChild(i)
		if child.IsNull() {
			continue
		}

		if isComment(child.Type()) {
			c.comments = append(c.comments, commentToken(child, c.source))

			continue
		}

		children = append(children, c.convert(child, false))
	}

	if len(children) > 0 {
		node.SetField(childrenKey, children)
	}

	if _, known := c.keys[nodeType]; !known {
		c.keys[nodeType] = []string{childrenKey}
	}

	return node
}

func canonicalType(tsNode sitter.Node, isRoot bool) string {
	if isRoot {
		return tree.Program
	}

	tsType := tsNode.Type()
	if strings.HasSuffix(tsType, "identifier") {
		return identifierType
	}

	return tsType
}

func isComment(tsType string) bool {
	return strings.HasSuffix(tsType, "comment")
}

func commentToken(tsNode sitter.Node, source []byte) token.Token {
	value := tsNode.Content(source)

	tokType := token.TypeLineComment
	if strings.HasPrefix(value, "/*") {
		tokType = token.TypeBlockComment
	}

	return token.Token{Type: tokType, Value: value, Pos: *nodePositions(tsNode)}
}

// firstErrorNode finds the shallowest syntax error produced by the grammar.
func firstErrorNode(tsNode sitter.Node) (sitter.Node, bool) {
	if tsNode.Type() == "ERROR" {
		return tsNode, true
	}

	for i := range tsNode.ChildCount() {
		child := tsNode.Child(i)
		if child.IsNull() {
			continue
		}

		if found, ok := firstErrorNode(child); ok {
			return found, true
		}
	}

	return sitter.Node{}, false
}

func nodePositions(tsNode sitter.Node) *tree.Positions {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()

	return &tree.Positions{
		StartLine:   int(start.Row) + 1,
		StartCol:    int(start.Column) + 1,
		StartOffset: int(tsNode.StartByte()),
		EndLine:     int(end.Row) + 1,
		EndCol:      int(end.Column) + 1,
		EndOffset:   int(tsNode.EndByte()),
	}
}
