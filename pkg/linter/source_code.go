package linter

import (
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/lintfang/pkg/cursor"
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// SourceCode is the parsed-unit wrapper handed to rules: raw text, tree
// root, token and comment sequences, scope handle, parser services, and the
// visitor-key map. It is immutable by contract once built and is reused
// across a verification call.
type SourceCode struct {
	Text        string
	AST         *tree.Node
	Tokens      []token.Token
	Comments    []token.Token
	VisitorKeys tree.KeyMap
	Services    map[string]any

	scopes      ScopeManager
	lineOffsets []int
	factory     *cursor.Factory
}

// NewSourceCode builds a SourceCode from a parse result. A nil scope
// manager is replaced by a single empty global scope.
func NewSourceCode(text string, result *ParseResult) *SourceCode {
	scopes := result.ScopeManager
	if scopes == nil {
		scopes = newEmptyScopeManager(result.AST)
	}

	return &SourceCode{
		Text:        text,
		AST:         result.AST,
		Tokens:      result.Tokens,
		Comments:    result.Comments,
		VisitorKeys: result.VisitorKeys,
		Services:    result.Services,
		scopes:      scopes,
		lineOffsets: computeLineOffsets(text),
		factory:     cursor.NewFactory(result.Tokens, result.Comments),
	}
}

// Scopes returns the scope-resolution handle.
func (s *SourceCode) Scopes() ScopeManager {
	return s.scopes
}

// Lines splits the text into lines without terminators.
func (s *SourceCode) Lines() []string {
	return strings.Split(strings.ReplaceAll(s.Text, "\r\n", "\n"), "\n")
}

// OffsetPosition converts a byte offset into 1-based line and column.
func (s *SourceCode) OffsetPosition(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}

	idx := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1

	return idx + 1, offset - s.lineOffsets[idx] + 1
}

// GetText returns the source slice covered by the node, or the whole text
// for a nil node.
func (s *SourceCode) GetText(node *tree.Node) string {
	if node == nil {
		return s.Text
	}

	start, end := node.Range()
	if start < 0 || end > len(s.Text) || start > end {
		return ""
	}

	return s.Text[start:end]
}

// GetFirstToken returns the first token inside the node's range.
func (s *SourceCode) GetFirstToken(node *tree.Node, opts cursor.Options) (token.Token, bool) {
	start, end := node.Range()

	return first(s.factory.Forward(start, end, opts))
}

// GetLastToken returns the last token inside the node's range.
func (s *SourceCode) GetLastToken(node *tree.Node, opts cursor.Options) (token.Token, bool) {
	start, end := node.Range()

	return first(s.factory.Backward(start, end, opts))
}

// GetTokenAfter returns the first token starting at or after the node's
// end.
func (s *SourceCode) GetTokenAfter(node *tree.Node, opts cursor.Options) (token.Token, bool) {
	_, end := node.Range()

	return first(s.factory.Forward(end, len(s.Text), opts))
}

// GetTokenBefore returns the last token ending at or before the node's
// start.
func (s *SourceCode) GetTokenBefore(node *tree.Node, opts cursor.Options) (token.Token, bool) {
	start, _ := node.Range()

	return first(s.factory.Backward(0, start, opts))
}

// GetTokens collects every token inside the node's range.
func (s *SourceCode) GetTokens(node *tree.Node, opts cursor.Options) []token.Token {
	start, end := node.Range()

	return cursor.Collect(s.factory.Forward(start, end, opts))
}

// GetTokensBetween collects the tokens between two nodes, left to right.
func (s *SourceCode) GetTokensBetween(left, right *tree.Node, opts cursor.Options) []token.Token {
	_, start := left.Range()
	end, _ := right.Range()

	return cursor.Collect(s.factory.Forward(start, end, opts))
}

// CursorFactory exposes the underlying cursor factory for callers that
// need cursors the convenience accessors do not cover.
func (s *SourceCode) CursorFactory() *cursor.Factory {
	return s.factory
}

func first(c cursor.Cursor) (token.Token, bool) {
	if c.MoveNext() {
		return c.Current(), true
	}

	return token.Token{}, false
}

func computeLineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// emptyScopeManager backs SourceCode instances whose parser performed no
// scope analysis: one global scope, no variables, no references.
type emptyScopeManager struct {
	global *Scope
}

func newEmptyScopeManager(root *tree.Node) ScopeManager {
	return &emptyScopeManager{global: NewScope("global", root)}
}

func (m *emptyScopeManager) GlobalScope() *Scope {
	return m.global
}

func (m *emptyScopeManager) Acquire(*tree.Node) *Scope {
	return m.global
}
