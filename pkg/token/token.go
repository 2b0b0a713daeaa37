// Package token defines the lexical token record shared by parsers, cursors,
// and the lint engine, plus the offset search used to resolve cursor bounds.
package token

import (
	"sort"

	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// Comment token types. Parsers emit comments as tokens with one of these
// types so that cursors can merge them with the regular token stream.
const (
	TypeLineComment  = "Line"
	TypeBlockComment = "Block"
)

// Token is one lexical element of a parsed file. Comments use the same
// shape and are kept in a separate sequence by the parser.
type Token struct {
	Type  string
	Value string
	Pos   tree.Positions
}

// Range returns the token's half-open byte offset range.
func (t Token) Range() (start, end int) {
	return t.Pos.StartOffset, t.Pos.EndOffset
}

// IsComment reports whether the token is a comment token.
func (t Token) IsComment() bool {
	return t.Type == TypeLineComment || t.Type == TypeBlockComment
}

// SearchIndex returns the index of the first token whose start offset is at
// or after the given offset. Tokens must be sorted by start offset, which
// parsers guarantee. The result may equal len(tokens).
func SearchIndex(tokens []Token, offset int) int {
	return sort.Search(len(tokens), func(i int) bool {
		return tokens[i].Pos.StartOffset >= offset
	})
}

// LastIndexBefore returns the index of the last token that starts strictly
// before the given offset, or -1 when no such token exists.
func LastIndexBefore(tokens []Token, offset int) int {
	return SearchIndex(tokens, offset) - 1
}
