// Package cursor implements composable, lazy, position-bounded iterators
// over a file's token and comment sequences. A cursor is pull-based and
// single-use: exhausting it requires constructing a new one from the
// factory to iterate again.
package cursor

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
)

// Cursor is the minimal iteration contract. MoveNext advances one step and
// reports whether a value was produced; Current exposes the last produced
// value and is undefined before the first successful MoveNext.
type Cursor interface {
	MoveNext() bool
	Current() token.Token
}

// forwardTokenCursor yields tokens in ascending position order within a
// half-open index window.
type forwardTokenCursor struct {
	tokens  []token.Token
	index   int
	end     int
	current token.Token
}

func newForwardTokenCursor(tokens []token.Token, startOffset, endOffset int) *forwardTokenCursor {
	return &forwardTokenCursor{
		tokens: tokens,
		index:  token.SearchIndex(tokens, startOffset),
		end:    token.SearchIndex(tokens, endOffset),
	}
}

func (c *forwardTokenCursor) MoveNext() bool {
	if c.index >= c.end {
		return false
	}

	c.current = c.tokens[c.index]
	c.index++

	return true
}

func (c *forwardTokenCursor) Current() token.Token {
	return c.current
}

// backwardTokenCursor yields tokens in descending position order within a
// half-open index window.
type backwardTokenCursor struct {
	tokens  []token.Token
	index   int
	first   int
	current token.Token
}

func newBackwardTokenCursor(tokens []token.Token, startOffset, endOffset int) *backwardTokenCursor {
	return &backwardTokenCursor{
		tokens: tokens,
		index:  token.SearchIndex(tokens, endOffset) - 1,
		first:  token.SearchIndex(tokens, startOffset),
	}
}

func (c *backwardTokenCursor) MoveNext() bool {
	if c.index < c.first {
		return false
	}

	c.current = c.tokens[c.index]
	c.index--

	return true
}

func (c *backwardTokenCursor) Current() token.Token {
	return c.current
}
