package cursor

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
)

// forwardMergedCursor yields tokens and comments interleaved in ascending
// position order. The two sequences stay separate in the parse result, so
// the merge happens lazily with one index per sequence.
type forwardMergedCursor struct {
	tokens       []token.Token
	comments     []token.Token
	tokenIndex   int
	tokenEnd     int
	commentIndex int
	border       int
	current      token.Token
}

func newForwardMergedCursor(tokens, comments []token.Token, startOffset, endOffset int) *forwardMergedCursor {
	return &forwardMergedCursor{
		tokens:       tokens,
		comments:     comments,
		tokenIndex:   token.SearchIndex(tokens, startOffset),
		tokenEnd:     token.SearchIndex(tokens, endOffset),
		commentIndex: token.SearchIndex(comments, startOffset),
		border:       endOffset,
	}
}

func (c *forwardMergedCursor) MoveNext() bool {
	hasToken := c.tokenIndex < c.tokenEnd
	hasComment := c.commentIndex < len(c.comments) && c.comments[c.commentIndex].Pos.StartOffset < c.border

	switch {
	case hasToken && hasComment:
		if c.comments[c.commentIndex].Pos.StartOffset < c.tokens[c.tokenIndex].Pos.StartOffset {
			c.current = c.comments[c.commentIndex]
			c.commentIndex++
		} else {
			c.current = c.tokens[c.tokenIndex]
			c.tokenIndex++
		}
	case hasToken:
		c.current = c.tokens[c.tokenIndex]
		c.tokenIndex++
	case hasComment:
		c.current = c.comments[c.commentIndex]
		c.commentIndex++
	default:
		return false
	}

	return true
}

func (c *forwardMergedCursor) Current() token.Token {
	return c.current
}

// backwardMergedCursor yields tokens and comments interleaved in descending
// position order.
type backwardMergedCursor struct {
	tokens       []token.Token
	comments     []token.Token
	tokenIndex   int
	tokenFirst   int
	commentIndex int
	border       int
	current      token.Token
}

func newBackwardMergedCursor(tokens, comments []token.Token, startOffset, endOffset int) *backwardMergedCursor {
	return &backwardMergedCursor{
		tokens:       tokens,
		comments:     comments,
		tokenIndex:   token.SearchIndex(tokens, endOffset) - 1,
		tokenFirst:   token.SearchIndex(tokens, startOffset),
		commentIndex: token.SearchIndex(comments, endOffset) - 1,
		border:       startOffset,
	}
}

func (c *backwardMergedCursor) MoveNext() bool {
	hasToken := c.tokenIndex >= c.tokenFirst
	hasComment := c.commentIndex >= 0 && c.comments[c.commentIndex].Pos.StartOffset >= c.border

	switch {
	case hasToken && hasComment:
		if c.comments[c.commentIndex].Pos.StartOffset > c.tokens[c.tokenIndex].Pos.StartOffset {
			c.current = c.comments[c.commentIndex]
			c.commentIndex--
		} else {
			c.current = c.tokens[c.tokenIndex]
			c.tokenIndex--
		}
	case hasToken:
		c.current = c.tokens[c.tokenIndex]
		c.tokenIndex--
	case hasComment:
		c.current = c.comments[c.commentIndex]
		c.commentIndex--
	default:
		return false
	}

	return true
}

func (c *backwardMergedCursor) Current() token.Token {
	return c.current
}
