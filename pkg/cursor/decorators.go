package cursor

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
)

// filterCursor skips values failing the predicate. Current delegates to the
// wrapped cursor, so values rejected by the predicate are never observable.
type filterCursor struct {
	inner Cursor
	pred  func(token.Token) bool
}

// NewFilter wraps a cursor so only values accepted by pred are produced.
func NewFilter(inner Cursor, pred func(token.Token) bool) Cursor {
	return &filterCursor{inner: inner, pred: pred}
}

func (c *filterCursor) MoveNext() bool {
	for c.inner.MoveNext() {
		if c.pred(c.inner.Current()) {
			return true
		}
	}

	return false
}

func (c *filterCursor) Current() token.Token {
	return c.inner.Current()
}

// skipCursor discards the first N accepted values of the wrapped cursor.
type skipCursor struct {
	inner     Cursor
	remaining int
}

// NewSkip wraps a cursor so its first count values are discarded.
func NewSkip(inner Cursor, count int) Cursor {
	return &skipCursor{inner: inner, remaining: count}
}

func (c *skipCursor) MoveNext() bool {
	for c.remaining > 0 {
		c.remaining--

		if !c.inner.MoveNext() {
			c.remaining = 0

			return false
		}
	}

	return c.inner.MoveNext()
}

func (c *skipCursor) Current() token.Token {
	return c.inner.Current()
}

// limitCursor stops after N values. A zero limit yields an empty sequence;
// that shape is load-bearing for callers that compute counts dynamically.
type limitCursor struct {
	inner     Cursor
	remaining int
}

// NewLimit wraps a cursor so at most count values are produced.
func NewLimit(inner Cursor, count int) Cursor {
	return &limitCursor{inner: inner, remaining: count}
}

func (c *limitCursor) MoveNext() bool {
	if c.remaining <= 0 {
		return false
	}

	c.remaining--

	return c.inner.MoveNext()
}

func (c *limitCursor) Current() token.Token {
	return c.inner.Current()
}
