package cursor

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/token"
)

// NoLimit disables the count decorator. It is distinct from a zero count,
// which produces an empty cursor.
const NoLimit = -1

// Options selects the decorator pipeline layered over a base cursor.
// Decorators always compose in the fixed order filter, then skip, then
// limit; only the parameters actually supplied add a layer, keeping the
// common undecorated case allocation-free beyond the base cursor.
type Options struct {
	// IncludeComments merges the comment sequence into the iteration.
	IncludeComments bool

	// Filter, when non-nil, drops values failing the predicate.
	Filter func(token.Token) bool

	// Skip discards the first Skip accepted values when Skip >= 1.
	Skip int

	// Count caps the number of produced values when Count >= 0.
	// Use NoLimit for an unbounded cursor.
	Count int
}

// DefaultOptions returns Options with no filter, no skip, and no limit.
func DefaultOptions() Options {
	return Options{Count: NoLimit}
}

// Factory constructs cursors over one file's token and comment sequences.
// Both sequences must be sorted by start offset.
type Factory struct {
	tokens   []token.Token
	comments []token.Token
}

// NewFactory creates a cursor factory for the given sequences.
func NewFactory(tokens, comments []token.Token) *Factory {
	return &Factory{tokens: tokens, comments: comments}
}

// Forward returns an ascending cursor over [startOffset, endOffset).
func (f *Factory) Forward(startOffset, endOffset int, opts Options) Cursor {
	var base Cursor
	if opts.IncludeComments {
		base = newForwardMergedCursor(f.tokens, f.comments, startOffset, endOffset)
	} else {
		base = newForwardTokenCursor(f.tokens, startOffset, endOffset)
	}

	return decorate(base, opts)
}

// Backward returns a descending cursor over [startOffset, endOffset).
func (f *Factory) Backward(startOffset, endOffset int, opts Options) Cursor {
	var base Cursor
	if opts.IncludeComments {
		base = newBackwardMergedCursor(f.tokens, f.comments, startOffset, endOffset)
	} else {
		base = newBackwardTokenCursor(f.tokens, startOffset, endOffset)
	}

	return decorate(base, opts)
}

func decorate(base Cursor, opts Options) Cursor {
	decorated := base

	if opts.Filter != nil {
		decorated = NewFilter(decorated, opts.Filter)
	}

	if opts.Skip >= 1 {
		decorated = NewSkip(decorated, opts.Skip)
	}

	if opts.Count >= 0 {
		decorated = NewLimit(decorated, opts.Count)
	}

	return decorated
}

// Collect drains a cursor into a slice. Intended for callers that want the
// materialized sequence; the cursor is exhausted afterwards.
func Collect(c Cursor) []token.Token {
	var out []token.Token
	for c.MoveNext() {
		out = append(out, c.Current())
	}

	return out
}
