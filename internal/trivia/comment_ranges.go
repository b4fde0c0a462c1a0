// Package trivia separates non-structural tokens (comments, non-logical
// newlines) from the stream structural consumers see, while keeping comment
// source ranges queryable.
package trivia

import (
	"sort"

	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

// CommentRanges is an ordered, read-only set of comment source ranges for one
// file, in strictly increasing source order.
type CommentRanges struct {
	ranges []source.Span
}

// CommentRangesBuilder collects comment ranges during a single linear pass
// over the token stream.
type CommentRangesBuilder struct {
	ranges []source.Span
}

// VisitToken records the token's range when it is a comment. Call it for
// every token, in stream order.
func (b *CommentRangesBuilder) VisitToken(t token.Token) {
	if t.Kind == token.Comment {
		b.ranges = append(b.ranges, t.Span)
	}
}

// Finish seals the builder into an immutable CommentRanges.
// The collected ranges must already be in increasing source order; the
// builder relies on the lexer emitting comments in encounter order.
func (b *CommentRangesBuilder) Finish() CommentRanges {
	for i := 1; i < len(b.ranges); i++ {
		if b.ranges[i].Start < b.ranges[i-1].Start {
			panic("trivia: comment ranges out of source order")
		}
	}
	return CommentRanges{ranges: b.ranges}
}

// Len returns the number of recorded comment ranges.
func (c CommentRanges) Len() int {
	return len(c.ranges)
}

// All returns the recorded ranges in source order.
// Callers must not modify the returned slice.
func (c CommentRanges) All() []source.Span {
	return c.ranges
}

// Within returns every comment range lying entirely inside sp,
// in source order.
func (c CommentRanges) Within(sp source.Span) []source.Span {
	lo := sort.Search(len(c.ranges), func(i int) bool {
		return c.ranges[i].Start >= sp.Start
	})
	var out []source.Span
	for i := lo; i < len(c.ranges) && c.ranges[i].Start < sp.End; i++ {
		if sp.Contains(c.ranges[i]) {
			out = append(out, c.ranges[i])
		}
	}
	return out
}

// HasWithin reports whether any comment range lies entirely inside sp.
func (c CommentRanges) HasWithin(sp source.Span) bool {
	lo := sort.Search(len(c.ranges), func(i int) bool {
		return c.ranges[i].Start >= sp.Start
	})
	return lo < len(c.ranges) && sp.Contains(c.ranges[lo])
}
