package format

import (
	"pystrfmt/internal/source"
	"pystrfmt/internal/trivia"
)

// CommentRegistry tracks which comments have been emitted as part of a
// literal, so no later pass re-attaches them. Marks are write-once: a
// comment marked twice still counts once.
type CommentRegistry struct {
	ranges    trivia.CommentRanges
	formatted map[source.Span]struct{}
}

func NewCommentRegistry(ranges trivia.CommentRanges) *CommentRegistry {
	return &CommentRegistry{
		ranges:    ranges,
		formatted: make(map[source.Span]struct{}),
	}
}

// MarkFormatted records a single comment range as handled.
func (r *CommentRegistry) MarkFormatted(sp source.Span) {
	r.formatted[sp] = struct{}{}
}

// MarkWithin marks every comment contained in sp and returns how many
// were newly marked.
func (r *CommentRegistry) MarkWithin(sp source.Span) int {
	marked := 0
	for _, c := range r.ranges.Within(sp) {
		if _, ok := r.formatted[c]; ok {
			continue
		}
		r.formatted[c] = struct{}{}
		marked++
	}
	return marked
}

// AnyWithin reports whether sp contains any comment, marked or not.
func (r *CommentRegistry) AnyWithin(sp source.Span) bool {
	return len(r.ranges.Within(sp)) > 0
}

// IsFormatted reports whether the comment at sp was already emitted.
func (r *CommentRegistry) IsFormatted(sp source.Span) bool {
	_, ok := r.formatted[sp]
	return ok
}

// FormattedCount returns the number of distinct marked comments.
func (r *CommentRegistry) FormattedCount() int {
	return len(r.formatted)
}

// Dangling returns the comments inside sp that no literal claimed.
func (r *CommentRegistry) Dangling(sp source.Span) []source.Span {
	var out []source.Span
	for _, c := range r.ranges.Within(sp) {
		if _, ok := r.formatted[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
