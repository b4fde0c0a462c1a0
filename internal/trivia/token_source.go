package trivia

import (
	"pystrfmt/internal/token"
)

// TokenSource filters trivia (comments and non-logical newlines) out of a
// token stream. It never reorders or merges the remaining tokens, and it is
// fused: once EOF is returned, every later call returns EOF again.
type TokenSource struct {
	toks []token.Token
	pos  int
}

// NewTokenSource wraps an already-lexed stream.
func NewTokenSource(toks []token.Token) *TokenSource {
	return &TokenSource{toks: toks}
}

// Next returns the next non-trivia token.
func (s *TokenSource) Next() token.Token {
	for s.pos < len(s.toks) {
		t := s.toks[s.pos]
		s.pos++
		if t.Kind.IsTrivia() {
			continue
		}
		return t
	}
	return token.Token{Kind: token.EOF}
}

// Peek returns the next non-trivia token without consuming it.
func (s *TokenSource) Peek() token.Token {
	saved := s.pos
	t := s.Next()
	s.pos = saved
	return t
}

// Collect drains the source into a slice, EOF excluded.
func (s *TokenSource) Collect() []token.Token {
	var out []token.Token
	for {
		t := s.Next()
		if t.Kind == token.EOF {
			return out
		}
		out = append(out, t)
	}
}

// ExtractCommentRanges runs the comment extractor over a full stream and
// returns the filtered source alongside the comment ranges, mirroring the
// single pass both consumers share.
func ExtractCommentRanges(toks []token.Token) (*TokenSource, CommentRanges) {
	var b CommentRangesBuilder
	for _, t := range toks {
		b.VisitToken(t)
	}
	return NewTokenSource(toks), b.Finish()
}
