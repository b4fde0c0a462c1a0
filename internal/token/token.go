package token

import (
	"pystrfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsStringLike reports whether the token is a string, bytes, or f-string
// literal.
func (t Token) IsStringLike() bool { return t.Kind == String }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }
