package ast

import (
	"pystrfmt/internal/source"
)

// PrefixFlags encodes a literal's prefix letters.
type PrefixFlags uint8

const (
	// PrefixRaw marks r'' literals: no escape processing.
	PrefixRaw PrefixFlags = 1 << iota
	// PrefixBytes marks b'' literals.
	PrefixBytes
	// PrefixFormat marks f'' literals.
	PrefixFormat
	// PrefixUnicode marks the legacy u'' prefix.
	PrefixUnicode
)

// IsRaw reports whether escape sequences are inert in this literal.
func (p PrefixFlags) IsRaw() bool { return p&PrefixRaw != 0 }

// IsBytes reports whether the literal produces bytes, not str.
func (p PrefixFlags) IsBytes() bool { return p&PrefixBytes != 0 }

// IsFormat reports whether the literal is an f-string.
func (p PrefixFlags) IsFormat() bool { return p&PrefixFormat != 0 }

// StringPart is one physical string-like literal: a single token in source.
type StringPart struct {
	Span   source.Span
	Prefix PrefixFlags
	// Quote is the quote character, '\'' or '"'.
	Quote byte
	// Triple marks ''' / """ delimiters.
	Triple bool
	// ContentSpan covers the bytes between the delimiters.
	ContentSpan source.Span
	// FString is the parsed body; nil unless Prefix.IsFormat().
	FString *FString
}

// StringGroup is one logical string value: a single literal or the adjacent
// parts of an implicit concatenation.
type StringGroup struct {
	Span  source.Span
	Parts []StringPart
}

// IsImplicitConcat reports whether the group has more than one adjacent part.
func (g *StringGroup) IsImplicitConcat() bool { return len(g.Parts) > 1 }

// IsBytes reports the prefix class of the group. Parts of one group never
// mix str and bytes; the parser rejects mixed groups.
func (g *StringGroup) IsBytes() bool {
	return len(g.Parts) > 0 && g.Parts[0].Prefix.IsBytes()
}
