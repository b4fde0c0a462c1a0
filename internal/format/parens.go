package format

import (
	"bytes"

	"pystrfmt/internal/ast"
	"pystrfmt/internal/source"
)

// WrapPolicy tells an enclosing expression formatter how a string group
// may be wrapped in parentheses when it does not fit the line.
type WrapPolicy uint8

const (
	// WrapBestFit lets the group be parenthesized like any atom.
	WrapBestFit WrapPolicy = iota
	// WrapMultiline asks for parentheses that place each concatenated
	// part on its own line.
	WrapMultiline
	// WrapNever forbids parentheses: the literal already spans lines
	// and wrapping it cannot make it narrower.
	WrapNever
)

func (p WrapPolicy) String() string {
	switch p {
	case WrapBestFit:
		return "best-fit"
	case WrapMultiline:
		return "multiline"
	case WrapNever:
		return "never"
	default:
		return "unknown"
	}
}

// GroupWrapPolicy decides the wrap policy for a string group: implicit
// concatenations wrap one part per line, literals whose text already
// crosses a line boundary are never wrapped, and everything else is a
// plain best-fit atom.
func GroupWrapPolicy(f *source.File, g *ast.StringGroup) WrapPolicy {
	if g.IsImplicitConcat() {
		return WrapMultiline
	}
	if spansLines(f, g.Parts[0].Span) {
		return WrapNever
	}
	return WrapBestFit
}

func spansLines(f *source.File, sp source.Span) bool {
	return bytes.IndexByte(f.Slice(sp), '\n') >= 0
}
