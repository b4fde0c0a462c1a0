package format

import (
	"pystrfmt/internal/doc"
	"pystrfmt/internal/source"
)

// ExprFormatter renders the expression inside a replacement field. The
// generic Python expression formatter lives outside this package; the
// renderer only needs something that turns an expression span into a
// document.
type ExprFormatter interface {
	FormatExpr(f *source.File, sp source.Span) doc.Doc
}

// VerbatimExprs emits replacement-field expressions exactly as written.
type VerbatimExprs struct{}

func (VerbatimExprs) FormatExpr(f *source.File, sp source.Span) doc.Doc {
	return doc.Text(string(f.Slice(sp)))
}
