package format

import (
	"bytes"
	"errors"

	"pystrfmt/internal/ast"
	"pystrfmt/internal/doc"
	"pystrfmt/internal/source"
)

// ErrFieldDepth reports replacement-field nesting beyond MaxFieldDepth.
// The offending literal is left as written; the rest of the file still
// formats.
var ErrFieldDepth = errors.New("format: replacement fields nest too deeply")

// fstringContext carries the properties shared by every element of one
// f-string: the prefix, the chosen quote character, and whether the
// delimiters are triple quotes. Nested format specs reuse the outer
// context since they live inside the same physical literal.
type fstringContext struct {
	prefix ast.PrefixFlags
	quote  byte
	triple bool
}

type renderer struct {
	f        *source.File
	opts     Options
	comments *CommentRegistry
	exprs    ExprFormatter
}

// formatPart renders one string-like literal as a document. An
// f-string with interior comments takes the opaque path even under the
// modern grammar: structural rendering re-wraps replacement fields, and
// a comment placed after reflowed text would swallow the rest of the
// line, closing brace included.
func (r *renderer) formatPart(part ast.StringPart, docstring bool) (doc.Doc, error) {
	if part.FString != nil && r.opts.modernFStrings() && !r.comments.AnyWithin(part.Span) {
		return r.formatFString(part)
	}
	return doc.Text(r.formatOpaque(part, docstring)), nil
}

// formatOpaque treats the literal as a single run of text: quotes are
// chosen for the whole content and escapes rewritten in place. Plain
// strings, bytes literals, and f-strings under pre-3.12 targets all
// take this path. For f-strings the interior comments are claimed here
// since the whole body is emitted by this literal.
func (r *renderer) formatOpaque(part ast.StringPart, docstring bool) string {
	content := r.f.Slice(part.ContentSpan)

	target := part.Quote
	locked := part.FString != nil && fstringExprsContainQuotes(r.f, part.FString.Elements)
	if !locked {
		target = choosePartQuote(content, part, r.opts, docstring)
	}

	n := Normalized{Kind: NormalizedUnchanged}
	if !part.Prefix.IsRaw() {
		n = rewriteEscapes(content, target, part.Triple, r.opts.NormalizeHexEscapes)
	}
	if part.FString != nil {
		r.comments.MarkWithin(part.Span)
	}

	q := quoteRun(target, part.Triple)
	return canonicalPrefix(part.Prefix) + q + n.Text(content) + q
}

// formatFString renders an f-string structurally under the modern
// grammar: literal elements are re-escaped for the chosen quote and
// replacement fields become documents of their own.
func (r *renderer) formatFString(part ast.StringPart) (doc.Doc, error) {
	ctx := fstringContext{
		prefix: part.Prefix,
		quote:  r.chooseFStringQuote(part),
		triple: part.Triple,
	}

	elems, err := r.renderElements(part.FString.Elements, ctx, 0)
	if err != nil {
		return doc.Doc{}, err
	}

	q := quoteRun(ctx.quote, ctx.triple)
	parts := make([]doc.Doc, 0, len(elems)+2)
	parts = append(parts, doc.Text(canonicalPrefix(part.Prefix)+q))
	parts = append(parts, elems...)
	parts = append(parts, doc.Text(q))
	return doc.Concat(parts...), nil
}

// chooseFStringQuote picks the quote character for a structural
// f-string. Only literal elements count: quotes inside replacement
// fields belong to nested strings, which the modern grammar allows to
// share the outer quote.
func (r *renderer) chooseFStringQuote(part ast.StringPart) byte {
	preferred := r.opts.quoteChar(part.Quote)
	if preferred == part.Quote {
		return part.Quote
	}
	singles, doubles := countFStringLiteralQuotes(r.f, part.FString.Elements)
	if part.Prefix.IsRaw() || part.Triple {
		// Raw literal text cannot grow escapes and triple content
		// must not form closing runs, so only switch when the
		// preferred character never occurs.
		var occurrences int
		if preferred == '\'' {
			occurrences = singles
		} else {
			occurrences = doubles
		}
		if occurrences == 0 {
			return preferred
		}
		return part.Quote
	}
	return chooseQuote(part.Quote, preferred, singles, doubles)
}

func (r *renderer) renderElements(elems []ast.Element, ctx fstringContext, depth int) ([]doc.Doc, error) {
	if depth > r.opts.MaxFieldDepth {
		return nil, ErrFieldDepth
	}
	out := make([]doc.Doc, 0, len(elems))
	for _, el := range elems {
		switch el.Kind {
		case ast.ElementLiteral:
			out = append(out, r.renderLiteral(el.Literal, ctx))
		case ast.ElementExpression:
			d, err := r.renderField(el.Expr, ctx, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// renderLiteral re-escapes one literal text run for the f-string's
// chosen quote. The {{ and }} escapes pass through untouched.
func (r *renderer) renderLiteral(sp source.Span, ctx fstringContext) doc.Doc {
	slice := r.f.Slice(sp)
	if ctx.prefix.IsRaw() {
		return doc.Text(string(slice))
	}
	n := rewriteEscapes(slice, ctx.quote, ctx.triple, r.opts.NormalizeHexEscapes)
	return doc.Text(n.Text(slice))
}

// renderField renders one replacement field. In triple-quoted context
// the field may break across lines: the braces act as brackets with the
// content indented. Single-line context renders flat, the guard spaces
// around brace-led expressions collapsing to a plain space.
func (r *renderer) renderField(e *ast.ExprElement, ctx fstringContext, depth int) (doc.Doc, error) {
	var inner []doc.Doc
	if e.Debug != nil {
		// Self-documenting fields reproduce the source text exactly,
		// expression included; any comment in the field is emitted
		// here and must not be re-attached elsewhere.
		r.comments.MarkWithin(e.Span)
		inner = append(inner,
			doc.Text(e.Debug.Leading),
			doc.Text(string(r.f.Slice(e.Expression))),
			doc.Text(e.Debug.Trailing),
		)
	} else {
		// The expression formatter emits the span verbatim, so
		// anything inside it is claimed by this field.
		r.comments.MarkWithin(e.Expression)
		guard := e.Kind.StartsWithOpenBrace()
		if guard {
			inner = append(inner, doc.SoftlineOrSpace())
		}
		inner = append(inner, r.exprs.FormatExpr(r.f, e.Expression))
		if guard {
			inner = append(inner, doc.SoftlineOrSpace())
		}
	}
	if m := e.Conversion.Marker(); m != "" {
		inner = append(inner, doc.Text(m))
	}
	if e.FormatSpec != nil {
		inner = append(inner, doc.Text(":"))
		spec, err := r.renderElements(e.FormatSpec.Elements, ctx, depth+1)
		if err != nil {
			return doc.Doc{}, err
		}
		inner = append(inner, spec...)
	}

	if ctx.triple {
		return doc.Bracketed("{", doc.Concat(inner...), "}", true), nil
	}
	parts := make([]doc.Doc, 0, len(inner)+2)
	parts = append(parts, doc.Text("{"))
	parts = append(parts, inner...)
	parts = append(parts, doc.Text("}"))
	return doc.Concat(parts...), nil
}

// countFStringLiteralQuotes sums logical quote counts over the literal
// elements of an f-string body, format specs included.
func countFStringLiteralQuotes(f *source.File, elems []ast.Element) (singles, doubles int) {
	for _, el := range elems {
		switch el.Kind {
		case ast.ElementLiteral:
			s, d := countQuotes(f.Slice(el.Literal))
			singles += s
			doubles += d
		case ast.ElementExpression:
			if el.Expr.FormatSpec != nil {
				s, d := countFStringLiteralQuotes(f, el.Expr.FormatSpec.Elements)
				singles += s
				doubles += d
			}
		}
	}
	return singles, doubles
}

// fstringExprsContainQuotes reports whether any replacement-field
// expression holds a quote character. Under the legacy grammar such
// nested strings pin the outer quote: switching it would make the
// nested string terminate the literal.
func fstringExprsContainQuotes(f *source.File, elems []ast.Element) bool {
	for _, el := range elems {
		if el.Kind != ast.ElementExpression {
			continue
		}
		if bytes.ContainsAny(f.Slice(el.Expr.Expression), `'"`) {
			return true
		}
		if el.Expr.FormatSpec != nil && fstringExprsContainQuotes(f, el.Expr.FormatSpec.Elements) {
			return true
		}
	}
	return false
}
