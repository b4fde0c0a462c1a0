// Package pyparse turns string-like tokens into ast string nodes: prefix and
// quote extraction, implicit-concatenation grouping, and f-string body
// parsing (replacement fields, debug text, conversions, format specs).
//
// The input is assumed to come from a correct tokenizer; pyparse is tolerant
// of interiors it cannot make sense of and reports them as errors so the
// formatter can degrade the literal to opaque treatment instead of failing
// the file.
package pyparse

import (
	"errors"
	"fmt"

	"pystrfmt/internal/ast"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

// ErrTooDeep reports a replacement-field nesting depth beyond the guard.
var ErrTooDeep = errors.New("pyparse: replacement fields nest too deeply")

// ErrBadToken reports a token without the shape of a string literal:
// an unknown prefix letter, no quote, or a missing terminator.
var ErrBadToken = errors.New("pyparse: malformed string token")

// Options configures parsing.
type Options struct {
	// MaxDepth bounds replacement-field nesting (format specs included).
	// Zero means the default of 50.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.MaxDepth == 0 {
		o.MaxDepth = 50
	}
	return o
}

// ParseGroup parses a run of adjacent string tokens into one logical string
// value. Parts must all be str or all be bytes.
func ParseGroup(f *source.File, toks []token.Token, opts Options) (*ast.StringGroup, error) {
	if len(toks) == 0 {
		panic("pyparse: empty string group")
	}
	opts = opts.withDefaults()

	group := &ast.StringGroup{Span: toks[0].Span}
	for _, tk := range toks {
		if tk.Kind != token.String {
			panic(fmt.Sprintf("pyparse: %v token in string group", tk.Kind))
		}
		part, err := ParsePart(f, tk.Span, opts)
		if err != nil {
			return nil, err
		}
		group.Parts = append(group.Parts, part)
		group.Span = group.Span.Cover(tk.Span)
	}
	for _, p := range group.Parts[1:] {
		if p.Prefix.IsBytes() != group.Parts[0].Prefix.IsBytes() {
			return nil, errors.New("pyparse: cannot mix bytes and str in implicit concatenation")
		}
	}
	return group, nil
}

// ParsePart parses a single string-like literal.
func ParsePart(f *source.File, sp source.Span, opts Options) (ast.StringPart, error) {
	opts = opts.withDefaults()
	text := f.Slice(sp)

	i := 0
	var prefix ast.PrefixFlags
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		switch text[i] {
		case 'r', 'R':
			prefix |= ast.PrefixRaw
		case 'b', 'B':
			prefix |= ast.PrefixBytes
		case 'f', 'F':
			prefix |= ast.PrefixFormat
		case 'u', 'U':
			prefix |= ast.PrefixUnicode
		default:
			return ast.StringPart{}, fmt.Errorf("%w: bad string prefix %q", ErrBadToken, text[:i+1])
		}
		i++
	}
	if i >= len(text) {
		return ast.StringPart{}, fmt.Errorf("%w: no quote in string token", ErrBadToken)
	}
	quote := text[i]
	quoteLen := 1
	if i+2 < len(text) && text[i+1] == quote && text[i+2] == quote {
		quoteLen = 3
	}
	if len(text)-i < 2*quoteLen {
		return ast.StringPart{}, fmt.Errorf("%w: unterminated", ErrBadToken)
	}

	part := ast.StringPart{
		Span:   sp,
		Prefix: prefix,
		Quote:  quote,
		Triple: quoteLen == 3,
		ContentSpan: source.Span{
			File:  sp.File,
			Start: sp.Start + uint32(i+quoteLen),
			End:   sp.End - uint32(quoteLen),
		},
	}

	if prefix.IsFormat() {
		body, err := parseElements(f, part.ContentSpan, opts, 0)
		if err != nil {
			return ast.StringPart{}, err
		}
		part.FString = &ast.FString{Elements: body}
	}
	return part, nil
}

// parseElements parses an element sequence: the body of an f-string, or of a
// format spec (which shares the grammar). depth counts nesting of fields.
func parseElements(f *source.File, span source.Span, opts Options, depth int) ([]ast.Element, error) {
	if depth > opts.MaxDepth {
		return nil, ErrTooDeep
	}

	content := f.Content
	var elements []ast.Element
	litStart := span.Start
	i := span.Start

	flushLiteral := func(end uint32) {
		if end > litStart {
			elements = append(elements, ast.Element{
				Kind:    ast.ElementLiteral,
				Literal: source.Span{File: span.File, Start: litStart, End: end},
			})
		}
	}

	for i < span.End {
		switch content[i] {
		case '{':
			if i+1 < span.End && content[i+1] == '{' {
				i += 2
				continue
			}
			flushLiteral(i)
			expr, next, err := parseField(f, span, i, opts, depth)
			if err != nil {
				return nil, err
			}
			elements = append(elements, ast.Element{Kind: ast.ElementExpression, Expr: expr})
			i = next
			litStart = i
		case '}':
			// A lone '}' only appears as the escape '}}'.
			if i+1 < span.End && content[i+1] == '}' {
				i += 2
			} else {
				i++
			}
		case '\\':
			i += 2
		default:
			i++
		}
	}
	flushLiteral(span.End)
	return elements, nil
}

// parseField parses one replacement field starting at the '{' at off.
// Returns the element and the offset just past the closing '}'.
func parseField(f *source.File, span source.Span, off uint32, opts Options, depth int) (*ast.ExprElement, uint32, error) {
	content := f.Content
	exprStart := off + 1

	var (
		bracketDepth int
		eqPos        = uint32(0)
		hasEq        = false
		bangPos      = uint32(0)
		hasBang      = false
		colonPos     = uint32(0)
		hasColon     = false
		closePos     = uint32(0)
		hasClose     = false
	)

	j := exprStart
	for j < span.End {
		b := content[j]

		if hasColon {
			// Inside the spec only braces and backslashes matter; everything
			// else is spec text or nested fields handled on the recursive
			// parse.
			switch b {
			case '{':
				bracketDepth++
				j++
			case '}':
				if bracketDepth == 0 {
					closePos, hasClose = j, true
					goto scanned
				}
				bracketDepth--
				j++
			case '\\':
				j += 2
			default:
				j++
			}
			continue
		}

		switch {
		case b == '\'' || b == '"':
			j = skipString(content, j, span.End)
		case b == '\\':
			j += 2
		case b == '#':
			// Comment inside a multiline replacement field.
			for j < span.End && content[j] != '\n' {
				j++
			}
		case b == '(' || b == '[' || b == '{':
			bracketDepth++
			j++
		case b == ')' || b == ']':
			if bracketDepth > 0 {
				bracketDepth--
			}
			j++
		case b == '}':
			if bracketDepth == 0 {
				closePos, hasClose = j, true
				goto scanned
			}
			bracketDepth--
			j++
		case bracketDepth > 0:
			j++
		case b == '=' && !hasEq && j+1 < span.End && content[j+1] != '=' && !isOpBefore(content, j):
			eqPos, hasEq = j, true
			j++
		case b == '!' && j+1 < span.End && content[j+1] == '=':
			j += 2
		case b == '!' && isConversionAt(content, j, span.End):
			bangPos, hasBang = j, true
			j += 2
		case b == ':' && j+1 < span.End && content[j+1] == '=':
			j += 2
		case b == ':':
			colonPos, hasColon = j, true
			j++
		default:
			j++
		}
	}
scanned:
	if !hasClose {
		return nil, 0, errors.New("pyparse: unterminated replacement field")
	}

	// The expression runs to the first of '=', '!conv', ':', '}'.
	exprEnd := closePos
	if hasColon && colonPos < exprEnd {
		exprEnd = colonPos
	}
	if hasBang && bangPos < exprEnd {
		exprEnd = bangPos
	}
	if hasEq && eqPos < exprEnd {
		exprEnd = eqPos
	}

	trimStart, trimEnd := trimSpace(content, exprStart, exprEnd)
	if trimStart == trimEnd {
		return nil, 0, errors.New("pyparse: empty replacement field")
	}

	elem := &ast.ExprElement{
		Span:       source.Span{File: span.File, Start: off, End: closePos + 1},
		Expression: source.Span{File: span.File, Start: trimStart, End: trimEnd},
	}
	elem.Kind = classifyExpr(content[trimStart:trimEnd])

	if hasEq {
		markerEnd := closePos
		if hasColon && colonPos < markerEnd {
			markerEnd = colonPos
		}
		if hasBang && bangPos < markerEnd {
			markerEnd = bangPos
		}
		elem.Debug = &ast.DebugText{
			Leading:  string(content[exprStart:trimStart]),
			Trailing: string(content[trimEnd:markerEnd]),
		}
	}

	if hasBang {
		switch content[bangPos+1] {
		case 's':
			elem.Conversion = ast.ConversionStr
		case 'a':
			elem.Conversion = ast.ConversionAscii
		case 'r':
			elem.Conversion = ast.ConversionRepr
		}
	}

	if hasColon {
		specSpan := source.Span{File: span.File, Start: colonPos + 1, End: closePos}
		specElems, err := parseElements(f, specSpan, opts, depth+1)
		if err != nil {
			return nil, 0, err
		}
		elem.FormatSpec = &ast.FormatSpec{Span: specSpan, Elements: specElems}
	}

	return elem, closePos + 1, nil
}

// isConversionAt reports whether content[j] begins a !s/!a/!r conversion:
// the flag letter must be followed by ':' or the closing '}'.
func isConversionAt(content []byte, j, end uint32) bool {
	if j+2 > end-1 {
		return false
	}
	switch content[j+1] {
	case 's', 'a', 'r':
	default:
		return false
	}
	next := content[j+2]
	return next == ':' || next == '}'
}

// isOpBefore reports whether the '=' at j is part of a two-character
// operator (==, !=, <=, >=, +=, ...) rather than the debug shorthand.
func isOpBefore(content []byte, j uint32) bool {
	if j == 0 {
		return false
	}
	switch content[j-1] {
	case '=', '!', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^', '@', '~', ':':
		return true
	}
	return false
}

// skipString advances past a quoted string starting at the quote at j.
func skipString(content []byte, j, end uint32) uint32 {
	quote := content[j]
	j++
	triple := false
	if j+1 < end && content[j] == quote && content[j+1] == quote {
		j += 2
		triple = true
	}
	for j < end {
		b := content[j]
		if b == '\\' {
			j += 2
			continue
		}
		if b == quote {
			if !triple {
				return j + 1
			}
			if j+2 < end && content[j+1] == quote && content[j+2] == quote {
				return j + 3
			}
		}
		if b == '\n' && !triple {
			return j
		}
		j++
	}
	return end
}

func trimSpace(content []byte, start, end uint32) (uint32, uint32) {
	for start < end && isSpace(content[start]) {
		start++
	}
	for end > start && isSpace(content[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f' || b == '\r'
}
