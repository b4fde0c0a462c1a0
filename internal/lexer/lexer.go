package lexer

import (
	"pystrfmt/internal/diag"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

// Lexer produces a flat Python token stream: comments and non-logical
// newlines are real tokens (the trivia filter removes them later), string
// literals of every flavor are single tokens whose interior is left to the
// string parser.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	pending      []token.Token // queued indent/dedent/interior-comment tokens
	indents      []int
	depth        int // open bracket depth
	atLineStart  bool
	lineHasToken bool
	eofPrepared  bool
}

// New creates a lexer over the file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		atLineStart: true,
	}
}

// Tokenize runs the lexer to completion and returns the full stream,
// EOF token included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After EOF it returns EOF forever.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			t := lx.pending[0]
			lx.pending = lx.pending[1:]
			return t
		}

		if lx.atLineStart && lx.depth == 0 && !lx.cursor.EOF() {
			lx.atLineStart = false
			lx.scanIndentation()
			continue
		}

		// Inline whitespace and explicit line joins.
		for {
			b := lx.cursor.Peek()
			if b == ' ' || b == '\t' || b == '\f' || b == '\r' {
				lx.cursor.Bump()
				continue
			}
			if b == '\\' && lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			break
		}

		if lx.cursor.EOF() {
			return lx.finish()
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '\n':
			return lx.scanNewline()

		case ch == '#':
			return lx.scanComment()

		case ch == '\'' || ch == '"':
			return lx.scanString(lx.cursor.Mark(), false, false)

		case isIdentStartByte(ch) || ch >= 0x80:
			return lx.scanNameOrString()

		case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
			return lx.scanNumber()

		default:
			return lx.scanOperatorOrPunct()
		}
	}
}

// finish emits trailing dedents once, then EOF forever.
func (lx *Lexer) finish() token.Token {
	if !lx.eofPrepared {
		lx.eofPrepared = true
		for range lx.indents {
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
		}
		lx.indents = lx.indents[:0]
		if len(lx.pending) > 0 {
			t := lx.pending[0]
			lx.pending = lx.pending[1:]
			return t
		}
	}
	return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
}

func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)

	kind := token.Newline
	if lx.depth > 0 || !lx.lineHasToken {
		kind = token.NonLogicalNewline
	}
	lx.lineHasToken = false
	if lx.depth == 0 {
		lx.atLineStart = true
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
}

// scanIndentation processes the whitespace at the start of a logical line and
// queues Indent/Dedent tokens. Blank and comment-only lines never change the
// indentation stack.
func (lx *Lexer) scanIndentation() {
	start := lx.cursor.Mark()
	width := 0
	for {
		switch lx.cursor.Peek() {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		case '\f':
			width = 0
		default:
			goto measured
		}
		lx.cursor.Bump()
	}
measured:
	b := lx.cursor.Peek()
	if lx.cursor.EOF() || b == '\n' || b == '#' {
		return
	}

	cur := 0
	if len(lx.indents) > 0 {
		cur = lx.indents[len(lx.indents)-1]
	}
	switch {
	case width > cur:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.cursor.SpanFrom(start)})
	case width < cur:
		for len(lx.indents) > 0 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
		}
		rest := 0
		if len(lx.indents) > 0 {
			rest = lx.indents[len(lx.indents)-1]
		}
		if rest != width {
			lx.errLex(diag.LexBadIndent, lx.cursor.SpanFrom(start), "unindent does not match any outer indentation level")
			lx.indents = append(lx.indents, width)
		}
	}
}

// scanNameOrString scans an identifier/keyword, re-interpreting it as a
// string prefix when a quote follows (r'', b"", rb'', f"" and friends).
func (lx *Lexer) scanNameOrString() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) || b >= 0x80 {
			lx.cursor.Bump()
			continue
		}
		break
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if b := lx.cursor.Peek(); b == '\'' || b == '"' {
		if raw, fstr, ok := classifyStringPrefix(text); ok {
			return lx.scanString(start, raw, fstr)
		}
	}

	lx.lineHasToken = true
	return token.Token{Kind: token.Name, Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		b := lx.cursor.Peek()
		switch {
		case isDec(b) || isAlphaByte(b) || b == '_' || b == '.':
			lx.cursor.Bump()
		case (b == '+' || b == '-') && lx.prevByteIn("eE"):
			lx.cursor.Bump()
		default:
			sp := lx.cursor.SpanFrom(start)
			lx.lineHasToken = true
			return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
		}
	}
}

// Multi-character operators, longest first.
var multiOps = []string{
	"**=", "//=", ">>=", "<<=", "...", "!=",
	"->", ":=", "**", "//", ">>", "<<", "<=", ">=", "==",
	"+=", "-=", "*=", "/=", "%=", "@=", "&=", "|=", "^=",
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch ch {
	case '(', '[', '{':
		lx.cursor.Bump()
		lx.depth++
		lx.lineHasToken = true
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: openKind(ch), Span: sp, Text: lx.text(sp)}
	case ')', ']', '}':
		lx.cursor.Bump()
		if lx.depth > 0 {
			lx.depth--
		}
		lx.lineHasToken = true
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: closeKind(ch), Span: sp, Text: lx.text(sp)}
	}

	rest := lx.file.Content[lx.cursor.Off:]
	for _, op := range multiOps {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			for range op {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.lineHasToken = true
			return token.Token{Kind: token.Op, Span: sp, Text: lx.text(sp)}
		}
	}

	if isOpByte(ch) {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.lineHasToken = true
		return token.Token{Kind: token.Op, Span: sp, Text: lx.text(sp)}
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
	lx.lineHasToken = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) prevByteIn(set string) bool {
	if lx.cursor.Off == 0 {
		return false
	}
	prev := lx.file.Content[lx.cursor.Off-1]
	for i := 0; i < len(set); i++ {
		if set[i] == prev {
			return true
		}
	}
	return false
}

func openKind(b byte) token.Kind {
	switch b {
	case '(':
		return token.LParen
	case '[':
		return token.LBracket
	default:
		return token.LBrace
	}
}

func closeKind(b byte) token.Kind {
	switch b {
	case ')':
		return token.RParen
	case ']':
		return token.RBracket
	default:
		return token.RBrace
	}
}
