package lexer

import (
	"pystrfmt/internal/diag"
	"pystrfmt/internal/token"
)

// scanString scans a complete string-like literal starting at start (which
// covers the already-consumed prefix, if any). The cursor sits on the opening
// quote. F-strings are scanned with enough brace awareness to find the real
// closing quote even under the modern grammar (nested same-character quotes
// inside replacement fields); comments inside triple-quoted replacement
// fields are queued as Comment tokens so the comment-range pass sees them.
func (lx *Lexer) scanString(start Mark, raw, fstr bool) token.Token {
	quote := lx.cursor.Bump()
	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}
	_ = raw // raw affects escape semantics, not termination: \q still hides q

	braceDepth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}

		if b == quote && braceDepth == 0 {
			if !triple {
				lx.cursor.Bump()
				return lx.stringToken(start, token.String)
			}
			if lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.stringToken(start, token.String)
			}
			lx.cursor.Bump()
			continue
		}

		if b == '\n' && !triple && braceDepth == 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.stringToken(start, token.Invalid)
		}

		if fstr {
			switch b {
			case '{':
				if lx.cursor.PeekAt(1) == '{' && braceDepth == 0 {
					lx.cursor.Bump()
					lx.cursor.Bump()
					continue
				}
				braceDepth++
				lx.cursor.Bump()
				continue
			case '}':
				if lx.cursor.PeekAt(1) == '}' && braceDepth == 0 {
					lx.cursor.Bump()
					lx.cursor.Bump()
					continue
				}
				if braceDepth > 0 {
					braceDepth--
				}
				lx.cursor.Bump()
				continue
			}
			if braceDepth > 0 {
				if b == '\'' || b == '"' {
					lx.skipNestedString()
					continue
				}
				if b == '#' && triple {
					lx.queueInteriorComment()
					continue
				}
			}
		}

		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.stringToken(start, token.Invalid)
}

func (lx *Lexer) stringToken(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.lineHasToken = true
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// skipNestedString skips over a string literal nested inside an f-string
// replacement field without producing a token for it.
func (lx *Lexer) skipNestedString() {
	quote := lx.cursor.Bump()
	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == quote {
			if !triple {
				lx.cursor.Bump()
				return
			}
			if lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				return
			}
		}
		if b == '\n' && !triple {
			return
		}
		lx.cursor.Bump()
	}
}

// queueInteriorComment records a comment inside a multiline replacement
// field. The comment stays part of the string token's text; the queued token
// only exists so its range reaches the comment extractor.
func (lx *Lexer) queueInteriorComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.pending = append(lx.pending, token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)})
}
