// Package format rewrites string-like literals in Python source: quote
// normalization, escape minimization, and structural re-rendering of
// f-string replacement fields. Every byte outside a string literal is
// copied through verbatim.
package format

import (
	"bytes"
	"errors"

	"github.com/mattn/go-runewidth"

	"pystrfmt/internal/ast"
	"pystrfmt/internal/diag"
	"pystrfmt/internal/doc"
	"pystrfmt/internal/lexer"
	"pystrfmt/internal/pyparse"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
	"pystrfmt/internal/trivia"
)

// FormatFile rewrites every string-like literal of f and returns the
// new source text. Literals the formatter cannot handle are reported
// through rep and left exactly as written, so the output is always
// valid whenever the input was.
func FormatFile(f *source.File, opts Options, rep diag.Reporter) []byte {
	opts = opts.withDefaults()
	if rep == nil {
		rep = diag.NopReporter{}
	}

	toks := lexer.Tokenize(f, lexer.Options{Reporter: rep})
	_, ranges := trivia.ExtractCommentRanges(toks)
	r := &renderer{
		f:        f,
		opts:     opts,
		comments: NewCommentRegistry(ranges),
		exprs:    VerbatimExprs{},
	}

	checkConcatGroups(f, toks, rep)

	var out bytes.Buffer
	out.Grow(len(f.Content))
	prev := uint32(0)
	prevSig := token.Invalid
	havePrev := false

	for _, tk := range toks {
		if tk.Kind == token.EOF {
			break
		}
		if tk.Kind != token.String {
			if !tk.Kind.IsTrivia() {
				prevSig = tk.Kind
				havePrev = true
			}
			continue
		}

		// Docstring position: first significant token of the file, or
		// first statement of an indented block.
		docstring := !havePrev || prevSig == token.Indent
		prevSig, havePrev = tk.Kind, true

		part, err := pyparse.ParsePart(f, tk.Span, pyparse.Options{MaxDepth: opts.MaxFieldDepth})
		if err != nil {
			reportLiteralError(rep, tk.Span, err)
			continue
		}
		d, err := r.formatPart(part, docstring)
		if err != nil {
			reportLiteralError(rep, tk.Span, err)
			continue
		}

		out.Write(f.Content[prev:tk.Span.Start])
		rendered := doc.Print(d, doc.PrintOptions{
			Width:       opts.LineWidth,
			IndentWidth: opts.IndentWidth,
			StartColumn: lastLineWidth(out.Bytes()),
		})
		out.WriteString(rendered)
		prev = tk.Span.End
	}

	out.Write(f.Content[prev:])
	return out.Bytes()
}

func reportLiteralError(rep diag.Reporter, sp source.Span, err error) {
	switch {
	case errors.Is(err, pyparse.ErrTooDeep), errors.Is(err, ErrFieldDepth):
		diag.ReportError(rep, diag.FmtDepthExceeded, sp,
			"replacement fields nest too deeply; literal left as written")
	case errors.Is(err, pyparse.ErrBadToken):
		diag.ReportWarning(rep, diag.FmtUnsupportedLiteral, sp,
			"literal left as written: "+err.Error())
	default:
		diag.ReportWarning(rep, diag.FmtMalformedFString, sp,
			"cannot parse f-string body; literal left as written: "+err.Error())
	}
}

// checkConcatGroups validates implicit concatenations: adjacent string
// tokens separated only by trivia form one group, and a group must not
// mix bytes and str parts.
func checkConcatGroups(f *source.File, toks []token.Token, rep diag.Reporter) {
	var run []token.Token
	flush := func() {
		if len(run) > 1 {
			if _, err := pyparse.ParseGroup(f, run, pyparse.Options{}); err != nil {
				sp := run[0].Span.Cover(run[len(run)-1].Span)
				diag.ReportWarning(rep, diag.FmtMixedConcatPrefix, sp, err.Error())
			}
		}
		run = run[:0]
	}
	for _, tk := range toks {
		switch {
		case tk.Kind == token.String:
			// Interior comment tokens of a triple f-string nest in the
			// string's span; they never split a run, but the string
			// they belong to was already collected.
			run = append(run, tk)
		case tk.Kind.IsTrivia():
			// runs survive comments and in-bracket newlines
		default:
			flush()
		}
	}
	flush()
}

// GroupPolicy parses the string group starting at the given adjacent
// string tokens and returns its wrap policy for an enclosing formatter.
func GroupPolicy(f *source.File, toks []token.Token) (WrapPolicy, error) {
	g, err := pyparse.ParseGroup(f, toks, pyparse.Options{})
	if err != nil {
		return WrapBestFit, err
	}
	return GroupWrapPolicy(f, g), nil
}

// FormatPart renders a single parsed literal with a fresh comment
// registry. Callers that format whole files use FormatFile instead.
func FormatPart(f *source.File, part ast.StringPart, opts Options) (string, error) {
	opts = opts.withDefaults()
	r := &renderer{
		f:        f,
		opts:     opts,
		comments: NewCommentRegistry(trivia.CommentRanges{}),
		exprs:    VerbatimExprs{},
	}
	d, err := r.formatPart(part, false)
	if err != nil {
		return "", err
	}
	return doc.Print(d, doc.PrintOptions{Width: opts.LineWidth, IndentWidth: opts.IndentWidth}), nil
}

// lastLineWidth measures the display width of the text after the last
// newline in b.
func lastLineWidth(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	return runewidth.StringWidth(string(b))
}
