package lexer

import (
	"pystrfmt/internal/diag"
	"pystrfmt/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; errors are then
	// dropped but lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg)
	}
}
