package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
)

// Pretty renders diagnostics in a human-readable form, one per block:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by any notes. Call bag.Sort() first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code.String(), d.Message, opts)
		writeContext(w, fs, d.Primary)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeading(w, fs, n.Span, diag.SevInfo, "note", n.Msg, opts)
				writeContext(w, fs, n.Span)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code, msg string, opts PrettyOpts) {
	pos := "<unknown>"
	if fs != nil && !sp.Empty() {
		f := fs.Get(sp.File)
		lc := f.LineCol(sp.Start)
		pos = fmt.Sprintf("%s:%d:%d", displayPath(f.Path, opts.PathMode), lc.Line, lc.Col)
	}
	sevText := sev.String()
	if opts.Color {
		pos = posColor.Sprint(pos)
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", pos, sevText, code, msg)
}

// writeContext prints the first source line the span covers with a
// caret underline.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span) {
	if fs == nil || sp.Empty() {
		return
	}
	f := fs.Get(sp.File)
	lineStart := sp.Start
	for lineStart > 0 && f.Content[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := sp.Start
	for lineEnd < uint32(len(f.Content)) && f.Content[lineEnd] != '\n' {
		lineEnd++
	}
	line := string(f.Content[lineStart:lineEnd])
	fmt.Fprintf(w, "    %s\n", line)

	caretLen := int(min(sp.End, lineEnd) - sp.Start)
	if caretLen < 1 {
		caretLen = 1
	}
	pad := strings.Repeat(" ", int(sp.Start-lineStart))
	fmt.Fprintf(w, "    %s^%s\n", pad, strings.Repeat("~", caretLen-1))
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if wd, err := filepath.Abs("."); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil {
				return rel
			}
		}
		return path
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	default:
		return path
	}
}
