package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintOptions configures document rendering.
type PrintOptions struct {
	// Width is the target line width in display columns.
	Width int
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int
	// StartColumn is the column the document starts at (text already on the
	// line before it).
	StartColumn int
}

func (o PrintOptions) withDefaults() PrintOptions {
	if o.Width == 0 {
		o.Width = 88
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Print renders the document to text.
func Print(d Doc, opts PrintOptions) string {
	opts = opts.withDefaults()
	p := printer{opts: opts, col: opts.StartColumn}
	p.render(d, 0, false)
	return p.buf.String()
}

type printer struct {
	opts PrintOptions
	buf  strings.Builder
	col  int
}

// render walks the document. broken propagates a group's break decision to
// the soft lines inside it.
func (p *printer) render(d Doc, indent int, broken bool) {
	switch d.Kind {
	case KindText:
		p.text(d.Text)

	case KindConcat:
		for _, c := range d.Children {
			p.render(c, indent, broken)
		}

	case KindGroup:
		if p.fitsFlat(d.Children) {
			for _, c := range d.Children {
				p.render(c, indent, false)
			}
			return
		}
		for _, c := range d.Children {
			p.render(c, indent, true)
		}

	case KindSoftlineOrSpace:
		if broken {
			p.line(indent)
		} else {
			p.text(" ")
		}

	case KindSoftline:
		if broken {
			p.line(indent)
		}

	case KindHardLine:
		p.line(indent)

	case KindIndent:
		for _, c := range d.Children {
			p.render(c, indent+1, broken)
		}

	case KindBracketed:
		content := d.Children[0]
		if !d.Multiline {
			p.text(d.Open)
			p.render(content, indent, false)
			p.text(d.Close)
			return
		}
		flat := flatWidth(d)
		if flat >= 0 && p.col+flat <= p.opts.Width {
			p.text(d.Open)
			p.render(content, indent, false)
			p.text(d.Close)
			return
		}
		p.text(d.Open)
		p.line(indent + 1)
		p.render(content, indent+1, true)
		p.line(indent)
		p.text(d.Close)

	default:
		panic("doc: invalid node kind")
	}
}

func (p *printer) text(s string) {
	p.buf.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.col = runewidth.StringWidth(s[i+1:])
	} else {
		p.col += runewidth.StringWidth(s)
	}
}

func (p *printer) line(indent int) {
	p.buf.WriteByte('\n')
	pad := indent * p.opts.IndentWidth
	for i := 0; i < pad; i++ {
		p.buf.WriteByte(' ')
	}
	p.col = pad
}

// fitsFlat reports whether the nodes fit on the current line when rendered
// without breaks.
func (p *printer) fitsFlat(children []Doc) bool {
	w := 0
	for _, c := range children {
		cw := flatWidth(c)
		if cw < 0 {
			return false
		}
		w += cw
	}
	return p.col+w <= p.opts.Width
}

// flatWidth is the display width of a node rendered flat, or -1 when the
// node cannot render flat (hard line breaks, embedded newlines).
func flatWidth(d Doc) int {
	switch d.Kind {
	case KindText:
		if strings.ContainsRune(d.Text, '\n') {
			return -1
		}
		return runewidth.StringWidth(d.Text)
	case KindSoftlineOrSpace:
		return 1
	case KindSoftline:
		return 0
	case KindHardLine:
		return -1
	case KindConcat, KindGroup, KindIndent:
		w := 0
		for _, c := range d.Children {
			cw := flatWidth(c)
			if cw < 0 {
				return -1
			}
			w += cw
		}
		return w
	case KindBracketed:
		w := runewidth.StringWidth(d.Open) + runewidth.StringWidth(d.Close)
		cw := flatWidth(d.Children[0])
		if cw < 0 {
			return -1
		}
		return w + cw
	default:
		panic("doc: invalid node kind")
	}
}
