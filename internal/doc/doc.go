// Package doc provides the abstract layout primitives the string formatter
// renders into: literal text, soft and hard line breaks, width-sensitive
// groups, and bracket pairs that may break their content across indented
// lines. A printer turns a document into final text against a configured
// line width.
package doc

// Kind tags the document node variants.
type Kind uint8

const (
	// KindText is verbatim text. It may contain newlines.
	KindText Kind = iota
	// KindConcat renders its children in order.
	KindConcat
	// KindGroup prefers rendering its children flat; when they do not fit
	// the available width, soft breaks inside the group break.
	KindGroup
	// KindSoftlineOrSpace is a space when flat and a line break when broken.
	KindSoftlineOrSpace
	// KindSoftline is nothing when flat and a line break when broken.
	KindSoftline
	// KindHardLine always breaks.
	KindHardLine
	// KindIndent renders its children one indentation level deeper.
	KindIndent
	// KindBracketed is an open/content/close triple. When Multiline is set
	// and the content does not fit, the brackets break to their own lines
	// with the content indented; otherwise the pair always renders flat.
	KindBracketed
)

// Doc is one document node. The zero value is empty text.
type Doc struct {
	Kind     Kind
	Text     string
	Children []Doc

	// Bracketed only.
	Open      string
	Close     string
	Multiline bool
}

// Text returns a verbatim text node.
func Text(s string) Doc {
	return Doc{Kind: KindText, Text: s}
}

// Concat joins nodes in order.
func Concat(children ...Doc) Doc {
	return Doc{Kind: KindConcat, Children: children}
}

// Group makes a width-sensitive group around the children.
func Group(children ...Doc) Doc {
	return Doc{Kind: KindGroup, Children: children}
}

// SoftlineOrSpace is a space that may become a line break.
func SoftlineOrSpace() Doc {
	return Doc{Kind: KindSoftlineOrSpace}
}

// Softline is an empty spot that may become a line break.
func Softline() Doc {
	return Doc{Kind: KindSoftline}
}

// HardLine is an unconditional line break.
func HardLine() Doc {
	return Doc{Kind: KindHardLine}
}

// Indent renders the children one level deeper after each break.
func Indent(children ...Doc) Doc {
	return Doc{Kind: KindIndent, Children: children}
}

// Bracketed wraps content in an open/close pair. multiline permits breaking
// the pair across indented lines when the content does not fit.
func Bracketed(open string, content Doc, close string, multiline bool) Doc {
	return Doc{
		Kind:      KindBracketed,
		Open:      open,
		Close:     close,
		Children:  []Doc{content},
		Multiline: multiline,
	}
}
