package format

// QuoteStyle selects the preferred quote character for rewritten literals.
type QuoteStyle uint8

const (
	// QuotePreserve keeps the quote character each literal already uses.
	QuotePreserve QuoteStyle = iota
	// QuoteSingle prefers ' where escape counts do not forbid it.
	QuoteSingle
	// QuoteDouble prefers " where escape counts do not forbid it.
	QuoteDouble
)

func (q QuoteStyle) String() string {
	switch q {
	case QuotePreserve:
		return "preserve"
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	default:
		return "unknown"
	}
}

// ParseQuoteStyle maps a config string to a QuoteStyle.
func ParseQuoteStyle(s string) (QuoteStyle, bool) {
	switch s {
	case "preserve":
		return QuotePreserve, true
	case "single":
		return QuoteSingle, true
	case "double", "":
		return QuoteDouble, true
	default:
		return 0, false
	}
}

// TargetVersion is the oldest Python release the output must parse under.
type TargetVersion uint8

const (
	Py311 TargetVersion = iota
	Py312
)

func (v TargetVersion) String() string {
	switch v {
	case Py311:
		return "py311"
	case Py312:
		return "py312"
	default:
		return "unknown"
	}
}

// ParseTargetVersion maps a config string to a TargetVersion.
func ParseTargetVersion(s string) (TargetVersion, bool) {
	switch s {
	case "py311":
		return Py311, true
	case "py312", "":
		return Py312, true
	default:
		return 0, false
	}
}

// Options controls literal rewriting for a single file.
type Options struct {
	// Quotes is the preferred quote style.
	Quotes QuoteStyle
	// Target gates the structural f-string path. Py312 and later allow
	// nested same-quote strings and backslashes inside replacement
	// fields, so fields can be reformatted; earlier targets treat the
	// f-string body as opaque text.
	Target TargetVersion
	// NormalizeHexEscapes uppercases the hex digits of \x, \u and \U
	// escape sequences.
	NormalizeHexEscapes bool
	// LineWidth is the soft limit used when breaking triple-quoted
	// replacement fields. Zero means 88.
	LineWidth int
	// IndentWidth is the indent used for broken replacement fields.
	// Zero means 4.
	IndentWidth int
	// MaxFieldDepth bounds format-spec nesting before rendering fails
	// for the offending literal. Zero means 50.
	MaxFieldDepth int
}

func (o Options) withDefaults() Options {
	if o.LineWidth == 0 {
		o.LineWidth = 88
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.MaxFieldDepth == 0 {
		o.MaxFieldDepth = 50
	}
	return o
}

func (o Options) modernFStrings() bool {
	return o.Target >= Py312
}

// quoteChar returns the preferred quote byte, or cur for QuotePreserve.
func (o Options) quoteChar(cur byte) byte {
	switch o.Quotes {
	case QuoteSingle:
		return '\''
	case QuoteDouble:
		return '"'
	default:
		return cur
	}
}
