package diag

import (
	"pystrfmt/internal/source"
)

// Note is an optional secondary span/message attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding with a severity, code, and primary span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
