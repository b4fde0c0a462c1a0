package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic category.
type Code uint16

const (
	// UnknownCode is the zero value; never emitted intentionally.
	UnknownCode Code = 0

	// Lexical diagnostics.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadIndent          Code = 1003

	// String formatting diagnostics.
	FmtDepthExceeded      Code = 3001
	FmtMalformedFString   Code = 3002
	FmtMixedConcatPrefix  Code = 3003
	FmtUnsupportedLiteral Code = 3004
)

func (c Code) String() string {
	switch c {
	case LexUnknownChar:
		return "LEX1001"
	case LexUnterminatedString:
		return "LEX1002"
	case LexBadIndent:
		return "LEX1003"
	case FmtDepthExceeded:
		return "FMT3001"
	case FmtMalformedFString:
		return "FMT3002"
	case FmtMixedConcatPrefix:
		return "FMT3003"
	case FmtUnsupportedLiteral:
		return "FMT3004"
	}
	return fmt.Sprintf("DIAG%04d", uint16(c))
}
