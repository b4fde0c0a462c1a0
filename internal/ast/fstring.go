package ast

import (
	"pystrfmt/internal/source"
)

// FString is the parsed body of one formatted-string literal: an ordered
// sequence of literal-text and replacement-field elements.
type FString struct {
	Elements []Element
}

// ElementKind tags the Element variants. The set is closed: literal text or
// a replacement field, nothing else.
type ElementKind uint8

const (
	// ElementLiteral is a run of literal text between replacement fields.
	ElementLiteral ElementKind = iota
	// ElementExpression is one {...} replacement field.
	ElementExpression
)

// Element is one f-string element. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Element struct {
	Kind ElementKind
	// Literal covers the literal text run (Kind == ElementLiteral).
	Literal source.Span
	// Expr describes the replacement field (Kind == ElementExpression).
	Expr *ExprElement
}

// ConversionFlag is the optional !s/!a/!r conversion of a replacement field.
type ConversionFlag uint8

const (
	ConversionNone ConversionFlag = iota
	ConversionStr
	ConversionAscii
	ConversionRepr
)

// Marker returns the source form of the conversion, "" for ConversionNone.
func (c ConversionFlag) Marker() string {
	switch c {
	case ConversionStr:
		return "!s"
	case ConversionAscii:
		return "!a"
	case ConversionRepr:
		return "!r"
	case ConversionNone:
		return ""
	}
	panic("ast: invalid conversion flag")
}

// DebugText captures the raw source around a self-documenting expression
// ({expr=}): everything between the braces outside the expression itself.
// Both strings must be reproduced byte-for-byte.
type DebugText struct {
	Leading  string
	Trailing string
}

// ExprKind classifies the wrapped expression only as far as formatting needs:
// forms that start with an open brace get a guard space so the output never
// produces the literal-brace escape by accident.
type ExprKind uint8

const (
	// ExprOther is any expression without special treatment.
	ExprOther ExprKind = iota
	ExprDict
	ExprSet
	ExprDictComp
	ExprSetComp
)

// StartsWithOpenBrace reports whether the expression's source form begins
// with '{'.
func (k ExprKind) StartsWithOpenBrace() bool {
	switch k {
	case ExprDict, ExprSet, ExprDictComp, ExprSetComp:
		return true
	case ExprOther:
		return false
	}
	panic("ast: invalid expr kind")
}

// ExprElement is one replacement field of an f-string.
type ExprElement struct {
	// Span covers the whole field including braces.
	Span source.Span
	// Expression is the span of the wrapped expression (AST-owned range; the
	// expression itself is formatted by the generic expression formatter).
	Expression source.Span
	// Kind classifies Expression for the brace-collision rule.
	Kind ExprKind
	// Debug is non-nil for the {expr=} shorthand.
	Debug *DebugText
	// Conversion is the optional !s/!a/!r flag.
	Conversion ConversionFlag
	// FormatSpec is the optional :spec suffix, itself an element sequence.
	FormatSpec *FormatSpec
}

// FormatSpec is the ordered element sequence after the ':' of a replacement
// field. It recurses mutually with FString through Element.
type FormatSpec struct {
	Span     source.Span
	Elements []Element
}
