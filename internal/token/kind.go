package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Comment represents a '#' comment running to end of line.
	Comment
	// Newline represents a logical (statement-terminating) newline.
	Newline
	// NonLogicalNewline represents a newline inside brackets or after a
	// blank/comment-only line; it terminates no statement.
	NonLogicalNewline
	// Indent represents an increase of the indentation level.
	Indent
	// Dedent represents a decrease of the indentation level.
	Dedent

	// Name represents an identifier or keyword.
	Name
	// Number represents a numeric literal.
	Number
	// String represents a string-like literal, including bytes literals and
	// f-strings, with any prefix and quoting.
	String

	// Op represents any operator or punctuation token.
	Op
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
)

// IsTrivia reports whether the token is removed by the trivia filter before
// the stream reaches structural consumers.
func (k Kind) IsTrivia() bool {
	return k == Comment || k == NonLogicalNewline
}

// IsOpenBracket reports whether the token opens a bracket pair.
func (k Kind) IsOpenBracket() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsCloseBracket reports whether the token closes a bracket pair.
func (k Kind) IsCloseBracket() bool {
	return k == RParen || k == RBracket || k == RBrace
}

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Comment:
		return "Comment"
	case Newline:
		return "Newline"
	case NonLogicalNewline:
		return "NonLogicalNewline"
	case Indent:
		return "Indent"
	case Dedent:
		return "Dedent"
	case Name:
		return "Name"
	case Number:
		return "Number"
	case String:
		return "String"
	case Op:
		return "Op"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	}
	return "Unknown"
}
