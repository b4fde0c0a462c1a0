package format

import (
	"bytes"

	"pystrfmt/internal/ast"
)

// NormalizedKind says whether normalization changed a literal's content.
type NormalizedKind uint8

const (
	// NormalizedUnchanged means the content can be copied from the source.
	NormalizedUnchanged NormalizedKind = iota
	// NormalizedRewritten means Content carries the new text.
	NormalizedRewritten
)

// Normalized is the result of escape normalization for one content slice.
type Normalized struct {
	Kind    NormalizedKind
	Content string
}

// Text returns the normalized content, falling back to the original
// slice when nothing changed.
func (n Normalized) Text(original []byte) string {
	if n.Kind == NormalizedRewritten {
		return n.Content
	}
	return string(original)
}

// countQuotes counts logical quote characters in content. An escaped
// quote counts the same as a bare one since rewriting may drop or add
// the backslash without removing the character.
func countQuotes(content []byte) (singles, doubles int) {
	for i := 0; i < len(content); i++ {
		b := content[i]
		if b == '\\' && i+1 < len(content) {
			n := content[i+1]
			if n == '\'' {
				singles++
			} else if n == '"' {
				doubles++
			}
			i++
			continue
		}
		if b == '\'' {
			singles++
		} else if b == '"' {
			doubles++
		}
	}
	return singles, doubles
}

// chooseQuote picks the quote character for a literal whose logical
// content holds the given quote counts. The configured preference wins
// unless the current character needs strictly fewer escapes.
func chooseQuote(cur, preferred byte, singles, doubles int) byte {
	if cur == preferred {
		return cur
	}
	escapes := func(q byte) int {
		if q == '\'' {
			return singles
		}
		return doubles
	}
	if escapes(cur) < escapes(preferred) {
		return cur
	}
	return preferred
}

// choosePartQuote decides the quote character for a whole string part.
// Raw and triple-quoted literals only switch when the preferred
// character does not occur in the content at all; single-line cooked
// literals switch on escape counts. Docstrings follow the conservative
// containment rule regardless of quoting so their prose never grows
// escapes.
func choosePartQuote(content []byte, part ast.StringPart, opts Options, docstring bool) byte {
	preferred := opts.quoteChar(part.Quote)
	if preferred == part.Quote {
		return part.Quote
	}
	if part.Prefix.IsRaw() || part.Triple || docstring {
		if !bytes.ContainsRune(content, rune(preferred)) {
			return preferred
		}
		return part.Quote
	}
	singles, doubles := countQuotes(content)
	return chooseQuote(part.Quote, preferred, singles, doubles)
}

// rewriteEscapes normalizes escape sequences for the target quote:
// quotes that no longer need a backslash lose it, quotes matching the
// new delimiter gain one, and hex escape digits are uppercased when
// requested. Triple-quoted content never touches quote escapes since
// adding or removing a backslash there can form a closing run.
func rewriteEscapes(content []byte, target byte, triple, hexUpper bool) Normalized {
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); {
		b := content[i]
		if b == '\\' && i+1 < len(content) {
			n := content[i+1]
			if (n == '\'' || n == '"') && !triple {
				if n == target {
					out = append(out, '\\', n)
				} else {
					out = append(out, n)
					changed = true
				}
				i += 2
				continue
			}
			if hexUpper {
				var digits int
				switch n {
				case 'x':
					digits = 2
				case 'u':
					digits = 4
				case 'U':
					digits = 8
				}
				if digits > 0 && hasHexDigits(content[i+2:], digits) {
					out = append(out, '\\', n)
					for _, d := range content[i+2 : i+2+digits] {
						up := upperHex(d)
						if up != d {
							changed = true
						}
						out = append(out, up)
					}
					i += 2 + digits
					continue
				}
			}
			out = append(out, b, n)
			i += 2
			continue
		}
		if (b == '\'' || b == '"') && !triple && b == target {
			out = append(out, '\\', b)
			changed = true
			i++
			continue
		}
		out = append(out, b)
		i++
	}
	if !changed {
		return Normalized{Kind: NormalizedUnchanged}
	}
	return Normalized{Kind: NormalizedRewritten, Content: string(out)}
}

func hasHexDigits(b []byte, n int) bool {
	if len(b) < n {
		return false
	}
	for _, c := range b[:n] {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func upperHex(c byte) byte {
	if c >= 'a' && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}

// canonicalPrefix renders a literal prefix in normalized form: letters
// lowercased, the redundant u marker dropped, raw first.
func canonicalPrefix(p ast.PrefixFlags) string {
	switch {
	case p.IsRaw() && p.IsBytes():
		return "rb"
	case p.IsRaw() && p.IsFormat():
		return "rf"
	case p.IsRaw():
		return "r"
	case p.IsBytes():
		return "b"
	case p.IsFormat():
		return "f"
	default:
		return ""
	}
}

// quoteRun returns the delimiter text for a part quoted with q.
func quoteRun(q byte, triple bool) string {
	if triple {
		return string([]byte{q, q, q})
	}
	return string(q)
}
