package pyparse

import (
	"pystrfmt/internal/ast"
)

// classifyExpr classifies an expression's source form as far as the
// formatter needs: does it start with an open brace, and if so which
// brace-form is it. Anything not starting with '{' is ExprOther.
func classifyExpr(src []byte) ast.ExprKind {
	if len(src) == 0 || src[0] != '{' {
		return ast.ExprOther
	}

	// Distinguish dict/set literals from their comprehensions and from each
	// other by looking at the top level between the braces: a ':' before any
	// 'for' means a mapping, a top-level 'for' means a comprehension.
	depth := 0
	sawColon := false
	i := uint32(1)
	end := uint32(len(src))
	for i < end {
		b := src[i]
		switch {
		case b == '\'' || b == '"':
			i = skipString(src, i, end)
			continue
		case b == '\\':
			i += 2
			continue
		case b == '(' || b == '[' || b == '{':
			depth++
		case b == ')' || b == ']':
			if depth > 0 {
				depth--
			}
		case b == '}':
			if depth == 0 {
				if sawColon {
					return ast.ExprDict
				}
				return ast.ExprSet
			}
			depth--
		case depth == 0 && b == ':':
			if i+1 < end && src[i+1] == '=' {
				i += 2
				continue
			}
			sawColon = true
		case depth == 0 && b == 'f' && isWordAt(src, i, "for"):
			if sawColon {
				return ast.ExprDictComp
			}
			return ast.ExprSetComp
		}
		i++
	}
	// Unbalanced; the literal will be treated opaquely anyway.
	if sawColon {
		return ast.ExprDict
	}
	return ast.ExprSet
}

// isWordAt reports whether word occurs at i delimited by non-identifier
// characters on both sides.
func isWordAt(src []byte, i uint32, word string) bool {
	end := i + uint32(len(word))
	if end > uint32(len(src)) {
		return false
	}
	if string(src[i:end]) != word {
		return false
	}
	if i > 0 && isIdentByte(src[i-1]) {
		return false
	}
	if end < uint32(len(src)) && isIdentByte(src[end]) {
		return false
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}
