package lexer

const tabWidth = 8

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isAlphaByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStartByte(b byte) bool {
	return isAlphaByte(b) || b == '_'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isOpByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '@', '&', '|', '^', '~', '<', '>', '=',
		'!', ',', ':', ';', '.':
		return true
	}
	return false
}

// classifyStringPrefix reports whether text is a legal Python string prefix
// and whether it makes the literal raw or formatted.
func classifyStringPrefix(text string) (raw, fstr, ok bool) {
	if len(text) > 2 {
		return false, false, false
	}
	seenRaw, seenByte, seenFmt, seenUni := false, false, false, false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'r', 'R':
			if seenRaw {
				return false, false, false
			}
			seenRaw = true
		case 'b', 'B':
			if seenByte {
				return false, false, false
			}
			seenByte = true
		case 'f', 'F':
			if seenFmt {
				return false, false, false
			}
			seenFmt = true
		case 'u', 'U':
			if seenUni || len(text) > 1 {
				return false, false, false
			}
			seenUni = true
		default:
			return false, false, false
		}
	}
	if seenByte && seenFmt {
		return false, false, false
	}
	return seenRaw, seenFmt, true
}
