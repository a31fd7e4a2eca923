package translate

// IsIdentifierChar reports whether b can appear inside a C or K identifier.
// The apostrophe counts because K spells many words with one.
func IsIdentifierChar(b byte) bool {
	return isWordChar(b) || b == '\''
}

// IsWordBoundary reports whether text[pos:pos+length] is a whole token:
// neither the byte before it nor the byte after it is an identifier char.
func IsWordBoundary(text []byte, pos, length int) bool {
	if pos > 0 && IsIdentifierChar(text[pos-1]) {
		return false
	}
	if end := pos + length; end < len(text) && IsIdentifierChar(text[end]) {
		return false
	}
	return true
}

// isWordChar is IsIdentifierChar without the apostrophe.
func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '_'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lastNonSpace walks back from i over whitespace, stopping at index 0.
func lastNonSpace(text []byte, i int) int {
	for i > 0 && isSpace(text[i]) {
		i--
	}
	return i
}
