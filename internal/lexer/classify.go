package lexer

import "unicode"

// ===== Классификаторы =====
// Чистые предикаты над одним code point, согласованные с таблицами Unicode.

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// isLetter reports whether r can start an identifier.
func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentContinue reports whether r can continue an identifier.
func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
