package token

import (
	"wisp/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	// Span is the byte span of the complete lexeme. Empty at the buffer end
	// for EOF.
	Span source.Span
	// Pos is the code-point offset of the defining character. Diagnostic
	// facing; never used for re-slicing.
	Pos uint32
	// Text is the identifier lexeme or the string contents with quotes
	// stripped; empty for LParen, RParen, and EOF.
	Text string
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

// IsDelimiter reports whether the token is a parenthesis.
func (t Token) IsDelimiter() bool {
	return t.Kind == LParen || t.Kind == RParen
}

// IsLiteral reports whether the token is a string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == StringLit
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool {
	return t.Kind == Ident
}
