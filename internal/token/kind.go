package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value. The lexer never emits it; failures are
	// returned as errors, not as tokens.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// Ident represents an identifier.
	Ident
	// StringLit represents a double-quoted string literal.
	StringLit
)

// String returns a stable label used by formatters and tests.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Ident:
		return "Ident"
	case StringLit:
		return "StringLit"
	}
	return "Unknown"
}
