package lexer

import (
	"fmt"

	"wisp/internal/diag"
	"wisp/internal/source"
)

// ErrorCode discriminates lexer failures. The set is closed: callers switch
// on it exhaustively instead of parsing messages.
type ErrorCode uint8

const (
	// ErrInvalidEncoding — input bytes do not decode to a valid code point.
	ErrInvalidEncoding ErrorCode = iota + 1
	// ErrUnterminatedString — a string literal was opened but the input
	// ended before the closing quote.
	ErrUnterminatedString
	// ErrUnexpectedChar — a code point that starts none of the token forms.
	ErrUnexpectedChar
)

// Error is a lexer failure with positional context. Pos counts code points,
// Span is in bytes; both refer to the original input.
type Error struct {
	Code     ErrorCode
	Span     source.Span
	Pos      uint32 // code-point offset
	Char     rune   // заполнен для ErrUnexpectedChar
	Expected rune   // заполнен для ErrUnterminatedString
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrInvalidEncoding:
		return fmt.Sprintf("invalid UTF-8 sequence at code point %d", e.Pos)
	case ErrUnterminatedString:
		return fmt.Sprintf("unterminated string literal, expected %q", e.Expected)
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q at code point %d", e.Char, e.Pos)
	}
	return fmt.Sprintf("lexer error %d", e.Code)
}

// DiagCode maps the failure onto the diagnostic taxonomy.
func (e *Error) DiagCode() diag.Code {
	switch e.Code {
	case ErrInvalidEncoding:
		return diag.LexInvalidUtf8
	case ErrUnterminatedString:
		return diag.LexUnterminatedString
	case ErrUnexpectedChar:
		return diag.LexUnexpectedChar
	}
	return diag.UnknownCode
}
