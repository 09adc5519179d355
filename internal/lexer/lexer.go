package lexer

import (
	"errors"
	"io"

	"wisp/internal/source"
	"wisp/internal/token"
)

// Lexer turns one source file into a stream of tokens, one Next call per
// token. It holds no buffers beyond the reader's single code point of
// lookahead and an optional one-token buffer for Peek.
type Lexer struct {
	file *source.File
	rd   *Reader
	opts Options
	look *token.Token // однотокенный буфер для Peek
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		rd:   NewReader(file),
		opts: opts,
	}
}

// Next returns the next token or a *Error. One call, one outcome: no
// internal loop over the whole buffer, the caller pulls. Failures are
// returned immediately and never as a malformed token; the reader has
// already advanced past the offending input, so the caller may continue or
// abort. After EOF the stream is exhausted; calling Next again is invalid
// usage and keeps returning EOF.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}

	if err := lx.skipSpace(); err != nil {
		return token.Token{}, err
	}

	r, err := lx.rd.Peek()
	switch {
	case errors.Is(err, io.EOF):
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: lx.rd.Offset(), End: lx.rd.Offset()},
			Pos:  lx.rd.Pos(),
		}, nil
	case err != nil:
		// Потребляем невалидную единицу, чтобы вызывающий мог продолжить.
		_, _ = lx.rd.Read()
		return token.Token{}, lx.report(err)
	}

	switch {
	case r == '(':
		return lx.scanDelim(token.LParen), nil
	case r == ')':
		return lx.scanDelim(token.RParen), nil
	case r == '"':
		return lx.scanString()
	case isLetter(r):
		return lx.scanIdent()
	default:
		m := lx.rd.Mark()
		_, _ = lx.rd.Read()
		return token.Token{}, lx.report(&Error{
			Code: ErrUnexpectedChar,
			Span: lx.rd.SpanFrom(m),
			Pos:  lx.rd.PosFrom(m),
			Char: r,
		})
	}
}

// Peek returns the next token without consuming it; the result is cached
// until the following Next. Failures are not cached: after an error the
// reader has already moved past the offending input, so a later Next
// resumes from there.
func (lx *Lexer) Peek() (token.Token, error) {
	if lx.look != nil {
		return *lx.look, nil
	}
	tok, err := lx.Next()
	if err != nil {
		return token.Token{}, err
	}
	lx.look = &tok
	return tok, nil
}
