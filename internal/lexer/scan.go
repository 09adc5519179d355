package lexer

import (
	"errors"
	"io"

	"wisp/internal/diag"
	"wisp/internal/source"
	"wisp/internal/token"
)

// skipSpace consumes code points while they classify as whitespace. End of
// input is not an error here: dispatch emits the EOF token. A decoding
// error is consumed and propagated.
func (lx *Lexer) skipSpace() error {
	for {
		r, err := lx.rd.Peek()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			_, _ = lx.rd.Read()
			return lx.report(err)
		}
		if !isSpace(r) {
			return nil
		}
		_, _ = lx.rd.Read()
	}
}

// scanDelim consumes a single paren and emits its token.
func (lx *Lexer) scanDelim(kind token.Kind) token.Token {
	m := lx.rd.Mark()
	_, _ = lx.rd.Read()
	return token.Token{Kind: kind, Span: lx.rd.SpanFrom(m), Pos: lx.rd.PosFrom(m)}
}

// scanIdent assumes the peeked code point satisfies isLetter. It consumes
// while isIdentContinue holds; a decoding error mid-identifier aborts the
// scan — partial identifiers are never returned.
func (lx *Lexer) scanIdent() (token.Token, error) {
	m := lx.rd.Mark()
	_, _ = lx.rd.Read() // первый символ уже классифицирован вызывающим

	for {
		r, err := lx.rd.Peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_, _ = lx.rd.Read()
			return token.Token{}, lx.report(err)
		}
		if !isIdentContinue(r) {
			break
		}
		_, _ = lx.rd.Read()
	}

	sp := lx.rd.SpanFrom(m)
	return token.Token{
		Kind: token.Ident,
		Span: sp,
		Pos:  lx.rd.PosFrom(m),
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}, nil
}

// scanString assumes the peeked code point is '"'. The emitted span covers
// both quotes; Text carries only the contents between them. No escape
// processing: backslash and newline are ordinary content.
func (lx *Lexer) scanString() (token.Token, error) {
	m := lx.rd.Mark()
	openQuote := source.Span{File: lx.file.ID, Start: lx.rd.Offset(), End: lx.rd.Offset() + 1}
	_, _ = lx.rd.Read() // opening '"'

	for {
		r, err := lx.rd.Peek()
		if errors.Is(err, io.EOF) {
			return token.Token{}, lx.report(&Error{
				Code:     ErrUnterminatedString,
				Span:     openQuote,
				Pos:      lx.rd.PosFrom(m),
				Expected: '"',
			})
		}
		if err != nil {
			_, _ = lx.rd.Read()
			return token.Token{}, lx.report(err)
		}
		_, _ = lx.rd.Read()
		if r == '"' {
			break
		}
	}

	sp := lx.rd.SpanFrom(m)
	return token.Token{
		Kind: token.StringLit,
		Span: sp,
		Pos:  lx.rd.PosFrom(m),
		Text: string(lx.file.Content[sp.Start+1 : sp.End-1]),
	}, nil
}

// report routes the failure to the configured reporter (if any) and returns
// it unchanged so that Next propagates exactly what was reported.
func (lx *Lexer) report(err error) error {
	var lexErr *Error
	if !errors.As(err, &lexErr) || lx.opts.Reporter == nil {
		return err
	}

	b := diag.ReportError(lx.opts.Reporter, lexErr.DiagCode(), lexErr.Span, lexErr.Error())
	if lexErr.Code == ErrUnterminatedString {
		end := lx.rd.Offset()
		b.WithNote(lexErr.Span, "string literal opened here").
			WithFix("insert closing quote", diag.FixEdit{
				Span:    source.Span{File: lx.file.ID, Start: end, End: end},
				NewText: `"`,
			})
	}
	b.Emit()
	return err
}
