package lexer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"fortio.org/safecast"

	"wisp/internal/source"
)

// Reader decodes file content as UTF-8, one code point at a time, with a
// single cached code point of lookahead. The cache makes Peek safely
// idempotent: any number of consecutive Peek calls returns the same result
// and never moves the cursor.
type Reader struct {
	file *source.File
	off  uint32 // байтовый курсор
	pos  uint32 // потреблённые code points
	look *lookahead
}

// lookahead хранит один декодированный code point между Peek и Read.
type lookahead struct {
	r    rune
	size uint32
	err  *Error // не nil, если байты не декодируются
}

// NewReader creates a reader over the file's content. The content must stay
// unmodified for the reader's lifetime.
func NewReader(f *source.File) *Reader {
	return &Reader{file: f}
}

func (rd *Reader) limit() uint32 {
	lenContent, err := safecast.Conv[uint32](len(rd.file.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenContent
}

// EOF проверяет, исчерпан ли ввод (с учётом незабранного lookahead).
func (rd *Reader) EOF() bool {
	return rd.look == nil && rd.off >= rd.limit()
}

// Offset returns the byte cursor.
func (rd *Reader) Offset() uint32 {
	return rd.off
}

// Pos returns the number of code points consumed so far.
func (rd *Reader) Pos() uint32 {
	return rd.pos
}

// fill decodes the next code point into the lookahead slot. io.EOF signals
// normal exhaustion. An undecodable sequence is stored in the slot together
// with its *Error so that Peek stays idempotent over it too.
func (rd *Reader) fill() error {
	if rd.look != nil {
		return nil
	}
	if rd.off >= rd.limit() {
		return io.EOF
	}
	rest := rd.file.Content[rd.off:]
	if rest[0] < utf8.RuneSelf { // fast-path ASCII
		rd.look = &lookahead{r: rune(rest[0]), size: 1}
		return nil
	}
	r, sz := utf8.DecodeRune(rest)
	if r == utf8.RuneError && sz <= 1 {
		rd.look = &lookahead{
			r:    utf8.RuneError,
			size: 1,
			err: &Error{
				Code: ErrInvalidEncoding,
				Span: source.Span{File: rd.file.ID, Start: rd.off, End: rd.off + 1},
				Pos:  rd.pos,
			},
		}
		return nil
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	rd.look = &lookahead{r: r, size: usz}
	return nil
}

// Peek returns the next code point without consuming it. io.EOF is the
// normal terminal signal; a *Error with ErrInvalidEncoding reports an
// undecodable byte sequence.
func (rd *Reader) Peek() (rune, error) {
	if err := rd.fill(); err != nil {
		return 0, err
	}
	if rd.look.err != nil {
		return utf8.RuneError, rd.look.err
	}
	return rd.look.r, nil
}

// Read consumes and returns the next code point. On an invalid sequence the
// cursor still advances past the offending byte, and pos advances by one, so
// a caller that continues after the error always makes progress and later
// positions stay meaningful.
func (rd *Reader) Read() (rune, error) {
	if err := rd.fill(); err != nil {
		return 0, err
	}
	lk := rd.look
	rd.look = nil
	rd.off += lk.size
	rd.pos++
	if lk.err != nil {
		return utf8.RuneError, lk.err
	}
	return lk.r, nil
}

// Mark это метка для быстрого получения Span/Pos читаемого фрагмента.
type Mark struct {
	off uint32
	pos uint32
}

// Mark сохраняет текущую позицию. Незабранный lookahead ещё не продвинул
// курсор, поэтому метка указывает на него.
func (rd *Reader) Mark() Mark {
	return Mark{off: rd.off, pos: rd.pos}
}

// SpanFrom returns the byte span from the mark to the current cursor.
func (rd *Reader) SpanFrom(m Mark) source.Span {
	return source.Span{File: rd.file.ID, Start: m.off, End: rd.off}
}

// PosFrom returns the code-point offset recorded by the mark.
func (rd *Reader) PosFrom(m Mark) uint32 {
	return m.pos
}
