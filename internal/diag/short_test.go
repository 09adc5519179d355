package diag

import (
	"strings"
	"testing"

	"wisp/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("bad.wsp", []byte("(foo\n\"oops"))

	bag := NewBag(10)
	bag.Add(NewError(LexUnterminatedString, source.Span{File: id, Start: 5, End: 6}, "unterminated string literal"))

	out := FormatShortDiagnostics(bag, fs, false)
	if !strings.Contains(out, "error LEX1002") {
		t.Errorf("missing severity/code in %q", out)
	}
	if !strings.Contains(out, "bad.wsp:2:1") {
		t.Errorf("missing location in %q", out)
	}
	if !strings.Contains(out, "unterminated string literal") {
		t.Errorf("missing message in %q", out)
	}
}

func TestFormatShortDiagnosticsNotes(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("note.wsp", []byte("\"x"))

	d := NewError(LexUnterminatedString, source.Span{File: id, Start: 0, End: 1}, "unterminated").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "string literal opened here")
	bag := NewBag(10)
	bag.Add(d)

	withNotes := FormatShortDiagnostics(bag, fs, true)
	if !strings.Contains(withNotes, "note LEX1002") {
		t.Errorf("expected note line in %q", withNotes)
	}

	withoutNotes := FormatShortDiagnostics(bag, fs, false)
	if strings.Contains(withoutNotes, "note LEX1002") {
		t.Errorf("unexpected note line in %q", withoutNotes)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if out := FormatShortDiagnostics(NewBag(1), fs, false); out != "" {
		t.Errorf("empty bag should render nothing, got %q", out)
	}
	if out := FormatShortDiagnostics(nil, fs, false); out != "" {
		t.Errorf("nil bag should render nothing, got %q", out)
	}
}

func TestSanitizeMessage(t *testing.T) {
	if got := sanitizeMessage("  multi\r\nline\rmsg\n "); got != "multi line msg" {
		t.Errorf("sanitizeMessage = %q", got)
	}
}
