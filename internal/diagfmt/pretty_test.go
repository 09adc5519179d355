package diagfmt

import (
	"strings"
	"testing"

	"wisp/internal/diag"
	"wisp/internal/source"
)

func makeBag(diags ...diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(16)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte("(foo @)"))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnexpectedChar,
		Message:  "unexpected character '@'",
		Primary:  source.Span{File: id, Start: 5, End: 6},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "test.wsp:1:6: ERROR LEX1003: unexpected character '@'") {
		t.Errorf("missing header line in output:\n%s", out)
	}
	if !strings.Contains(out, "     1 | (foo @)") {
		t.Errorf("missing context line in output:\n%s", out)
	}
	// Каретка под '@': 5 пробелов отступа после "       | "
	if !strings.Contains(out, "       |      ^\n") {
		t.Errorf("caret misplaced in output:\n%s", out)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte("foo bar"))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexInfo,
		Message:  "whole identifier",
		Primary:  source.Span{File: id, Start: 4, End: 7},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})

	if !strings.Contains(sb.String(), "       |     ^~~\n") {
		t.Errorf("underline should cover three columns:\n%s", sb.String())
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte("(one)\n(two)\n(@)"))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnexpectedChar,
		Message:  "unexpected character '@'",
		Primary:  source.Span{File: id, Start: 13, End: 14},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: 1})
	out := sb.String()

	if strings.Contains(out, "(one)") {
		t.Errorf("context=1 must not include line 1:\n%s", out)
	}
	if !strings.Contains(out, "     2 | (two)") {
		t.Errorf("missing context line 2:\n%s", out)
	}
	if !strings.Contains(out, "test.wsp:3:2:") {
		t.Errorf("wrong header position:\n%s", out)
	}
}

func TestPrettyUnanchoredDiagnostic(t *testing.T) {
	// Спан с FileID, которого нет в FileSet: печатается только заголовок
	fs := source.NewFileSet()
	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: permission denied",
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})

	want := "ERROR IO4001: failed to load file: permission denied\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte(`"abc`))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string literal",
		Primary:  source.Span{File: id, Start: 0, End: 1},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 0, End: 1}, Msg: "string literal opened here"},
		},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})

	if !strings.Contains(sb.String(), "note: 1:1: string literal opened here") {
		t.Errorf("missing note line:\n%s", sb.String())
	}
}
