package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"wisp/internal/diag"
	"wisp/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte(`(foo "bar`))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string literal",
		Primary:  source.Span{File: id, Start: 5, End: 6},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 5, End: 6}, Msg: "string literal opened here"},
		},
		Fixes: []diag.Fix{
			{
				Title: "insert closing quote",
				Edits: []diag.FixEdit{
					{Span: source.Span{File: id, Start: 9, End: 9}, NewText: `"`},
				},
			},
		},
	})

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("Count = %d, len = %d; want 1, 1", out.Count, len(out.Diagnostics))
	}

	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("severity/code = %s/%s, want ERROR/LEX1002", d.Severity, d.Code)
	}
	if d.Location.File != "test.wsp" {
		t.Errorf("file = %q, want test.wsp", d.Location.File)
	}
	if d.Location.StartByte != 5 || d.Location.EndByte != 6 {
		t.Errorf("bytes = %d-%d, want 5-6", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 6 {
		t.Errorf("start pos = %d:%d, want 1:6", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "string literal opened here" {
		t.Errorf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Title != "insert closing quote" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	if len(d.Fixes[0].Edits) != 1 || d.Fixes[0].Edits[0].NewText != `"` {
		t.Errorf("edits = %+v", d.Fixes[0].Edits)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte("@@@"))

	bag := diag.NewBag(16)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.LexUnexpectedChar,
			Message:  "unexpected character '@'",
			Primary:  source.Span{File: id, Start: i, End: i + 1},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("Max=2 gave count %d", out.Count)
	}
	// Bag не обрезается, только вывод
	if bag.Len() != 3 {
		t.Errorf("bag length changed to %d", bag.Len())
	}
}

func TestJSONOmitsPositionsByDefault(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wsp", []byte("@"))

	bag := makeBag(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnexpectedChar,
		Message:  "unexpected character '@'",
		Primary:  source.Span{File: id, Start: 0, End: 1},
	})

	var sb strings.Builder
	if err := FormatDiagnosticsJSON(&sb, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("FormatDiagnosticsJSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if strings.Contains(sb.String(), "start_line") {
		t.Errorf("positions must be omitted without IncludePositions:\n%s", sb.String())
	}
}
