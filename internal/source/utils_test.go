package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"no CR", "(a)\n(b)", "(a)\n(b)", false},
		{"CRLF pairs", "(a)\r\n(b)\r\n", "(a)\n(b)\n", true},
		{"lone CR kept", "(a)\r(b)", "(a)\r(b)", false},
		{"mixed", "(a)\r\n(b)\r(c)\r\n", "(a)\n(b)\r(c)\n", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("normalizeCRLF(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, '(', ')'}
	got, had := removeBOM(withBOM)
	if !had {
		t.Error("Expected BOM to be detected")
	}
	if !bytes.Equal(got, []byte("()")) {
		t.Errorf("Content after BOM strip = %q, want %q", got, "()")
	}

	plain := []byte("()")
	got, had = removeBOM(plain)
	if had {
		t.Error("No BOM expected")
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("Content = %q, want %q", got, plain)
	}

	short := []byte{0xEF, 0xBB}
	if _, had = removeBOM(short); had {
		t.Error("Truncated BOM must not be stripped")
	}
}

func TestToLineCol(t *testing.T) {
	// "ab\ncd\n" → LineIdx = [2,5]
	lineIdx := []uint32{2, 5}

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
	}

	for _, tt := range tests {
		if got := toLineCol(lineIdx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	if got := toLineCol(nil, 7); got != (LineCol{1, 8}) {
		t.Errorf("toLineCol with empty index = %+v, want {1 8}", got)
	}
}
