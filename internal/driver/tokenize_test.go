package driver

import (
	"os"
	"path/filepath"
	"testing"

	"wisp/internal/diag"
	"wisp/internal/observ"
	"wisp/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSource(t *testing.T) {
	res := TokenizeSource("test.wsp", []byte(`(foo (bar baz))`), 16)

	want := []token.Kind{
		token.LParen, token.Ident, token.LParen, token.Ident, token.Ident,
		token.RParen, token.RParen, token.EOF,
	}
	got := kinds(res.Tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token #%d = %v, want %v", i, got[i], want[i])
		}
	}

	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.Stats.Total != 8 || res.Stats.LParens != 2 || res.Stats.RParens != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.Idents != 3 || res.Stats.UniqueIdents != 3 || res.Stats.Strings != 0 {
		t.Errorf("ident stats = %+v", res.Stats)
	}
}

func TestTokenizeSourceDuplicateIdents(t *testing.T) {
	res := TokenizeSource("test.wsp", []byte(`(foo foo foo bar)`), 16)

	if res.Stats.Idents != 4 {
		t.Errorf("Idents = %d, want 4", res.Stats.Idents)
	}
	if res.Stats.UniqueIdents != 2 {
		t.Errorf("UniqueIdents = %d, want 2", res.Stats.UniqueIdents)
	}
	if _, ok := res.Idents.Lookup(1); !ok {
		t.Error("interner should hold the first identifier")
	}
}

func TestTokenizeSourceContinuesAfterErrors(t *testing.T) {
	res := TokenizeSource("test.wsp", []byte(`(foo @ bar)`), 16)

	// '@' даёт диагностику, но не обрывает обход
	want := []token.Kind{
		token.LParen, token.Ident, token.Ident, token.RParen, token.EOF,
	}
	got := kinds(res.Tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token #%d = %v, want %v", i, got[i], want[i])
		}
	}

	if res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", res.Bag.Len())
	}
	if code := res.Bag.Items()[0].Code; code != diag.LexUnexpectedChar {
		t.Errorf("code = %v, want LexUnexpectedChar", code)
	}
}

func TestTokenizeSourceDiagnosticLimit(t *testing.T) {
	res := TokenizeSource("test.wsp", []byte("@@@@@"), 2)

	if res.Bag.Len() != 2 {
		t.Errorf("bag holds %d diagnostics, want capped 2", res.Bag.Len())
	}
	// Обход всё равно дошёл до конца
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token = %v, want EOF", last.Kind)
	}
}

func TestTokenizeFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.wsp")
	if err := os.WriteFile(path, []byte("(greet \"hi\")\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timer := observ.NewTimer()
	res, err := Tokenize(path, 16, timer)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if res.Stats.Strings != 1 || res.Stats.Idents != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	// CRLF нормализован при загрузке
	if string(res.File.Content) != "(greet \"hi\")\n" {
		t.Errorf("content = %q", res.File.Content)
	}

	phases := res.Timing.Phases
	if len(phases) != 2 || phases[0].Name != "load" || phases[1].Name != "lex" {
		t.Errorf("timing phases = %+v", phases)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "absent.wsp"), 16, nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
