package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runWisp выполняет команду с перехватом stdout/stderr.
func runWisp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// writeProject раскладывает файлы во временной директории и делает её текущей,
// чтобы относительные пути в выводе были предсказуемыми.
func writeProject(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
}

func TestTokenizeCleanFile(t *testing.T) {
	writeProject(t, map[string]string{"ok.wsp": `(greet "world")`})

	stdout, stderr, err := runWisp(t, "tokenize", "ok.wsp", "--color", "off")
	if err != nil {
		t.Fatalf("Execute: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Ident") || !strings.Contains(stdout, "EOF") {
		t.Errorf("token listing incomplete:\n%s", stdout)
	}
	if stderr != "" {
		t.Errorf("clean file must not produce stderr output:\n%s", stderr)
	}
}

func TestTokenizeDirectoryMixed(t *testing.T) {
	writeProject(t, map[string]string{
		"good.wsp": `(alpha)`,
		"bad.wsp":  `(oops "unfinished`,
	})

	stdout, stderr, err := runWisp(t, "tokenize", ".", "--color", "off")
	if !errors.Is(err, errHadDiagnostics) {
		t.Fatalf("err = %v, want errHadDiagnostics", err)
	}
	if !strings.Contains(stderr, "bad.wsp") || !strings.Contains(stderr, "LEX1002") {
		t.Errorf("stderr misses the per-file diagnostic:\n%s", stderr)
	}
	if strings.Contains(stderr, "good.wsp") {
		t.Errorf("clean file must not appear among diagnostics:\n%s", stderr)
	}
	// Токены печатаются для обоих файлов: плохой файл лексится дальше ошибки
	if !strings.Contains(stdout, "good.wsp:") || !strings.Contains(stdout, "bad.wsp:") {
		t.Errorf("token listing misses a file:\n%s", stdout)
	}
}

func TestTokenizeDirectoryUnreadableFile(t *testing.T) {
	writeProject(t, map[string]string{"good.wsp": `(fine)`})
	// Битая символическая ссылка: обход её видит, чтение падает
	if err := os.Symlink("nowhere", "locked.wsp"); err != nil {
		t.Skipf("symlink: %v", err)
	}

	_, stderr, err := runWisp(t, "tokenize", ".", "--color", "off")
	if !errors.Is(err, errHadDiagnostics) {
		t.Fatalf("err = %v, want errHadDiagnostics", err)
	}
	if !strings.Contains(stderr, "locked.wsp") || !strings.Contains(stderr, "IO4001") {
		t.Errorf("load failure not reported:\n%s", stderr)
	}
}

func TestTokenizeQuietShortDiagnostics(t *testing.T) {
	writeProject(t, map[string]string{"bad.wsp": `(@)`})

	_, stderr, err := runWisp(t, "tokenize", "bad.wsp", "--color", "off", "--quiet")
	if !errors.Is(err, errHadDiagnostics) {
		t.Fatalf("err = %v, want errHadDiagnostics", err)
	}
	if !strings.Contains(stderr, "error LEX1003 bad.wsp:1:2") {
		t.Errorf("quiet mode must render the one-line form:\n%s", stderr)
	}
}

func TestTokenizeRejectsNegativeMaxDiagnostics(t *testing.T) {
	writeProject(t, map[string]string{"ok.wsp": `()`})

	_, _, err := runWisp(t, "tokenize", "ok.wsp", "--max-diagnostics=-1")
	if err == nil || !strings.Contains(err.Error(), "max-diagnostics") {
		t.Fatalf("err = %v, want max-diagnostics validation error", err)
	}
}
