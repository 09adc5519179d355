package driver

import (
	"fmt"

	"wisp/internal/diag"
	"wisp/internal/lexer"
	"wisp/internal/observ"
	"wisp/internal/source"
	"wisp/internal/token"
)

// TokenizeResult собирает всё, что произвела токенизация одного файла.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Idents  *source.Interner
	Stats   TokenStats
	Timing  observ.Report
}

// TokenStats counts tokens by kind for the --stats output.
type TokenStats struct {
	Total        int `json:"total"`
	LParens      int `json:"lparens"`
	RParens      int `json:"rparens"`
	Idents       int `json:"idents"`
	Strings      int `json:"strings"`
	UniqueIdents int `json:"unique_idents"`
}

// Tokenize загружает файл с диска и токенизирует его целиком.
// Лексические ошибки не прерывают обход: они оседают в Bag, а лексер
// продолжает со следующей позиции. timer может быть nil.
func Tokenize(path string, maxDiagnostics int, timer *observ.Timer) (*TokenizeResult, error) {
	fs := source.NewFileSet()

	loadIdx := timer.Begin("load")
	fileID, err := fs.Load(path)
	if err != nil {
		timer.End(loadIdx, "failed")
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	timer.End(loadIdx, fmt.Sprintf("%d bytes", len(file.Content)))

	res := tokenizeFile(fs, file, maxDiagnostics, timer)
	return res, nil
}

// TokenizeSource токенизирует содержимое из памяти (stdin, тесты).
func TokenizeSource(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeFile(fs, fs.Get(fileID), maxDiagnostics, nil)
}

func tokenizeFile(fs *source.FileSet, file *source.File, maxDiagnostics int, timer *observ.Timer) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	idents := source.NewInterner()

	lexIdx := timer.Begin("lex")
	tokens, stats := collectTokens(file, bag, idents)
	timer.End(lexIdx, fmt.Sprintf("%d tokens", stats.Total))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Idents:  idents,
		Stats:   stats,
		Timing:  timer.Report(),
	}
}

// collectTokens прогоняет лексер до EOF. Диагностики уходят в bag через
// Reporter; сам токен ошибки не порождает, лексер уже сдвинулся дальше.
func collectTokens(file *source.File, bag *diag.Bag, idents *source.Interner) ([]token.Token, TokenStats) {
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	var stats TokenStats
	for {
		tok, err := lx.Next()
		if err != nil {
			// Лексер всегда продвигается мимо ошибки, цикл конечен.
			continue
		}
		tokens = append(tokens, tok)
		stats.Total++
		switch tok.Kind {
		case token.LParen:
			stats.LParens++
		case token.RParen:
			stats.RParens++
		case token.Ident:
			stats.Idents++
			if idents != nil {
				idents.Intern(tok.Text)
			}
		case token.StringLit:
			stats.Strings++
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	if idents != nil {
		// NoStringID зарезервирован под пустую строку
		stats.UniqueIdents = idents.Len() - 1
	}
	return tokens, stats
}
