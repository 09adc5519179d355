package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"wisp/internal/diag"
	"wisp/internal/source"
	"wisp/internal/token"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Относительный путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
	Stats  TokenStats
}

// ListWispFiles возвращает отсортированный список всех *.wsp файлов в директории
func ListWispFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".wsp") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.wsp файлы в директории параллельно.
// Общий interner собирает идентификаторы со всех файлов; sink (может быть
// nil) получает события прогресса по мере работы.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int, sink ProgressSink) (*source.FileSet, *source.Interner, []TokenizeDirResult, error) {
	files, err := ListWispFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}

	interner := source.NewInterner()
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), interner, nil, nil
	}

	// Создаём FileSet и предзагружаем все файлы: Add не потокобезопасен,
	// поэтому загрузка идёт до запуска горутин.
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Пустой виртуальный файл служит якорем для диагностики:
			// спан должен указывать на сам непрочитанный путь, а не на файл с ID 0.
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
			emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		fileIDs[path] = fileID
		emit(sink, Event{File: path, Stage: StageLex, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				fileID := fileIDs[path]
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: fileID},
				})
				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag}
				return nil
			}

			emit(sink, Event{File: path, Stage: StageLex, Status: StatusWorking})
			started := time.Now()

			fileID := fileIDs[path]
			tokens, stats := collectTokens(fileSet.Get(fileID), bag, interner)

			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
				Stats:  stats,
			}

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageLex, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, interner, results, err
	}

	return fileSet, interner, results, nil
}
