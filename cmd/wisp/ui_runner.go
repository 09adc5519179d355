package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wisp/internal/driver"
	"wisp/internal/source"
	"wisp/internal/ui"
)

type tokenizeOutcome struct {
	fs       *source.FileSet
	interner *source.Interner
	results  []driver.TokenizeDirResult
	err      error
}

// runTokenizeDirWithUI гоняет TokenizeDir в фоне и рисует прогресс в терминале.
func runTokenizeDirWithUI(cmd *cobra.Command, dir string, settings tokenizeSettings) (*source.FileSet, *source.Interner, []driver.TokenizeDirResult, error) {
	files, err := driver.ListWispFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		fs, interner, results, err := driver.TokenizeDir(cmd.Context(), dir, settings.maxDiag, settings.jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- tokenizeOutcome{fs: fs, interner: interner, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("tokenize "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.interner, outcome.results, uiErr
	}
	return outcome.fs, outcome.interner, outcome.results, outcome.err
}
