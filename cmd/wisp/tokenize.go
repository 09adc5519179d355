package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wisp/internal/diag"
	"wisp/internal/diagfmt"
	"wisp/internal/driver"
	"wisp/internal/observ"
	"wisp/internal/source"
	"wisp/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.wsp|directory|->",
	Short: "Tokenize wisp source",
	Long: `Tokenize breaks wisp source down into its constituent tokens.
The argument is a single *.wsp file, a directory (every *.wsp file inside,
recursively), or "-" for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

// errHadDiagnostics сигналит ненулевой exit без повторного текста ошибки:
// диагностики уже напечатаны в stderr.
var errHadDiagnostics = errors.New("diagnostics reported")

func init() {
	tokenizeCmd.Flags().String("format", "", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().Bool("stats", false, "print token statistics")
	tokenizeCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	tokenizeCmd.Flags().Bool("ui", false, "interactive progress for directories")
}

// tokenizeSettings — флаги после слияния с wisp.toml. Явный флаг побеждает
// манифест, манифест побеждает значения по умолчанию.
type tokenizeSettings struct {
	format  string
	stats   bool
	jobs    int
	ui      bool
	quiet   bool
	timings bool
	color   bool
	maxDiag int
}

func resolveTokenizeSettings(cmd *cobra.Command) (tokenizeSettings, error) {
	s := tokenizeSettings{format: "pretty", maxDiag: 100}

	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return s, err
	}
	if found {
		if manifest.Config.Tokenize.Format != "" {
			s.format = manifest.Config.Tokenize.Format
		}
		if manifest.Config.Tokenize.Jobs > 0 {
			s.jobs = manifest.Config.Tokenize.Jobs
		}
		if manifest.Config.Diagnostics.Max > 0 {
			s.maxDiag = manifest.Config.Diagnostics.Max
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.format, _ = flags.GetString("format")
	}
	switch s.format {
	case "pretty", "json", "msgpack":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	if flags.Changed("jobs") {
		s.jobs, _ = flags.GetInt("jobs")
	}
	s.stats, _ = flags.GetBool("stats")
	s.ui, _ = flags.GetBool("ui")

	// Унаследованные persistent-флаги читаются через cmd.Flags(): именно в этот
	// набор cobra парсит аргументы, а cmd.Root().PersistentFlags() может
	// указывать на другой экземпляр root при повторном создании команды.
	persistent := cmd.Flags()
	if persistent.Changed("max-diagnostics") {
		s.maxDiag, _ = persistent.GetInt("max-diagnostics")
	}
	if s.maxDiag <= 0 {
		return s, fmt.Errorf("--max-diagnostics must be positive, got %d", s.maxDiag)
	}
	s.quiet, _ = persistent.GetBool("quiet")
	s.timings, _ = persistent.GetBool("timings")

	colorFlag, _ := persistent.GetString("color")
	s.color = useColor(colorFlag, os.Stderr)

	return s, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	settings, err := resolveTokenizeSettings(cmd)
	if err != nil {
		return err
	}

	target := args[0]
	if target == "-" {
		return tokenizeStdin(cmd, settings)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if info.IsDir() {
		return tokenizeDirectory(cmd, target, settings)
	}
	return tokenizeFile(cmd, target, settings)
}

func tokenizeFile(cmd *cobra.Command, path string, settings tokenizeSettings) error {
	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}

	result, err := driver.Tokenize(path, settings.maxDiag, timer)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	return emitFileResult(cmd, result.FileSet, result.File, result.Tokens, result.Bag, result.Stats, timer, settings)
}

func tokenizeStdin(cmd *cobra.Command, settings tokenizeSettings) error {
	// Лексер работает по единому буферу, поэтому stdin читается целиком.
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	result := driver.TokenizeSource("<stdin>", content, settings.maxDiag)
	return emitFileResult(cmd, result.FileSet, result.File, result.Tokens, result.Bag, result.Stats, nil, settings)
}

func emitFileResult(cmd *cobra.Command, fs *source.FileSet, file *source.File, tokens []token.Token, bag *diag.Bag, stats driver.TokenStats, timer *observ.Timer, settings tokenizeSettings) error {
	printDiagnostics(cmd.ErrOrStderr(), bag, fs, settings)

	out := cmd.OutOrStdout()
	switch settings.format {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(out, tokens, fs); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(out, tokens); err != nil {
			return err
		}
	case "msgpack":
		if err := diagfmt.FormatTokensMsgpack(out, file, tokens); err != nil {
			return err
		}
	}

	if settings.stats {
		printStats(cmd.ErrOrStderr(), file.Path, stats)
	}
	if settings.timings && timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if bag.HasErrors() {
		return silentFailure(cmd)
	}
	return nil
}

func tokenizeDirectory(cmd *cobra.Command, dir string, settings tokenizeSettings) error {
	var timer *observ.Timer
	var timerIdx int
	if settings.timings {
		timer = observ.NewTimer()
		timerIdx = timer.Begin("lex")
	}

	var fs *source.FileSet
	var interner *source.Interner
	var results []driver.TokenizeDirResult
	var err error
	if settings.ui && isTerminal(os.Stdout) {
		fs, interner, results, err = runTokenizeDirWithUI(cmd, dir, settings)
	} else {
		fs, interner, results, err = driver.TokenizeDir(cmd.Context(), dir, settings.maxDiag, settings.jobs, nil)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if timer != nil {
		timer.End(timerIdx, fmt.Sprintf("%d files", len(results)))
	}

	hadErrors := false
	var total driver.TokenStats
	out := cmd.OutOrStdout()

	type dirFileJSON struct {
		Path   string                `json:"path"`
		Tokens []diagfmt.TokenOutput `json:"tokens"`
	}
	jsonFiles := make([]dirFileJSON, 0, len(results))

	for _, res := range results {
		printDiagnostics(cmd.ErrOrStderr(), res.Bag, fs, settings)
		if res.Bag.HasErrors() {
			hadErrors = true
		}
		if res.Tokens == nil {
			continue
		}

		switch settings.format {
		case "pretty":
			fmt.Fprintf(out, "%s:\n", res.Path)
			if err := diagfmt.FormatTokensPretty(out, res.Tokens, fs); err != nil {
				return err
			}
		case "json":
			jsonFiles = append(jsonFiles, dirFileJSON{
				Path:   res.Path,
				Tokens: diagfmt.BuildTokenOutputs(res.Tokens),
			})
		case "msgpack":
			if err := diagfmt.FormatTokensMsgpack(out, fs.Get(res.FileID), res.Tokens); err != nil {
				return err
			}
		}

		total.Total += res.Stats.Total
		total.LParens += res.Stats.LParens
		total.RParens += res.Stats.RParens
		total.Idents += res.Stats.Idents
		total.Strings += res.Stats.Strings
	}

	if settings.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonFiles); err != nil {
			return err
		}
	}

	if settings.stats {
		if interner != nil {
			// NoStringID зарезервирован под пустую строку
			total.UniqueIdents = interner.Len() - 1
		}
		printStats(cmd.ErrOrStderr(), dir, total)
	}
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if hadErrors {
		return silentFailure(cmd)
	}
	return nil
}

func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, settings tokenizeSettings) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	bag.Dedup()

	if settings.quiet {
		if s := diag.FormatShortDiagnostics(bag, fs, false); s != "" {
			fmt.Fprintln(w, s)
		}
		return
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:   settings.color,
		Context: 2,
	})
}

func printStats(w io.Writer, name string, stats driver.TokenStats) {
	fmt.Fprintf(w, "%s: %d tokens (%d lparen, %d rparen, %d ident, %d string",
		name, stats.Total, stats.LParens, stats.RParens, stats.Idents, stats.Strings)
	if stats.UniqueIdents > 0 {
		fmt.Fprintf(w, ", %d unique idents", stats.UniqueIdents)
	}
	fmt.Fprintln(w, ")")
}

func silentFailure(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return errHadDiagnostics
}
