package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/term"

	"wisp/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wisp",
		Short: "Wisp tokenizer and toolchain",
		Long:  `Wisp turns parenthesized source files into token streams with rich diagnostics`,
	}

	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor решает, красить ли вывод: явный флаг, затем NO_COLOR, затем tty.
func useColor(colorFlag string, f *os.File) bool {
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	}
	if env.Has("NO_COLOR") {
		return false
	}
	return isTerminal(f)
}
