package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wisp/internal/diag"
	"wisp/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for i := range bag.Items() {
		prettyOne(w, &bag.Items()[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	if !fs.Has(d.Primary.File) {
		// Диагностика без привязки к файлу: только заголовок, без контекста
		fmt.Fprintf(w, "%s %s: %s\n",
			severityString(d.Severity, opts.Color), d.Code.ID(), d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := file.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		severityString(d.Severity, opts.Color), d.Code.ID(), d.Message)

	writeContext(w, file, start, end, opts)

	for _, note := range d.Notes {
		if !fs.Has(note.Span.File) {
			continue
		}
		nstart, _ := fs.Resolve(note.Span)
		label := "note"
		if opts.Color {
			label = noteColor.Sprint(label)
		}
		fmt.Fprintf(w, "  %s: %d:%d: %s\n", label, nstart.Line, nstart.Col, note.Msg)
	}
}

// writeContext печатает строку с ошибкой (плюс Context строк перед ней)
// и каретку под спаном. Ширина подчёркивания считается в display-колонках,
// чтобы табы и широкие руны не сбивали выравнивание.
func writeContext(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts) {
	ctx := opts.Context
	if ctx < 0 {
		ctx = 0
	}
	first := start.Line
	if first > uint32(ctx) {
		first -= uint32(ctx)
	} else {
		first = 1
	}

	for line := first; line < start.Line; line++ {
		fmt.Fprintf(w, "  %4d | %s\n", line, file.GetLine(line))
	}

	lineText := file.GetLine(start.Line)
	fmt.Fprintf(w, "  %4d | %s\n", start.Line, lineText)

	runes := []rune(lineText)
	startCol := int(start.Col) - 1
	if startCol > len(runes) {
		startCol = len(runes)
	}
	pad := runewidth.StringWidth(string(runes[:startCol]))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		endCol := int(end.Col) - 1
		if endCol > len(runes) {
			endCol = len(runes)
		}
		if underlined := runewidth.StringWidth(string(runes[startCol:endCol])); underlined > 0 {
			width = underlined
		}
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = errorColor.Sprint(marker)
	}
	fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", pad), marker)
}

func severityString(sev diag.Severity, colored bool) string {
	s := sev.String()
	if !colored {
		return s
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(s)
	case diag.SevWarning:
		return warningColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}
