package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/patchkit/internal/patch"
	"github.com/abdul-hamid-achik/patchkit/internal/ui/highlight"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Green  = "\033[32m"
	Yellow = "\033[33m"
)

// OutputHandler handles console output with colors
type OutputHandler struct {
	useColors   bool
	highlighter *highlight.Highlighter
}

// NewOutputHandler creates a new output handler. color and
// highlightDiffs come from configuration; both are forced off when
// stdout is not a terminal or NO_COLOR is set.
func NewOutputHandler(color, highlightDiffs bool, theme string) *OutputHandler {
	useColors := color

	// Check if output is a terminal
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		useColors = false
	}

	// Check NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		useColors = false
	}

	return &OutputHandler{
		useColors:   useColors,
		highlighter: highlight.New(useColors && highlightDiffs, theme),
	}
}

// color applies color if colors are enabled
func (o *OutputHandler) color(color, text string) string {
	if !o.useColors {
		return text
	}
	return color + text + Reset
}

// Report prints the apply report. On terminals each line is styled
// and a totals line is appended; piped output is the plain report
// exactly, empty for zero changes.
func (o *OutputHandler) Report(result *patch.Result) {
	if !o.useColors {
		fmt.Print(result.String())
		return
	}
	fmt.Print(RenderReport(result))
	fmt.Println(RenderSummary(result))
}

// Diff prints a unified diff preview, highlighted on terminals.
func (o *OutputHandler) Diff(diff string) {
	if diff == "" {
		return
	}
	fmt.Print(o.highlighter.HighlightDiff(diff))
	if !strings.HasSuffix(diff, "\n") {
		fmt.Println()
	}
}

// Warning outputs a warning message
func (o *OutputHandler) Warning(msg string) {
	prefix := o.color(Yellow+Bold, "Warning: ")
	fmt.Fprintln(os.Stderr, prefix+msg)
}

// Success outputs a success message
func (o *OutputHandler) Success(msg string) {
	prefix := o.color(Green+Bold, "✓ ")
	fmt.Println(prefix + msg)
}
