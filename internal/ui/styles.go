package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdul-hamid-achik/patchkit/internal/patch"
)

// Colors
var (
	addColor    = lipgloss.Color("82")  // Green
	updateColor = lipgloss.Color("214") // Orange/Yellow
	deleteColor = lipgloss.Color("196") // Red
	dimColor    = lipgloss.Color("240") // Gray
)

// Styles
var (
	addOpStyle = lipgloss.NewStyle().
			Foreground(addColor).
			Bold(true)

	updateOpStyle = lipgloss.NewStyle().
			Foreground(updateColor).
			Bold(true)

	deleteOpStyle = lipgloss.NewStyle().
			Foreground(deleteColor).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	summaryStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)
)

// opStyle returns the style for an operation tag
func opStyle(op patch.Op) lipgloss.Style {
	switch op {
	case patch.OpAdd:
		return addOpStyle
	case patch.OpDelete:
		return deleteOpStyle
	default:
		return updateOpStyle
	}
}

// RenderChange renders one report line, matching the plain report
// layout with the operation tag and counts styled.
func RenderChange(c patch.Change) string {
	return fmt.Sprintf("- %s: %s %s",
		opStyle(c.Op).Render(c.Op.String()),
		c.Path,
		countStyle.Render(fmt.Sprintf("(+%d -%d)", c.Added, c.Removed)))
}

// RenderReport renders the styled report, one line per change
func RenderReport(result *patch.Result) string {
	if len(result.Changes) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range result.Changes {
		sb.WriteString(RenderChange(c))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderSummary renders the totals line shown under the report
func RenderSummary(result *patch.Result) string {
	n := len(result.Changes)
	if n == 0 {
		return summaryStyle.Render("no changes")
	}
	noun := "files"
	if n == 1 {
		noun = "file"
	}
	return summaryStyle.Render(fmt.Sprintf("%d %s changed, +%d -%d",
		n, noun, result.TotalAdded(), result.TotalRemoved()))
}
