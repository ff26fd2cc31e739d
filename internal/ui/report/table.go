package report

import (
	"fixturecheck/internal/engine/checker"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Padding(0, 1)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func kindStyle(kind checker.Kind) lipgloss.Style {
	switch kind {
	case checker.KindMissingArgumentType, checker.KindFixtureDoesNotExist:
		return warnStyle
	default:
		return errorStyle
	}
}

// RenderTable draws diagnostics as a bordered table followed by a summary.
func RenderTable(diags []checker.Diagnostic) string {
	if len(diags) == 0 {
		return successStyle.Render(CleanMessage) + "\n"
	}

	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		rows = append(rows, []string{
			d.File,
			strconv.Itoa(d.Line),
			string(d.Kind),
			d.Subject(),
			d.Message(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("FILE", "LINE", "KIND", "FUNCTION", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(diags) {
				return kindStyle(diags[row].Kind)
			}
			return cellStyle
		})

	return t.String() + "\n" + summaryLine(diags)
}
