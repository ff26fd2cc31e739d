package report

import (
	"encoding/json"
	"fixturecheck/internal/data/history"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const trendTimeLayout = "2006-01-02T15:04:05Z07:00"

func RenderTrendTSV(report history.TrendReport) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRunID\tFiles\tDiagnostics\tDeltaFiles\tDeltaDiagnostics\tDiagnosticsPerFile\tAvgDiagnostics\tWindowHours\n")
	for _, point := range report.Points {
		buf.WriteString(fmt.Sprintf(
			"%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
			point.Timestamp.Format(trendTimeLayout),
			point.RunID,
			point.FileCount,
			point.DiagnosticCount,
			point.DeltaFiles,
			point.DeltaDiagnostics,
			point.DiagnosticsPerFile,
			point.AvgDiagnostics,
			point.WindowHours,
		))
	}

	return []byte(buf.String()), nil
}

func RenderTrendJSON(report history.TrendReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// RenderHistoryTable lists recorded runs, oldest first.
func RenderHistoryTable(snapshots []history.Snapshot) string {
	if len(snapshots) == 0 {
		return "No runs recorded.\n"
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.Timestamp.Format(trendTimeLayout),
			shortRunID(s.RunID),
			strconv.Itoa(s.FileCount),
			strconv.Itoa(s.DiagnosticCount),
			strconv.Itoa(s.UnparsableCount),
			strconv.Itoa(s.MissingReturn),
			strconv.Itoa(s.MissingArgument),
			strconv.Itoa(s.IncorrectArgument),
			strconv.Itoa(s.UnknownFixture),
			strconv.FormatInt(s.DurationMS, 10),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("TIME", "RUN", "FILES", "DIAGS", "UNPARSABLE", "NO RETURN", "NO ARG TYPE", "WRONG TYPE", "UNKNOWN", "MS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String() + "\n"
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
