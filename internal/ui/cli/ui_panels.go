package cli

import (
	"fixturecheck/internal/data/history"
	"fmt"
	"strings"
)

func renderHelp(m model) string {
	keys := "Keys: tab panel | / filter | o open source | t trend overlay | q quit"
	if m.lastErr != "" {
		keys += " | last run failed, fix the error and save to retry"
	}
	return statusStyle.Render(keys)
}

func renderFilePanel(m model) string {
	summary := m.fileList.View()
	if len(m.result.Files) == 0 {
		return summary + "\n\n" + statusStyle.Render("No files checked yet.")
	}
	cached := 0
	for _, f := range m.result.Files {
		if f.Cached {
			cached++
		}
	}
	details := strings.Join([]string{
		"Last Run",
		fmt.Sprintf("  Run: %s", m.result.RunID),
		fmt.Sprintf("  Files: %d (%d from cache)", len(m.result.Files), cached),
		fmt.Sprintf("  Duration: %s", m.result.Duration),
	}, "\n")
	return summary + "\n\n" + details
}

func renderTrendOverlay(report *history.TrendReport) string {
	if report == nil || len(report.Points) == 0 {
		return statusStyle.Render("Trend overlay unavailable (enable --history to record runs).")
	}
	last := report.Points[len(report.Points)-1]
	return strings.Join([]string{
		"Trend Overlay",
		fmt.Sprintf("  Window: %s | Runs: %d", report.Window, report.RunCount),
		fmt.Sprintf("  Diagnostics: %d (%+d) | Files: %d (%+d)", last.DiagnosticCount, last.DeltaDiagnostics, last.FileCount, last.DeltaFiles),
		fmt.Sprintf("  Per file: %.2f | Moving average: %.2f", last.DiagnosticsPerFile, last.AvgDiagnostics),
	}, "\n")
}
