package report

import (
	"fixturecheck/internal/data/history"
	"strings"
	"testing"
	"time"
)

func TestRenderTrendTSV(t *testing.T) {
	report := history.TrendReport{
		SchemaVersion: 1,
		Since:         time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
		Until:         time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
		Window:        "24h0m0s",
		RunCount:      1,
		Points: []history.TrendPoint{
			{
				RunID:              "abc123",
				Timestamp:          time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
				FileCount:          15,
				DiagnosticCount:    3,
				DeltaFiles:         1,
				DeltaDiagnostics:   -2,
				DiagnosticsPerFile: 0.2,
				AvgDiagnostics:     4,
				WindowHours:        24,
			},
		},
	}

	out, err := RenderTrendTSV(report)
	if err != nil {
		t.Fatalf("render tsv: %v", err)
	}

	body := string(out)
	if !strings.Contains(body, "Timestamp\tRunID\tFiles\tDiagnostics") {
		t.Fatalf("missing header in output: %s", body)
	}
	if !strings.Contains(body, "2026-02-13T00:00:00Z\tabc123\t15\t3\t1\t-2\t0.20\t4.00\t24.00") {
		t.Fatalf("missing row values in output: %s", body)
	}
}

func TestRenderTrendJSON(t *testing.T) {
	report := history.TrendReport{
		SchemaVersion: 1,
		RunCount:      2,
	}

	out, err := RenderTrendJSON(report)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(string(out), "\"run_count\": 2") {
		t.Fatalf("missing run_count in json: %s", string(out))
	}
}

func TestRenderHistoryTable(t *testing.T) {
	if got := RenderHistoryTable(nil); got != "No runs recorded.\n" {
		t.Fatalf("unexpected empty output %q", got)
	}

	out := RenderHistoryTable([]history.Snapshot{{
		RunID:           "0123456789abcdef",
		Timestamp:       time.Date(2026, 2, 13, 9, 30, 0, 0, time.UTC),
		FileCount:       4,
		DiagnosticCount: 2,
		MissingArgument: 2,
		DurationMS:      17,
	}})
	for _, want := range []string{"TIME", "WRONG TYPE", "2026-02-13T09:30:00Z", "01234567"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Errorf("run id should be shortened\n%s", out)
	}
}
