package history

import (
	"time"

	"github.com/google/uuid"
)

const SchemaVersion = 1

// Snapshot summarizes one check run.
type Snapshot struct {
	SchemaVersion     int       `json:"schema_version"`
	RunID             string    `json:"run_id"`
	ProjectKey        string    `json:"project_key"`
	Timestamp         time.Time `json:"timestamp"`
	DurationMS        int64     `json:"duration_ms"`
	FileCount         int       `json:"file_count"`
	DiagnosticCount   int       `json:"diagnostic_count"`
	UnparsableCount   int       `json:"unparsable_count"`
	MissingReturn     int       `json:"missing_return_count"`
	MissingArgument   int       `json:"missing_argument_count"`
	IncorrectArgument int       `json:"incorrect_argument_count"`
	UnknownFixture    int       `json:"unknown_fixture_count"`
}

// NewRunID returns a fresh identifier for a snapshot.
func NewRunID() string {
	return uuid.NewString()
}

type TrendPoint struct {
	RunID              string    `json:"run_id"`
	Timestamp          time.Time `json:"timestamp"`
	FileCount          int       `json:"file_count"`
	DiagnosticCount    int       `json:"diagnostic_count"`
	DeltaFiles         int       `json:"delta_files"`
	DeltaDiagnostics   int       `json:"delta_diagnostics"`
	DiagnosticsPerFile float64   `json:"diagnostics_per_file"`
	AvgDiagnostics     float64   `json:"avg_diagnostics"`
	WindowHours        float64   `json:"window_hours"`
}

type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	RunCount      int          `json:"run_count"`
	Points        []TrendPoint `json:"points"`
}
