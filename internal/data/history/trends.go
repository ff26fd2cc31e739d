package history

import (
	"fmt"
	"math"
	"time"
)

// BuildTrendReport derives per-run deltas and a moving average of the
// diagnostic count over window. snapshots must be sorted oldest first.
func BuildTrendReport(snapshots []Snapshot, window time.Duration) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, fmt.Errorf("no snapshots available")
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			RunID:           current.RunID,
			Timestamp:       current.Timestamp,
			FileCount:       current.FileCount,
			DiagnosticCount: current.DiagnosticCount,
		}
		if current.FileCount > 0 {
			point.DiagnosticsPerFile = round2(float64(current.DiagnosticCount) / float64(current.FileCount))
		}
		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFiles = current.FileCount - prev.FileCount
			point.DeltaDiagnostics = current.DiagnosticCount - prev.DiagnosticCount
		}
		point.AvgDiagnostics = round2(movingAverage(snapshots, i, window))
		point.WindowHours = round2(window.Hours())
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		Window:        window.String(),
		RunCount:      len(points),
		Points:        points,
	}, nil
}

func movingAverage(snapshots []Snapshot, index int, window time.Duration) float64 {
	if window <= 0 {
		return float64(snapshots[index].DiagnosticCount)
	}

	cutoff := snapshots[index].Timestamp.Add(-window)
	total := 0
	count := 0
	for i := index; i >= 0; i-- {
		if snapshots[i].Timestamp.Before(cutoff) {
			break
		}
		total += snapshots[i].DiagnosticCount
		count++
	}
	return float64(total) / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
