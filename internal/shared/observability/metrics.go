package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fixturecheck_parsing_seconds",
		Help:    "Time spent parsing a Python file.",
		Buckets: prometheus.DefBuckets,
	})

	CheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fixturecheck_check_seconds",
		Help:    "Time spent on checking tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})

	FilesCheckedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecheck_files_checked_total",
		Help: "Total number of files checked.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixturecheck_diagnostics_total",
		Help: "Total number of diagnostics emitted, by kind.",
	}, []string{"kind"})

	LastRunDiagnostics = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fixturecheck_last_run_diagnostics",
		Help: "Number of diagnostics produced by the most recent run.",
	})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecheck_cache_hits_total",
		Help: "Total number of file reports served from the result cache.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecheck_cache_misses_total",
		Help: "Total number of file reports computed because the cache had no entry.",
	})

	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fixturecheck_cache_entries",
		Help: "Number of file reports held by the result cache after the most recent run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecheck_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecheck_watcher_throttled_total",
		Help: "Total number of change batches delayed by the re-check rate limiter.",
	})

	HistoryWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixturecheck_history_writes_total",
		Help: "Total number of run snapshots persisted, by result.",
	}, []string{"result"})
)
