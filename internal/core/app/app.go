package app

import (
	"context"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/engine/parser"
	"fixturecheck/internal/shared/observability"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Config   *config.Config
	parser   ports.ModuleParser
	checker  *checker.Checker
	cache    *reportCache
	history  ports.HistoryStore
	progress ports.ProgressReporter
	workers  int
}

type Option func(*App)

// WithParser replaces the tree-sitter parser.
func WithParser(p ports.ModuleParser) Option {
	return func(a *App) { a.parser = p }
}

// WithHistory records a snapshot of every completed Check.
func WithHistory(store ports.HistoryStore) Option {
	return func(a *App) { a.history = store }
}

func WithProgress(p ports.ProgressReporter) Option {
	return func(a *App) { a.progress = p }
}

var _ ports.CheckService = (*App)(nil)

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}

	cache, err := newReportCache(cfg.Cache.Entries, cfg.Cache.TTL)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxOperation, "build_cache")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	chk := checker.New(checker.Options{
		StrictFixtures: cfg.Checks.StrictFixtures,
		KnownFixtures:  cfg.Checks.KnownFixtures,
	})
	a := &App{
		Config:   cfg,
		checker:  chk,
		cache:    cache,
		progress: noopProgress{},
		workers:  workers,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.parser == nil {
		a.parser = parser.NewParser(parser.NewGrammarLoader())
	}
	return a, nil
}

func (a *App) Close() {
	if a == nil || a.cache == nil {
		return
	}
	a.cache.Close()
}

// Check discovers files under req.Paths, checks them and records history.
// Diagnostics in the result are sorted.
func (a *App) Check(ctx context.Context, req ports.CheckRequest) (ports.CheckResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Check", trace.WithAttributes(
		attribute.Int("paths", len(req.Paths)),
		attribute.Bool("recursive", req.Recursive),
	))
	defer span.End()

	started := time.Now()
	files, warnings, err := a.Discover(ctx, req)
	if err != nil {
		span.RecordError(err)
		return ports.CheckResult{}, errors.AddContext(err, errors.CtxOperation, "discover")
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	reports, err := a.CheckFiles(ctx, files)
	if err != nil {
		span.RecordError(err)
		return ports.CheckResult{}, err
	}

	result := ports.CheckResult{
		RunID:    history.NewRunID(),
		Files:    reports,
		Warnings: warnings,
	}
	for _, r := range reports {
		result.Diagnostics = append(result.Diagnostics, r.Diagnostics...)
	}
	checker.Sort(result.Diagnostics)
	result.Duration = time.Since(started)

	observability.CheckDuration.WithLabelValues("run").Observe(result.Duration.Seconds())
	observability.LastRunDiagnostics.Set(float64(len(result.Diagnostics)))
	observability.CacheEntries.Set(float64(a.cache.Len()))
	span.SetAttributes(
		attribute.Int("files", len(reports)),
		attribute.Int("diagnostics", len(result.Diagnostics)),
	)

	a.recordHistory(result)
	slog.Debug("check complete",
		"files", len(reports),
		"diagnostics", len(result.Diagnostics),
		"duration", result.Duration,
	)
	return result, nil
}

func (a *App) recordHistory(result ports.CheckResult) {
	if a.history == nil {
		return
	}
	snapshot := SnapshotFromResult(result)
	if err := a.history.SaveSnapshot(a.Config.History.Project, snapshot); err != nil {
		observability.HistoryWritesTotal.WithLabelValues("error").Inc()
		slog.Warn("failed to record run history", "error", err)
		return
	}
	observability.HistoryWritesTotal.WithLabelValues("ok").Inc()
}

// SnapshotFromResult summarizes a run for the history store.
func SnapshotFromResult(result ports.CheckResult) history.Snapshot {
	counts := checker.CountByKind(result.Diagnostics)
	return history.Snapshot{
		SchemaVersion:     history.SchemaVersion,
		RunID:             result.RunID,
		Timestamp:         time.Now().UTC(),
		DurationMS:        result.Duration.Milliseconds(),
		FileCount:         len(result.Files),
		DiagnosticCount:   len(result.Diagnostics),
		UnparsableCount:   counts[checker.KindUnparsableFile],
		MissingReturn:     counts[checker.KindFixtureMissingReturnType],
		MissingArgument:   counts[checker.KindMissingArgumentType],
		IncorrectArgument: counts[checker.KindIncorrectArgumentType],
		UnknownFixture:    counts[checker.KindFixtureDoesNotExist],
	}
}

type noopProgress struct{}

func (noopProgress) OnStart(int)          {}
func (noopProgress) OnFileChecked(string) {}
func (noopProgress) OnComplete()          {}
