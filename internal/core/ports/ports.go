package ports

import (
	"context"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/engine/parser"
	"io"
	"time"
)

// ModuleParser abstracts turning Python source into a parsed module.
type ModuleParser interface {
	ParseFile(path string, content []byte) (*parser.Module, error)
	ParseSource(path string, content []byte) (*parser.Module, error)
	IsSupportedPath(path string) bool
}

// HistoryStore abstracts snapshot persistence for trend workflows.
type HistoryStore interface {
	SaveSnapshot(projectKey string, snapshot history.Snapshot) error
	LoadSnapshots(projectKey string, since time.Time, limit int) ([]history.Snapshot, error)
}

// ProgressReporter receives per-file progress while a check runs.
type ProgressReporter interface {
	OnStart(total int)
	OnFileChecked(path string)
	OnComplete()
}

// FileReport is the outcome of checking one file.
type FileReport struct {
	Path        string
	Diagnostics []checker.Diagnostic
	Cached      bool
}

// CheckRequest describes one check invocation.
type CheckRequest struct {
	Paths     []string
	Recursive bool
}

// CheckResult aggregates a finished check run.
type CheckResult struct {
	RunID       string
	Files       []FileReport
	Diagnostics []checker.Diagnostic
	Warnings    []string
	Duration    time.Duration
}

// Clean reports whether the run produced no diagnostics.
func (r CheckResult) Clean() bool {
	return len(r.Diagnostics) == 0
}

// Reporter renders a finished run to a writer.
type Reporter interface {
	Render(w io.Writer, result CheckResult) error
}

// CheckService is the driving port used by the CLI and watch mode.
type CheckService interface {
	Discover(ctx context.Context, req CheckRequest) ([]string, []string, error)
	Check(ctx context.Context, req CheckRequest) (CheckResult, error)
	CheckFiles(ctx context.Context, files []string) ([]FileReport, error)
}
