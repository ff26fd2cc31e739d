package app

import (
	"context"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/shared/observability"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// CheckFiles checks files on a bounded pool. Reports keep the input order.
// The first operational error cancels remaining work and is returned.
func (a *App) CheckFiles(ctx context.Context, files []string) ([]ports.FileReport, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.CheckFiles")
	defer span.End()
	span.SetAttributes(attribute.Int("files", len(files)))

	reports := make([]ports.FileReport, len(files))
	if len(files) == 0 {
		return reports, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := a.workers
	if workers > len(files) {
		workers = len(files)
	}

	a.progress.OnStart(len(files))
	defer a.progress.OnComplete()

	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report, err := a.checkFile(ctx, files[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				reports[i] = report
				a.progress.OnFileChecked(files[i])
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		span.RecordError(firstErr)
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (a *App) checkFile(ctx context.Context, path string) (ports.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return ports.FileReport{}, err
	}
	_, span := observability.Tracer.Start(ctx, "app.checkFile")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	content, err := os.ReadFile(path)
	if err != nil {
		return ports.FileReport{}, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read file"), errors.CtxPath, path)
	}

	key := cacheKey(path, content)
	if diags, ok := a.cache.Get(key); ok {
		observability.FilesCheckedTotal.Inc()
		return ports.FileReport{Path: path, Diagnostics: nonNil(diags), Cached: true}, nil
	}

	started := time.Now()
	mod, err := a.parser.ParseSource(path, content)
	observability.ParsingDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return ports.FileReport{}, err
	}

	started = time.Now()
	diags := a.checker.CheckModule(mod)
	observability.CheckDuration.WithLabelValues("file").Observe(time.Since(started).Seconds())
	observability.FilesCheckedTotal.Inc()
	for _, d := range diags {
		observability.DiagnosticsTotal.WithLabelValues(string(d.Kind)).Inc()
	}

	if mod.Unparsable {
		slog.Debug("file has syntax errors", "path", path, "line", mod.ErrorAt.Line)
	}
	a.cache.Set(key, diags)
	span.SetAttributes(attribute.Int("diagnostics", len(diags)))
	return ports.FileReport{Path: path, Diagnostics: nonNil(diags)}, nil
}

func nonNil(diags []checker.Diagnostic) []checker.Diagnostic {
	if diags == nil {
		return []checker.Diagnostic{}
	}
	return diags
}
