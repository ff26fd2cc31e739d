package app

import (
	"context"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/core/watcher"
	"fixturecheck/internal/shared/util"
	"log/slog"
)

// Watch runs an initial check and re-checks every time a watched Python file
// changes, until ctx is done. onResult receives every run, including failed
// ones.
func (a *App) Watch(ctx context.Context, req ports.CheckRequest, onResult func(ports.CheckResult, error)) error {
	paths := req.Paths
	if len(paths) == 0 {
		paths = a.Config.Paths
	}
	req.Paths = paths
	req.Recursive = true

	rerun := func() {
		result, err := a.Check(ctx, req)
		onResult(result, err)
	}

	w, err := watcher.NewWatcher(watcher.Options{
		Debounce:     a.Config.Watch.Debounce,
		Include:      a.Config.Discovery.Include,
		ExcludeDirs:  a.Config.Discovery.ExcludeDirs,
		ExcludeFiles: a.Config.Discovery.ExcludeFiles,
		Limiter:      util.NewLimiter(a.Config.Watch.Rate, a.Config.Watch.Burst),
	}, func(changed []string) {
		if ctx.Err() != nil {
			return
		}
		slog.Debug("files changed", "count", len(changed), "paths", changed)
		rerun()
	})
	if err != nil {
		return err
	}
	defer w.Close()

	rerun()
	if err := w.Watch(paths); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
