package cli

import (
	"context"
	"fixturecheck/internal/core/app"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/ui/report"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	ui          bool
	metricsAddr string
	format      string
	strict      bool
	workers     int
	history     bool
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-check fixture types whenever a Python file changes",
		Long: `Watch runs a check, then re-checks every time a watched Python file is
written. Directories are always watched recursively. Unchanged files are
served from the result cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, root, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.ui, "ui", false, "show results in a terminal UI")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address (e.g. :9464)")
	flags.StringVarP(&opts.format, "format", "f", config.FormatText, "output format when not using --ui")
	flags.BoolVar(&opts.strict, "strict", false, "report annotated parameters that name no fixture")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "number of files checked concurrently (0 = one per CPU)")
	flags.BoolVar(&opts.history, "history", false, "record every run in the history database")
	return cmd
}

func (o *watchOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = o.workers
	}
	if o.strict {
		cfg.Checks.StrictFixtures = true
	}
	if o.history {
		cfg.History.Enabled = true
	}
	if o.metricsAddr == "" && cfg.Observability.Enabled {
		o.metricsAddr = fmt.Sprintf(":%d", cfg.Observability.Port)
	}
	return config.Validate(cfg)
}

func runWatch(cmd *cobra.Command, root *rootOptions, opts *watchOptions, args []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}

	if opts.ui {
		closeLog := configureLogging(root.stderr, resolveLogPath(), root.verbose)
		defer closeLog()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopTracing := startTracing(ctx, cfg)
	defer stopTracing()

	health := newHealthState()
	if opts.metricsAddr != "" {
		server := NewObservabilityServer(opts.metricsAddr, health)
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				slog.Warn("observability server shutdown failed", "error", err)
			}
		}()
	}

	var (
		appOpts []app.Option
		trend   *history.TrendReport
	)
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path, cfg.History.BusyTimeout)
		if err != nil {
			return err
		}
		defer store.Close()
		appOpts = append(appOpts, app.WithHistory(store))
		trend = loadTrend(store, cfg.History.Project)
	}

	a, err := app.New(cfg, appOpts...)
	if err != nil {
		return err
	}
	defer a.Close()

	req := ports.CheckRequest{Paths: args, Recursive: true}
	if opts.ui {
		return runUI(ctx, a, req, health, trend)
	}

	renderer, err := report.New(opts.format)
	if err != nil {
		return err
	}
	slog.Info("watching for changes", "paths", len(req.Paths))
	return a.Watch(ctx, req, func(result ports.CheckResult, err error) {
		health.Record(result, err)
		if err != nil {
			slog.Error("check failed", "error", err)
			return
		}
		fmt.Fprintf(root.stdout, "[%s] checked %d files\n", time.Now().Format("15:04:05"), len(result.Files))
		if err := renderer.Render(root.stdout, result); err != nil {
			slog.Error("render failed", "error", err)
		}
	})
}

// loadTrend summarizes the last day of runs for the UI overlay.
func loadTrend(store *history.Store, project string) *history.TrendReport {
	window := 24 * time.Hour
	snapshots, err := store.LoadSnapshots(project, time.Now().Add(-window), 0)
	if err != nil {
		slog.Warn("failed to load run history", "error", err)
		return nil
	}
	if len(snapshots) == 0 {
		return nil
	}
	trend, err := history.BuildTrendReport(snapshots, window)
	if err != nil {
		slog.Warn("failed to build trend report", "error", err)
		return nil
	}
	return &trend
}
