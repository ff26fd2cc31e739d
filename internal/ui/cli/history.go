package cli

import (
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/ui/report"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type historyOptions struct {
	since   time.Duration
	limit   int
	window  time.Duration
	format  string
	project string
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs and their diagnostic trend",
		Long: `History reads the runs recorded with --history (or history.enabled) and
prints them oldest first. The json and tsv formats add per-run deltas and a
moving average of diagnostics over --window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(root, opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.since, "since", 0, "only show runs newer than this (e.g. 72h); 0 shows all")
	flags.IntVar(&opts.limit, "limit", 50, "maximum number of runs (most recent kept)")
	flags.DurationVar(&opts.window, "window", 24*time.Hour, "moving average window")
	flags.StringVarP(&opts.format, "format", "f", "table", "output format: table, json, tsv")
	flags.StringVar(&opts.project, "project", "", "project key (default from history.project)")
	return cmd
}

func runHistory(root *rootOptions, opts *historyOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	switch format {
	case "table", "json", "tsv":
	default:
		return errors.AddContext(
			errors.Newf(errors.CodeValidationError, "unknown history format %q (valid: table, json, tsv)", opts.format),
			errors.CtxField, "format",
		)
	}
	if opts.limit < 0 {
		return errors.AddContext(errors.New(errors.CodeValidationError, "limit must be >= 0"), errors.CtxField, "limit")
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	project := opts.project
	if project == "" {
		project = cfg.History.Project
	}

	store, err := history.Open(cfg.History.Path, cfg.History.BusyTimeout)
	if err != nil {
		return err
	}
	defer store.Close()

	var since time.Time
	if opts.since > 0 {
		since = time.Now().UTC().Add(-opts.since)
	}
	snapshots, err := store.LoadSnapshots(project, since, opts.limit)
	if err != nil {
		return err
	}

	if format == "table" {
		_, err := fmt.Fprint(root.stdout, report.RenderHistoryTable(snapshots))
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(root.stderr, "No runs recorded.")
		return nil
	}

	trend, err := history.BuildTrendReport(snapshots, opts.window)
	if err != nil {
		return err
	}
	var data []byte
	if format == "json" {
		data, err = report.RenderTrendJSON(trend)
		data = append(data, '\n')
	} else {
		data, err = report.RenderTrendTSV(trend)
	}
	if err != nil {
		return err
	}
	_, err = root.stdout.Write(data)
	return err
}
