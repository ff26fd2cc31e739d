package cli

import (
	"bytes"
	"fixturecheck/internal/core/app"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/shared/util"
	"fixturecheck/internal/ui/report"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type checkOptions struct {
	recursive bool
	format    string
	output    string
	strict    bool
	workers   int
	quiet     bool
	history   bool
}

func (o *checkOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "descend into directories")
	flags.StringVarP(&o.format, "format", "f", config.FormatTable, "output format: "+strings.Join(config.OutputFormats, ", "))
	flags.StringVarP(&o.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVar(&o.strict, "strict", false, "report annotated parameters that name no fixture")
	flags.IntVarP(&o.workers, "workers", "w", 0, "number of files checked concurrently (0 = one per CPU)")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "disable the progress bar")
	flags.BoolVar(&o.history, "history", false, "record this run in the history database")
}

// apply overrides cfg with the flags the user set explicitly.
func (o *checkOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(o.format))
	}
	if flags.Changed("output") {
		cfg.Output.File = o.output
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if o.recursive {
		cfg.Discovery.Recursive = true
	}
	if o.strict {
		cfg.Checks.StrictFixtures = true
	}
	if o.history {
		cfg.History.Enabled = true
	}
	return config.Validate(cfg)
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check fixture types once",
		Long: `Check parses every given Python file and reports fixtures without a return
type, test parameters without an annotation and parameters whose annotation
differs from the fixture's return type.

Exit status is 0 when no problems were found, 1 when any diagnostic was
reported and 2 when the check could not run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions, args []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	stopTracing := startTracing(ctx, cfg)
	defer stopTracing()

	renderer, err := report.New(cfg.Output.Format)
	if err != nil {
		return err
	}
	if wd, err := os.Getwd(); err == nil {
		renderer.ProjectRoot = wd
	}

	appOpts := []app.Option{app.WithProgress(newProgressReporter(root.stderr, opts.quiet))}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path, cfg.History.BusyTimeout)
		if err != nil {
			return err
		}
		defer store.Close()
		appOpts = append(appOpts, app.WithHistory(store))
	}

	a, err := app.New(cfg, appOpts...)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Check(ctx, ports.CheckRequest{Paths: args, Recursive: cfg.Discovery.Recursive})
	if err != nil {
		return err
	}

	if err := writeReport(root, renderer, cfg.Output.File, result); err != nil {
		return err
	}
	if !result.Clean() {
		return &exitStatus{code: ExitDiagnostics}
	}
	return nil
}

func writeReport(root *rootOptions, renderer *report.Renderer, path string, result ports.CheckResult) error {
	if path == "" {
		return renderer.Render(root.stdout, result)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result); err != nil {
		return err
	}
	if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	slog.Info("report written", "path", path, "format", renderer.Format, "diagnostics", len(result.Diagnostics))
	return nil
}
