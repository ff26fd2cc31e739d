// Package cli wires the fixturecheck commands on top of the app layer.
package cli

import (
	"context"
	stderrors "errors"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/shared/observability"
	"fixturecheck/internal/shared/version"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	ExitClean       = 0
	ExitDiagnostics = 1
	ExitError       = 2
)

// exitStatus ends a command with a non-zero status without printing an error.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type rootOptions struct {
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

// Run executes the command line and returns the process exit status.
func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitClean
	}
	var status *exitStatus
	if stderrors.As(err, &status) {
		return status.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return ExitError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &rootOptions{stdout: stdout, stderr: stderr}
	check := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "fixturecheck [paths...]",
		Short: "Check that pytest fixture types match the tests using them",
		Long: `fixturecheck statically compares the return annotation of every
@pytest.fixture() with the annotations of the test parameters that consume it.

Running fixturecheck without a subcommand is the same as "fixturecheck check".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(root.stderr, "", root.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, check, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "config file (default is ./"+config.DefaultConfigFile+" when present)")
	cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "verbose output")
	check.addFlags(cmd)

	cmd.AddCommand(
		newCheckCmd(root),
		newWatchCmd(root),
		newGraphCmd(root),
		newHistoryCmd(root),
		newVersionCmd(root),
	)
	return cmd
}

// loadConfig reads the --config file, or the default file when present.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.LoadOrDefault("")
}

// startTracing installs the OTLP exporter when tracing is enabled. The
// returned function flushes it.
func startTracing(ctx context.Context, cfg *config.Config) func() {
	if !cfg.Observability.EnableTracing {
		return func() {}
	}
	shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, version.Version)
	if err != nil {
		slog.Warn("tracing disabled", "endpoint", cfg.Observability.OTLPEndpoint, "error", err)
		return func() {}
	}
	slog.Debug("tracing enabled", "endpoint", cfg.Observability.OTLPEndpoint)
	return func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}
}

// configureLogging installs the default slog logger. A non-empty logPath
// redirects logs to that file, which the terminal UI needs.
func configureLogging(out io.Writer, logPath string, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	closeFn := func() {}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(out, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
			fmt.Fprintf(out, "warning: refusing to write logs to symlink path %s\n", logPath)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err == nil {
				out = f
				closeFn = func() { _ = f.Close() }
			} else {
				fmt.Fprintf(out, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "fixturecheck", "fixturecheck.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "fixturecheck", "fixturecheck.log")
	}
	return filepath.Join(os.TempDir(), "fixturecheck.log")
}
