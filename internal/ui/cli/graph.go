package cli

import (
	"fixturecheck/internal/core/app"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/ui/report"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

type graphOptions struct {
	recursive bool
	format    string
}

func newGraphCmd(root *rootOptions) *cobra.Command {
	opts := &graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph [paths...]",
		Short: "Print the fixture dependency graph of each file",
		Long: `Graph draws, per file, an edge from every fixture or test to each fixture it
requests. Dependency cycles are listed on stderr and make the command exit
with status 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, root, opts, args)
		},
	}
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "descend into directories")
	cmd.Flags().StringVarP(&opts.format, "format", "f", report.GraphFormatDOT, "graph format: "+strings.Join(report.GraphFormats, ", "))
	return cmd
}

func runGraph(cmd *cobra.Command, root *rootOptions, opts *graphOptions, args []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.recursive {
		cfg.Discovery.Recursive = true
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	graphs, err := a.BuildGraphs(cmd.Context(), ports.CheckRequest{Paths: args, Recursive: cfg.Discovery.Recursive})
	if err != nil {
		return err
	}
	if err := report.RenderGraphs(root.stdout, strings.ToLower(opts.format), graphs); err != nil {
		return err
	}

	cycles := 0
	for _, g := range graphs {
		cycles += len(g.Cycles)
	}
	if cycles == 0 {
		return nil
	}
	slog.Warn("fixture dependency cycles detected", "count", cycles)
	fmt.Fprint(root.stderr, report.RenderCycles(graphs))
	return &exitStatus{code: ExitDiagnostics}
}
