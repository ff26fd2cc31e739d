package report

import (
	"fixturecheck/internal/core/app"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/ui/report/formats"
	"fmt"
	"io"
	"strings"
)

// Graph output formats.
const (
	GraphFormatDOT     = "dot"
	GraphFormatMermaid = "mermaid"
	GraphFormatTSV     = "tsv"
)

var GraphFormats = []string{GraphFormatDOT, GraphFormatMermaid, GraphFormatTSV}

// RenderGraphs writes fixture graphs in format. DOT output has one digraph
// per file, introduced by a comment naming the file.
func RenderGraphs(w io.Writer, format string, graphs []app.ModuleGraph) error {
	switch format {
	case GraphFormatDOT:
		for _, mg := range graphs {
			if _, err := fmt.Fprintf(w, "// %s\n", mg.Path); err != nil {
				return err
			}
			if err := mg.Graph.WriteDOT(w); err != nil {
				return errors.AddContext(err, errors.CtxPath, mg.Path)
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	case GraphFormatMermaid:
		modules := make([]formats.MermaidModule, 0, len(graphs))
		for _, mg := range graphs {
			modules = append(modules, formats.MermaidModule{File: mg.Path, Graph: mg.Graph, Cycles: mg.Cycles})
		}
		out, err := formats.NewMermaidGenerator(modules).Generate()
		if err != nil {
			return err
		}
		return writeString(w, out)
	case GraphFormatTSV:
		for i, mg := range graphs {
			out, err := formats.GenerateEdgesTSV(mg.Path, mg.Graph)
			if err != nil {
				return err
			}
			if i > 0 {
				out = out[strings.IndexByte(out, '\n')+1:]
			}
			if err := writeString(w, out); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.AddContext(
		errors.Newf(errors.CodeValidationError, "unknown graph format %q (valid: %s)", format, strings.Join(GraphFormats, ", ")),
		errors.CtxField, "format",
	)
}

// RenderCycles lists detected cycles, one per line.
func RenderCycles(graphs []app.ModuleGraph) string {
	var b strings.Builder
	for _, mg := range graphs {
		for _, cycle := range mg.Cycles {
			b.WriteString(fmt.Sprintf("%s: fixture cycle: %s\n", mg.Path, strings.Join(cycle, " -> ")))
		}
	}
	return b.String()
}
