package app

import (
	"context"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/engine/fixtures"
	"fixturecheck/internal/engine/graph"
	"os"
)

// ModuleGraph is the fixture dependency graph of one file.
type ModuleGraph struct {
	Path   string
	Graph  *graph.FixtureGraph
	Cycles [][]string
}

// BuildGraphs discovers files like Check does and builds a fixture graph for
// each parsable file. Unparsable files are skipped.
func (a *App) BuildGraphs(ctx context.Context, req ports.CheckRequest) ([]ModuleGraph, error) {
	files, _, err := a.Discover(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]ModuleGraph, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read file"), errors.CtxPath, path)
		}
		mod, err := a.parser.ParseSource(path, content)
		if err != nil {
			return nil, err
		}
		if mod.Unparsable {
			continue
		}

		g, err := graph.Build(fixtures.Classify(mod.Functions))
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxPath, path)
		}
		cycles, err := g.DetectCycles()
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxPath, path)
		}
		out = append(out, ModuleGraph{Path: path, Graph: g, Cycles: cycles})
	}
	return out, nil
}
