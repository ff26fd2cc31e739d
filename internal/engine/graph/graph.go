// # internal/engine/graph/graph.go
package graph

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"fixturecheck/internal/engine/fixtures"
	"fixturecheck/internal/engine/parser"
	"fixturecheck/internal/shared/util"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

type Role string

const (
	RoleProvider Role = "provider"
	RoleConsumer Role = "consumer"
)

type Node struct {
	ID   string
	Role Role
	Line int
}

type Edge struct {
	From string
	To   string
}

// FixtureGraph is the per-module dependency graph: an edge from f to p means
// f takes a parameter named after provider p.
type FixtureGraph struct {
	g     dgraph.Graph[string, *Node]
	nodes map[string]*Node
	edges []Edge
}

// Build creates the graph for one module's registry. Parameters that name no
// provider contribute no edge.
func Build(reg fixtures.Registry) (*FixtureGraph, error) {
	fg := &FixtureGraph{
		g:     dgraph.New(func(n *Node) string { return n.ID }, dgraph.Directed()),
		nodes: make(map[string]*Node),
	}

	for _, name := range reg.ProviderNames() {
		fn := reg.Providers[name]
		if err := fg.addNode(&Node{ID: name, Role: RoleProvider, Line: fn.Location.Line}); err != nil {
			return nil, err
		}
	}
	for _, name := range reg.ConsumerNames() {
		fn := reg.Consumers[name]
		if _, dup := fg.nodes[name]; dup {
			continue
		}
		if err := fg.addNode(&Node{ID: name, Role: RoleConsumer, Line: fn.Location.Line}); err != nil {
			return nil, err
		}
	}

	link := func(from string, params []string) error {
		for _, to := range params {
			if _, ok := reg.Providers[to]; !ok {
				continue
			}
			if err := fg.g.AddEdge(from, to); err != nil {
				if errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
					continue
				}
				return fmt.Errorf("failed to add edge %s -> %s: %w", from, to, err)
			}
			fg.edges = append(fg.edges, Edge{From: from, To: to})
		}
		return nil
	}

	for _, name := range reg.ProviderNames() {
		if err := link(name, paramNames(reg.Providers[name].Params)); err != nil {
			return nil, err
		}
	}
	for _, name := range reg.ConsumerNames() {
		if err := link(name, paramNames(reg.Consumers[name].Params)); err != nil {
			return nil, err
		}
	}

	return fg, nil
}

func (fg *FixtureGraph) addNode(n *Node) error {
	shape := "box"
	if n.Role == RoleConsumer {
		shape = "ellipse"
	}
	if err := fg.g.AddVertex(n, dgraph.VertexAttribute("shape", shape)); err != nil {
		return fmt.Errorf("failed to add node %s: %w", n.ID, err)
	}
	fg.nodes[n.ID] = n
	return nil
}

func (fg *FixtureGraph) Nodes() []*Node {
	out := make([]*Node, 0, len(fg.nodes))
	for _, id := range util.SortedStringKeys(fg.nodes) {
		out = append(out, fg.nodes[id])
	}
	return out
}

func (fg *FixtureGraph) Edges() []Edge {
	out := append([]Edge(nil), fg.edges...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Dependencies returns the providers id depends on directly, sorted.
func (fg *FixtureGraph) Dependencies(id string) ([]string, error) {
	adj, err := fg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	targets, ok := adj[id]
	if !ok {
		return nil, dgraph.ErrVertexNotFound
	}
	return util.SortedStringKeys(targets), nil
}

// DetectCycles returns provider dependency cycles, each sorted, including
// providers that request themselves.
func (fg *FixtureGraph) DetectCycles() ([][]string, error) {
	components, err := dgraph.StronglyConnectedComponents(fg.g)
	if err != nil {
		return nil, err
	}
	adj, err := fg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, comp := range components {
		if len(comp) == 1 {
			if _, self := adj[comp[0]][comp[0]]; !self {
				continue
			}
		}
		cycle := append([]string(nil), comp...)
		sort.Strings(cycle)
		cycles = append(cycles, cycle)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles, nil
}

// WriteDOT renders the graph in Graphviz DOT format.
func (fg *FixtureGraph) WriteDOT(w io.Writer) error {
	return draw.DOT(fg.g, w)
}

func paramNames(params []parser.Param) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}
