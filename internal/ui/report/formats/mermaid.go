package formats

import (
	"fixturecheck/internal/engine/graph"
	"fmt"
	"strings"
)

// MermaidModule is one file's fixture graph plus its cycles.
type MermaidModule struct {
	File   string
	Graph  *graph.FixtureGraph
	Cycles [][]string
}

type MermaidGenerator struct {
	modules []MermaidModule
}

func NewMermaidGenerator(modules []MermaidModule) *MermaidGenerator {
	return &MermaidGenerator{modules: modules}
}

// Generate renders a flowchart with one subgraph per file. Providers are
// rounded nodes, consumers are rectangles and cycle edges are highlighted.
func (m *MermaidGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	edgeIndex := 0
	var cycleLinks []int
	var providerIDs, consumerIDs, cycleIDs []string

	for mi, mod := range m.modules {
		nodes := mod.Graph.Nodes()
		names := make([]string, 0, len(nodes))
		for _, n := range nodes {
			names = append(names, n.ID)
		}
		ids := makeIDs(names)
		prefix := fmt.Sprintf("f%d_", mi)
		inCycle := cycleMemberSet(mod.Cycles)

		b.WriteString(fmt.Sprintf("  subgraph %s[\"%s\"]\n", sanitizeID(prefix+mod.File), escapeLabel(mod.File)))
		for _, n := range nodes {
			id := prefix + ids[n.ID]
			if n.Role == graph.RoleProvider {
				b.WriteString(fmt.Sprintf("    %s(\"%s\")\n", id, escapeLabel(n.ID)))
				providerIDs = append(providerIDs, id)
			} else {
				b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, escapeLabel(n.ID)))
				consumerIDs = append(consumerIDs, id)
			}
			if inCycle[n.ID] {
				cycleIDs = append(cycleIDs, id)
			}
		}
		b.WriteString("  end\n")

		for _, e := range mod.Graph.Edges() {
			b.WriteString(fmt.Sprintf("  %s --> %s\n", prefix+ids[e.From], prefix+ids[e.To]))
			if inCycle[e.From] && inCycle[e.To] {
				cycleLinks = append(cycleLinks, edgeIndex)
			}
			edgeIndex++
		}
	}

	if len(providerIDs) > 0 {
		b.WriteString("  classDef provider fill:#eef7ee,stroke:#3d7a3d,color:#000000;\n")
		b.WriteString("  class " + strings.Join(providerIDs, ",") + " provider;\n")
	}
	if len(consumerIDs) > 0 {
		b.WriteString("  classDef consumer fill:#f7fbff,stroke:#4d6480,color:#000000;\n")
		b.WriteString("  class " + strings.Join(consumerIDs, ",") + " consumer;\n")
	}
	if len(cycleIDs) > 0 {
		b.WriteString("  classDef cycle stroke:#c62828,stroke-width:2px;\n")
		b.WriteString("  class " + strings.Join(cycleIDs, ",") + " cycle;\n")
	}
	for _, idx := range cycleLinks {
		b.WriteString(fmt.Sprintf("  linkStyle %d stroke:#c62828,stroke-width:2px;\n", idx))
	}

	return b.String(), nil
}

func cycleMemberSet(cycles [][]string) map[string]bool {
	out := make(map[string]bool)
	for _, cycle := range cycles {
		for _, name := range cycle {
			out[name] = true
		}
	}
	return out
}
