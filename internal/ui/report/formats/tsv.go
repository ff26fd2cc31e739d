// # internal/ui/report/formats/tsv.go
package formats

import (
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/engine/graph"
	"fmt"
	"strings"
)

// GenerateDiagnosticsTSV renders one row per diagnostic.
func GenerateDiagnosticsTSV(diags []checker.Diagnostic) (string, error) {
	var buf strings.Builder

	buf.WriteString("Kind\tFile\tLine\tFunction\tFixture\tArgument\tExpected\tProvided\n")
	for _, d := range diags {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			d.Kind,
			d.File,
			d.Line,
			tsvField(d.FunctionName),
			tsvField(d.FixtureName),
			tsvField(d.ArgumentName),
			tsvField(d.ExpectedType),
			tsvField(d.ProvidedType),
		))
	}

	return buf.String(), nil
}

// GenerateEdgesTSV renders the dependency edges of a fixture graph.
func GenerateEdgesTSV(file string, g *graph.FixtureGraph) (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tFrom\tTo\n")
	for _, e := range g.Edges() {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\n", file, e.From, e.To))
	}

	return buf.String(), nil
}

func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}
