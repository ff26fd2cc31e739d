package formats

import (
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/engine/fixtures"
	"fixturecheck/internal/engine/graph"
	"fixturecheck/internal/engine/parser"
	"strings"
	"testing"
)

func buildGraph(t *testing.T, functions ...parser.FunctionDef) *graph.FixtureGraph {
	t.Helper()
	g, err := graph.Build(fixtures.Classify(functions))
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func fixture(name string, params ...string) parser.FunctionDef {
	fn := parser.FunctionDef{
		Name:       name,
		Returns:    &parser.Name{ID: "int"},
		Decorators: []parser.Expr{&parser.Call{Func: &parser.Attribute{Value: &parser.Name{ID: "pytest"}, Attr: "fixture"}}},
	}
	for _, p := range params {
		fn.Params = append(fn.Params, parser.Param{Name: p})
	}
	return fn
}

func testFn(name string, params ...string) parser.FunctionDef {
	fn := parser.FunctionDef{Name: name}
	for _, p := range params {
		fn.Params = append(fn.Params, parser.Param{Name: p})
	}
	return fn
}

func TestGenerateDiagnosticsTSV(t *testing.T) {
	out, err := GenerateDiagnosticsTSV([]checker.Diagnostic{
		{Kind: checker.KindIncorrectArgumentType, File: "a.py", Line: 3, FunctionName: "test_x", ArgumentName: "db", ExpectedType: "Dict[str, int]", ProvidedType: "str"},
		{Kind: checker.KindFixtureMissingReturnType, File: "a.py", Line: 1, FixtureName: "db"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[0] != "Kind\tFile\tLine\tFunction\tFixture\tArgument\tExpected\tProvided" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "IncorrectArgumentType\ta.py\t3\ttest_x\t\tdb\tDict[str, int]\tstr" {
		t.Errorf("unexpected row %q", lines[1])
	}
	if lines[2] != "FixtureMissingReturnType\ta.py\t1\t\tdb\t\t\t" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestGenerateEdgesTSV(t *testing.T) {
	g := buildGraph(t, fixture("db"), fixture("conn", "db"), testFn("test_x", "conn", "tmp_path"))
	out, err := GenerateEdgesTSV("a.py", g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "File\tFrom\tTo\na.py\tconn\tdb\na.py\ttest_x\tconn\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestMermaidGenerator_Generate(t *testing.T) {
	g := buildGraph(t, fixture("a", "b"), fixture("b", "a"), testFn("test_a", "a"))
	out, err := NewMermaidGenerator([]MermaidModule{{File: "tests/test_a.py", Graph: g, Cycles: [][]string{{"a", "b"}}}}).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"flowchart LR\n",
		"subgraph f0_tests_test_a_py[\"tests/test_a.py\"]",
		"f0_a(\"a\")",
		"f0_test_a[\"test_a\"]",
		"f0_a --> f0_b",
		"f0_test_a --> f0_a",
		"class f0_a,f0_b provider;",
		"class f0_a,f0_b cycle;",
		"linkStyle 0 stroke:#c62828",
		"linkStyle 1 stroke:#c62828",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "linkStyle 2") {
		t.Errorf("consumer edge should not be highlighted\n%s", out)
	}
}
