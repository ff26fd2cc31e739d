// # internal/engine/parser/parser_test.go
package parser

import (
	"testing"

	"fixturecheck/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, code string) *Module {
	t.Helper()
	p := NewParser(NewGrammarLoader())
	mod, err := p.ParseFile("test_mod.py", []byte(code))
	require.NoError(t, err)
	return mod
}

func TestPythonExtraction_TopLevelFunctions(t *testing.T) {
	mod := parse(t, `import pytest


@pytest.fixture()
def db() -> int:
    return 1


async def test_async(db: int):
    pass


class TestGroup:
    def test_method(self, db: int):
        pass


def outer():
    def test_inner(db):
        pass


if True:
    def test_conditional(db):
        pass
`)
	require.False(t, mod.Unparsable)
	require.Len(t, mod.Functions, 3)

	assert.Equal(t, "db", mod.Functions[0].Name)
	assert.Equal(t, 5, mod.Functions[0].Location.Line)
	assert.Equal(t, "test_async", mod.Functions[1].Name)
	assert.Equal(t, "outer", mod.Functions[2].Name)
}

func TestPythonExtraction_Decorators(t *testing.T) {
	mod := parse(t, `@pytest.fixture()
@other
def db():
    pass
`)
	require.Len(t, mod.Functions, 1)
	decorators := mod.Functions[0].Decorators
	require.Len(t, decorators, 2)

	assert.Equal(t, &Call{Func: &Attribute{Value: &Name{ID: "pytest"}, Attr: "fixture"}}, decorators[0])
	assert.Equal(t, &Name{ID: "other"}, decorators[1])
}

func TestPythonExtraction_Parameters(t *testing.T) {
	mod := parse(t, `def test_params(a, b: int, c=1, d: str = "x", *args, **kwargs):
    pass
`)
	require.Len(t, mod.Functions, 1)
	params := mod.Functions[0].Params
	require.Len(t, params, 4)

	assert.Equal(t, "a", params[0].Name)
	assert.Nil(t, params[0].Annotation)
	assert.Equal(t, "b", params[1].Name)
	assert.Equal(t, &Name{ID: "int"}, params[1].Annotation)
	assert.Equal(t, "c", params[2].Name)
	assert.Nil(t, params[2].Annotation)
	assert.Equal(t, "d", params[3].Name)
	assert.Equal(t, &Name{ID: "str"}, params[3].Annotation)
	assert.Equal(t, 1, params[0].Location.Line)
}

func TestPythonExtraction_Annotations(t *testing.T) {
	tests := []struct {
		name string
		ann  string
		want Expr
	}{
		{"name", "int", &Name{ID: "int"}},
		{"generic", "List[int]", &Subscript{Value: &Name{ID: "List"}, Slice: &Name{ID: "int"}}},
		{"multi index", "Dict[int, str]", &Subscript{
			Value: &Name{ID: "Dict"},
			Slice: &Tuple{Elts: []Expr{&Name{ID: "int"}, &Name{ID: "str"}}},
		}},
		{"nested", "List[List[int]]", &Subscript{
			Value: &Name{ID: "List"},
			Slice: &Subscript{Value: &Name{ID: "List"}, Slice: &Name{ID: "int"}},
		}},
		{"trailing comma", "List[int,]", &Subscript{
			Value: &Name{ID: "List"},
			Slice: &Tuple{Elts: []Expr{&Name{ID: "int"}}},
		}},
		{"tuple index with trailing comma", "Tuple[(int, str),]", &Subscript{
			Value: &Name{ID: "Tuple"},
			Slice: &Tuple{Elts: []Expr{&Tuple{Elts: []Expr{&Name{ID: "int"}, &Name{ID: "str"}}}}},
		}},
		{"tuple", "(int, str)", &Tuple{Elts: []Expr{&Name{ID: "int"}, &Name{ID: "str"}}}},
		{"qualified", "typing.List", &Attribute{Value: &Name{ID: "typing"}, Attr: "List"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mod := parse(t, "def f() -> "+tc.ann+":\n    pass\n")
			require.Len(t, mod.Functions, 1)
			assert.Equal(t, tc.want, mod.Functions[0].Returns)
		})
	}
}

func TestPythonExtraction_UnsupportedAnnotations(t *testing.T) {
	for _, ann := range []string{`"Forward"`, "None", "int | None", "1"} {
		t.Run(ann, func(t *testing.T) {
			mod := parse(t, "def f() -> "+ann+":\n    pass\n")
			require.Len(t, mod.Functions, 1)
			_, ok := mod.Functions[0].Returns.(*Unsupported)
			assert.True(t, ok, "expected *Unsupported, got %T", mod.Functions[0].Returns)
		})
	}
}

func TestPythonExtraction_NoReturnAnnotation(t *testing.T) {
	mod := parse(t, "def f():\n    pass\n")
	require.Len(t, mod.Functions, 1)
	assert.Nil(t, mod.Functions[0].Returns)
}

func TestPythonExtraction_SyntaxError(t *testing.T) {
	mod := parse(t, "def ok():\n    pass\n\ndef broken(:\n    pass\n")
	assert.True(t, mod.Unparsable)
	assert.Empty(t, mod.Functions)
	assert.Equal(t, 4, mod.ErrorAt.Line)
}

func TestPythonExtraction_EmptyModule(t *testing.T) {
	mod := parse(t, "")
	assert.False(t, mod.Unparsable)
	assert.Empty(t, mod.Functions)
}

func TestParseFile_RejectsNonPython(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	_, err := p.ParseFile("notes.txt", []byte("def f(): pass"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotSupported))
}
