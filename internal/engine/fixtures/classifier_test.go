package fixtures

import (
	"testing"

	"fixturecheck/internal/engine/parser"

	"github.com/stretchr/testify/assert"
)

func fixtureCall() parser.Expr {
	return &parser.Call{Func: &parser.Attribute{Value: &parser.Name{ID: "pytest"}, Attr: "fixture"}}
}

func TestIsProvider(t *testing.T) {
	tests := []struct {
		name       string
		decorators []parser.Expr
		want       bool
	}{
		{"pytest.fixture()", []parser.Expr{fixtureCall()}, true},
		{"among others", []parser.Expr{&parser.Name{ID: "other"}, fixtureCall()}, true},
		{"bare attribute", []parser.Expr{&parser.Attribute{Value: &parser.Name{ID: "pytest"}, Attr: "fixture"}}, false},
		{"other attribute", []parser.Expr{&parser.Call{Func: &parser.Attribute{Value: &parser.Name{ID: "pytest"}, Attr: "mark"}}}, false},
		{"other base", []parser.Expr{&parser.Call{Func: &parser.Attribute{Value: &parser.Name{ID: "pt"}, Attr: "fixture"}}}, false},
		{"bare name call", []parser.Expr{&parser.Call{Func: &parser.Name{ID: "fixture"}}}, false},
		{"nested call", []parser.Expr{&parser.Call{Func: fixtureCall()}}, false},
		{"no decorators", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn := parser.FunctionDef{Name: "db", Decorators: tc.decorators}
			assert.Equal(t, tc.want, IsProvider(fn))
		})
	}
}

func TestIsConsumer(t *testing.T) {
	assert.True(t, IsConsumer(parser.FunctionDef{Name: "test_x"}))
	assert.False(t, IsConsumer(parser.FunctionDef{Name: "helper"}))
	assert.False(t, IsConsumer(parser.FunctionDef{Name: "testx"}))
	assert.False(t, IsConsumer(parser.FunctionDef{Name: "test_db", Decorators: []parser.Expr{fixtureCall()}}),
		"a provider is never a consumer")
}

func TestClassify(t *testing.T) {
	functions := []parser.FunctionDef{
		{Name: "db", Decorators: []parser.Expr{fixtureCall()}, Returns: &parser.Name{ID: "str"}},
		{Name: "test_a"},
		{Name: "helper"},
		{Name: "db", Decorators: []parser.Expr{fixtureCall()}, Returns: &parser.Name{ID: "int"}},
		{Name: "test_fixture", Decorators: []parser.Expr{fixtureCall()}},
	}

	reg := Classify(functions)

	assert.Equal(t, []string{"db", "test_fixture"}, reg.ProviderNames())
	assert.Equal(t, []string{"test_a"}, reg.ConsumerNames())
	assert.Equal(t, &parser.Name{ID: "int"}, reg.Providers["db"].Returns, "later definition wins")
}

func TestClassify_Empty(t *testing.T) {
	reg := Classify(nil)
	assert.Empty(t, reg.Providers)
	assert.Empty(t, reg.Consumers)
}
