// # internal/engine/fixtures/classifier.go
package fixtures

import (
	"strings"

	"fixturecheck/internal/engine/parser"
	"fixturecheck/internal/shared/util"
)

const consumerPrefix = "test_"

// Registry partitions a module's functions by role. Later definitions with
// the same name replace earlier ones.
type Registry struct {
	Providers map[string]parser.FunctionDef
	Consumers map[string]parser.FunctionDef
}

// IsProvider reports whether any decorator is exactly a call of pytest.fixture.
func IsProvider(fn parser.FunctionDef) bool {
	for _, dec := range fn.Decorators {
		if isFixtureDecorator(dec) {
			return true
		}
	}
	return false
}

func isFixtureDecorator(expr parser.Expr) bool {
	call, ok := expr.(*parser.Call)
	if !ok {
		return false
	}
	attr, ok := call.Func.(*parser.Attribute)
	if !ok || attr.Attr != "fixture" {
		return false
	}
	base, ok := attr.Value.(*parser.Name)
	return ok && base.ID == "pytest"
}

// IsConsumer reports whether fn is a non-provider test function.
func IsConsumer(fn parser.FunctionDef) bool {
	return !IsProvider(fn) && strings.HasPrefix(fn.Name, consumerPrefix)
}

func Classify(functions []parser.FunctionDef) Registry {
	reg := Registry{
		Providers: make(map[string]parser.FunctionDef),
		Consumers: make(map[string]parser.FunctionDef),
	}
	for _, fn := range functions {
		switch {
		case IsProvider(fn):
			reg.Providers[fn.Name] = fn
		case IsConsumer(fn):
			reg.Consumers[fn.Name] = fn
		}
	}
	return reg
}

// ProviderNames returns provider names sorted for deterministic iteration.
func (r Registry) ProviderNames() []string {
	return util.SortedStringKeys(r.Providers)
}

func (r Registry) ConsumerNames() []string {
	return util.SortedStringKeys(r.Consumers)
}
