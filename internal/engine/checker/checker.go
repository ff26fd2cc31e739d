// # internal/engine/checker/checker.go
package checker

import (
	"fixturecheck/internal/engine/fixtures"
	"fixturecheck/internal/engine/parser"
	"fixturecheck/internal/engine/resolver"
)

// Options controls policy decisions of the checker.
type Options struct {
	// StrictFixtures reports annotated parameters that name no provider.
	StrictFixtures bool
	// KnownFixtures are names treated as existing providers under the strict
	// policy (pytest built-ins such as tmp_path).
	KnownFixtures []string
}

type Checker struct {
	opts  Options
	known map[string]bool
}

func New(opts Options) *Checker {
	known := make(map[string]bool, len(opts.KnownFixtures))
	for _, name := range opts.KnownFixtures {
		known[name] = true
	}
	return &Checker{opts: opts, known: known}
}

// CheckModule checks a parsed module. An unparsable module yields a single
// UnparsableFile diagnostic.
func (c *Checker) CheckModule(mod *parser.Module) []Diagnostic {
	if mod == nil {
		return nil
	}
	if mod.Unparsable {
		return []Diagnostic{{Kind: KindUnparsableFile, File: mod.Path, Line: mod.ErrorAt.Line}}
	}

	diags := c.CheckRegistry(fixtures.Classify(mod.Functions))
	for i := range diags {
		diags[i].File = mod.Path
	}
	return diags
}

// CheckRegistry runs provider well-formedness followed by argument checks
// of every provider and consumer.
func (c *Checker) CheckRegistry(reg fixtures.Registry) []Diagnostic {
	var diags []Diagnostic

	for _, name := range reg.ProviderNames() {
		provider := reg.Providers[name]
		if _, ok := resolver.ResolveAnnotation(provider.Returns); !ok {
			diags = append(diags, Diagnostic{
				Kind:        KindFixtureMissingReturnType,
				FixtureName: provider.Name,
				Line:        provider.Location.Line,
			})
		}
		diags = append(diags, c.checkArguments(reg, provider)...)
	}

	for _, name := range reg.ConsumerNames() {
		diags = append(diags, c.checkArguments(reg, reg.Consumers[name])...)
	}

	return diags
}

func (c *Checker) checkArguments(reg fixtures.Registry, fn parser.FunctionDef) []Diagnostic {
	var diags []Diagnostic

	for _, param := range fn.Params {
		provided, annotated := resolver.ResolveAnnotation(param.Annotation)

		provider, exists := reg.Providers[param.Name]
		if !exists {
			if c.opts.StrictFixtures && param.Annotation != nil && !c.known[param.Name] {
				diags = append(diags, Diagnostic{
					Kind:         KindFixtureDoesNotExist,
					FunctionName: fn.Name,
					ArgumentName: param.Name,
					Line:         param.Location.Line,
				})
			}
			continue
		}

		if !annotated {
			diags = append(diags, Diagnostic{
				Kind:         KindMissingArgumentType,
				FunctionName: fn.Name,
				ArgumentName: param.Name,
				Line:         param.Location.Line,
			})
			continue
		}

		expected, ok := resolver.ResolveAnnotation(provider.Returns)
		if !ok {
			// Already reported once as FixtureMissingReturnType.
			continue
		}

		if !resolver.Equal(expected, provided) {
			diags = append(diags, Diagnostic{
				Kind:         KindIncorrectArgumentType,
				FunctionName: fn.Name,
				ArgumentName: param.Name,
				ExpectedType: resolver.Render(expected),
				ProvidedType: resolver.Render(provided),
				Line:         param.Location.Line,
			})
		}
	}

	return diags
}
