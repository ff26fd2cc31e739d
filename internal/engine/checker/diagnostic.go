// # internal/engine/checker/diagnostic.go
package checker

import (
	"fmt"
	"sort"
)

type Kind string

const (
	KindUnparsableFile           Kind = "UnparsableFile"
	KindFixtureMissingReturnType Kind = "FixtureMissingReturnType"
	KindMissingArgumentType      Kind = "MissingArgumentType"
	KindIncorrectArgumentType    Kind = "IncorrectArgumentType"
	KindFixtureDoesNotExist      Kind = "FixtureDoesNotExist"
)

// Kinds lists every diagnostic kind in reporting order.
var Kinds = []Kind{
	KindUnparsableFile,
	KindFixtureMissingReturnType,
	KindMissingArgumentType,
	KindIncorrectArgumentType,
	KindFixtureDoesNotExist,
}

// Diagnostic is a single finding. Fields not relevant to Kind stay empty,
// which keeps the value comparable for set semantics.
type Diagnostic struct {
	Kind         Kind   `json:"kind" yaml:"kind"`
	File         string `json:"file,omitempty" yaml:"file,omitempty"`
	FixtureName  string `json:"fixture_name,omitempty" yaml:"fixture_name,omitempty"`
	FunctionName string `json:"function_name,omitempty" yaml:"function_name,omitempty"`
	ArgumentName string `json:"argument_name,omitempty" yaml:"argument_name,omitempty"`
	ExpectedType string `json:"expected_type,omitempty" yaml:"expected_type,omitempty"`
	ProvidedType string `json:"provided_type,omitempty" yaml:"provided_type,omitempty"`
	Line         int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// Subject is the function the diagnostic is reported against.
func (d Diagnostic) Subject() string {
	if d.Kind == KindFixtureMissingReturnType {
		return d.FixtureName
	}
	return d.FunctionName
}

func (d Diagnostic) Message() string {
	switch d.Kind {
	case KindUnparsableFile:
		return "unable to parse file"
	case KindFixtureMissingReturnType:
		return fmt.Sprintf("fixture %s: missing return type", d.FixtureName)
	case KindMissingArgumentType:
		return fmt.Sprintf("%s: missing type", d.ArgumentName)
	case KindIncorrectArgumentType:
		return fmt.Sprintf("%s: expected %s, provided: %s", d.ArgumentName, d.ExpectedType, d.ProvidedType)
	case KindFixtureDoesNotExist:
		return fmt.Sprintf("%s: fixture does not exist", d.ArgumentName)
	}
	return string(d.Kind)
}

func (d Diagnostic) String() string {
	if d.Kind == KindUnparsableFile || d.Kind == KindFixtureMissingReturnType {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message())
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.FunctionName, d.Message())
}

// Sort orders diagnostics by file, line, then kind and names.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Subject() != b.Subject() {
			return a.Subject() < b.Subject()
		}
		return a.ArgumentName < b.ArgumentName
	})
}

// CountByKind tallies diagnostics per kind; every kind is present.
func CountByKind(diags []Diagnostic) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		counts[k] = 0
	}
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}
