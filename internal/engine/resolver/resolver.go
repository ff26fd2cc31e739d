// # internal/engine/resolver/resolver.go
package resolver

import (
	"fixturecheck/internal/engine/parser"
)

// Resolve converts an annotation expression into a Signature. The boolean
// is false when the expression shape is unsupported.
func Resolve(expr parser.Expr) (Signature, bool) {
	switch e := expr.(type) {
	case *parser.Name:
		return Atom{Name: e.ID}, true

	case *parser.Subscript:
		base, ok := e.Value.(*parser.Name)
		if !ok {
			return nil, false
		}
		slice, ok := Resolve(e.Slice)
		if !ok {
			return nil, false
		}
		if tuple, isTuple := slice.(TupleOf); isTuple {
			return Parameterized{Base: base.ID, Params: tuple.Elems}, true
		}
		return Parameterized{Base: base.ID, Params: []Signature{slice}}, true

	case *parser.Tuple:
		elems := make([]Signature, 0, len(e.Elts))
		for _, elt := range e.Elts {
			sig, ok := Resolve(elt)
			if !ok {
				return nil, false
			}
			elems = append(elems, sig)
		}
		return TupleOf{Elems: elems}, true
	}

	return nil, false
}

// ResolveAnnotation is Resolve for an optional annotation; nil yields no
// signature.
func ResolveAnnotation(expr parser.Expr) (Signature, bool) {
	if expr == nil {
		return nil, false
	}
	return Resolve(expr)
}
