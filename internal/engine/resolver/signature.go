// # internal/engine/resolver/signature.go
package resolver

import (
	"strings"
)

// Signature is the canonical, comparable form of a type annotation.
type Signature interface {
	signature()
	String() string
}

// Atom is a bare identifier such as int or str.
type Atom struct {
	Name string
}

// Parameterized is a subscripted generic such as List[int] or Dict[int, str].
type Parameterized struct {
	Base   string
	Params []Signature
}

// TupleOf is a bare tuple-shaped annotation.
type TupleOf struct {
	Elems []Signature
}

func (Atom) signature()          {}
func (Parameterized) signature() {}
func (TupleOf) signature()       {}

func (a Atom) String() string          { return Render(a) }
func (p Parameterized) String() string { return Render(p) }
func (t TupleOf) String() string       { return Render(t) }

// Equal reports structural, order-sensitive equality.
func Equal(a, b Signature) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Name == y.Name
	case Parameterized:
		y, ok := b.(Parameterized)
		return ok && x.Base == y.Base && equalAll(x.Params, y.Params)
	case TupleOf:
		y, ok := b.(TupleOf)
		return ok && equalAll(x.Elems, y.Elems)
	}
	return false
}

func equalAll(xs, ys []Signature) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// Render produces the diagnostic form: Atom prints its name, Parameterized
// prints "b[p1, p2]" and TupleOf prints "p1, p2".
func Render(sig Signature) string {
	switch s := sig.(type) {
	case Atom:
		return s.Name
	case Parameterized:
		return s.Base + "[" + joinRendered(s.Params, Render) + "]"
	case TupleOf:
		return joinRendered(s.Elems, Render)
	}
	return ""
}

// Source renders sig as Python annotation source that resolves back to sig.
func Source(sig Signature) string {
	switch s := sig.(type) {
	case Atom:
		return s.Name
	case Parameterized:
		if len(s.Params) == 0 {
			return s.Base + "[()]"
		}
		if _, isTuple := s.Params[0].(TupleOf); isTuple && len(s.Params) == 1 {
			return s.Base + "[" + Source(s.Params[0]) + ",]"
		}
		return s.Base + "[" + joinRendered(s.Params, Source) + "]"
	case TupleOf:
		switch len(s.Elems) {
		case 0:
			return "()"
		case 1:
			return "(" + Source(s.Elems[0]) + ",)"
		}
		return "(" + joinRendered(s.Elems, Source) + ")"
	}
	return ""
}

func joinRendered(sigs []Signature, render func(Signature) string) string {
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		parts[i] = render(s)
	}
	return strings.Join(parts, ", ")
}
