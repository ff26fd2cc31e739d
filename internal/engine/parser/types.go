// # internal/engine/parser/types.go
package parser

// Module is the parsed view of one Python file: its top-level function
// definitions in source order.
type Module struct {
	Path       string
	Functions  []FunctionDef
	Unparsable bool
	// ErrorAt is the location of the first syntax error when Unparsable.
	ErrorAt Location
}

type FunctionDef struct {
	Name       string
	Params     []Param
	Returns    Expr // nil when the def has no return annotation
	Decorators []Expr
	Location   Location
}

type Param struct {
	Name       string
	Annotation Expr // nil when unannotated
	Location   Location
}

type Location struct {
	File   string
	Line   int
	Column int
}

// Expr is the closed set of expression shapes the checker inspects.
// Anything else arrives as *Unsupported.
type Expr interface {
	exprNode()
}

type Name struct {
	ID string
}

type Attribute struct {
	Value Expr
	Attr  string
}

type Call struct {
	Func Expr
}

// Subscript holds a single index, or a *Tuple when the source had
// several comma separated indices.
type Subscript struct {
	Value Expr
	Slice Expr
}

type Tuple struct {
	Elts []Expr
}

type Unsupported struct {
	Kind string
	Text string
}

func (*Name) exprNode()        {}
func (*Attribute) exprNode()   {}
func (*Call) exprNode()        {}
func (*Subscript) exprNode()   {}
func (*Tuple) exprNode()       {}
func (*Unsupported) exprNode() {}
