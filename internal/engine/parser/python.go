package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

// Extract converts a tree-sitter Python tree into a Module holding the
// top-level function definitions. Defs nested in classes, functions or
// compound statements are not collected.
func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*Module, error) {
	if root == nil {
		return nil, fmt.Errorf("nil root node")
	}

	mod := &Module{Path: filePath}
	ctx := &ExtractionContext{Source: source, Path: filePath}

	if root.HasError() {
		mod.Unparsable = true
		mod.ErrorAt = ctx.Location(root)
		if node := firstSyntaxError(ctx, root); node != nil {
			mod.ErrorAt = ctx.Location(node)
		}
		return mod, nil
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		switch node.Kind() {
		case "function_definition":
			mod.Functions = append(mod.Functions, e.extractFunction(ctx, node, nil))
		case "decorated_definition":
			def := node.ChildByFieldName("definition")
			if def == nil || def.Kind() != "function_definition" {
				continue
			}
			mod.Functions = append(mod.Functions, e.extractFunction(ctx, def, e.extractDecorators(ctx, node)))
		}
	}

	return mod, nil
}

func (e *PythonExtractor) extractFunction(ctx *ExtractionContext, node *sitter.Node, decorators []Expr) FunctionDef {
	fn := FunctionDef{
		Name:       ctx.Text(node.ChildByFieldName("name")),
		Decorators: decorators,
		Location:   ctx.Location(node),
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = e.extractParams(ctx, params)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = e.convertExpr(ctx, ret)
	}
	return fn
}

func (e *PythonExtractor) extractDecorators(ctx *ExtractionContext, node *sitter.Node) []Expr {
	var out []Expr
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "decorator" {
			continue
		}
		if expr := firstNamed(child); expr != nil {
			out = append(out, e.convertExpr(ctx, expr))
		}
	}
	return out
}

// extractParams keeps named parameters with or without annotation and
// defaults. *args and **kwargs forms are skipped.
func (e *PythonExtractor) extractParams(ctx *ExtractionContext, node *sitter.Node) []Param {
	var out []Param
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, Param{Name: ctx.Text(child), Location: ctx.Location(child)})
		case "default_parameter":
			name := child.ChildByFieldName("name")
			if name == nil || name.Kind() != "identifier" {
				continue
			}
			out = append(out, Param{Name: ctx.Text(name), Location: ctx.Location(name)})
		case "typed_parameter":
			name := firstNamed(child)
			if name == nil || name.Kind() != "identifier" {
				continue
			}
			out = append(out, Param{
				Name:       ctx.Text(name),
				Annotation: e.convertExpr(ctx, child.ChildByFieldName("type")),
				Location:   ctx.Location(name),
			})
		case "typed_default_parameter":
			name := child.ChildByFieldName("name")
			if name == nil || name.Kind() != "identifier" {
				continue
			}
			out = append(out, Param{
				Name:       ctx.Text(name),
				Annotation: e.convertExpr(ctx, child.ChildByFieldName("type")),
				Location:   ctx.Location(name),
			})
		}
	}
	return out
}

// convertExpr maps a syntax node onto the Expr model. The annotation
// specific generic_type and member_type nodes normalize to the same
// Subscript and Attribute shapes as their expression equivalents.
func (e *PythonExtractor) convertExpr(ctx *ExtractionContext, node *sitter.Node) Expr {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "type", "parenthesized_expression":
		if inner := namedChildren(node); len(inner) == 1 {
			return e.convertExpr(ctx, inner[0])
		}
	case "identifier":
		return &Name{ID: ctx.Text(node)}
	case "attribute":
		return &Attribute{
			Value: e.convertExpr(ctx, node.ChildByFieldName("object")),
			Attr:  ctx.Text(node.ChildByFieldName("attribute")),
		}
	case "member_type":
		if parts := namedChildren(node); len(parts) == 2 {
			return &Attribute{Value: e.convertExpr(ctx, parts[0]), Attr: ctx.Text(parts[1])}
		}
	case "call":
		return &Call{Func: e.convertExpr(ctx, node.ChildByFieldName("function"))}
	case "subscript":
		var indices []Expr
		for i := uint(0); i < node.ChildCount(); i++ {
			if node.FieldNameForChild(uint32(i)) == "subscript" {
				indices = append(indices, e.convertExpr(ctx, node.Child(i)))
			}
		}
		return &Subscript{
			Value: e.convertExpr(ctx, node.ChildByFieldName("value")),
			Slice: packIndices(indices, hasCommaToken(node)),
		}
	case "generic_type":
		parts := namedChildren(node)
		if len(parts) == 2 && parts[1].Kind() == "type_parameter" {
			var indices []Expr
			for _, arg := range namedChildren(parts[1]) {
				indices = append(indices, e.convertExpr(ctx, arg))
			}
			return &Subscript{Value: e.convertExpr(ctx, parts[0]), Slice: packIndices(indices, hasCommaToken(parts[1]))}
		}
	case "tuple", "list", "expression_list":
		elts := make([]Expr, 0, node.NamedChildCount())
		for _, child := range namedChildren(node) {
			elts = append(elts, e.convertExpr(ctx, child))
		}
		return &Tuple{Elts: elts}
	}

	return &Unsupported{Kind: node.Kind(), Text: ctx.Text(node)}
}

// packIndices builds a subscript slice. A bracket holding any comma is a
// tuple, so X[a,] keeps its single element wrapped.
func packIndices(indices []Expr, comma bool) Expr {
	if len(indices) == 1 && !comma {
		return indices[0]
	}
	return &Tuple{Elts: indices}
}

func hasCommaToken(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == "," {
			return true
		}
	}
	return false
}

// namedChildren skips comment nodes, which tree-sitter may attach anywhere.
func namedChildren(node *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(node *sitter.Node) *sitter.Node {
	if children := namedChildren(node); len(children) > 0 {
		return children[0]
	}
	return nil
}
