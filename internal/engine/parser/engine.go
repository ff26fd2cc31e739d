package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler processes a node during a walk.
// Returns true if the walker should not descend into the node's children.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries shared state/helpers used while converting a tree.
type ExtractionContext struct {
	Source []byte
	Path   string
}

// ExtractorEngine walks the syntax tree and dispatches node handlers by kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
	fallback NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

// WithFallback sets a handler invoked for kinds without a dedicated handler.
func (e *ExtractorEngine) WithFallback(h NodeHandler) *ExtractorEngine {
	e.fallback = h
	return e
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	stop := false
	if handler, ok := e.handlers[node.Kind()]; ok {
		stop = handler(ctx, node)
	} else if e.fallback != nil {
		stop = e.fallback(ctx, node)
	}

	if !stop {
		for i := uint(0); i < node.ChildCount(); i++ {
			e.Walk(ctx, node.Child(i))
		}
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) Location(node *sitter.Node) Location {
	if node == nil {
		return Location{File: c.Path}
	}
	return Location{
		File:   c.Path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

// firstSyntaxError returns the earliest ERROR or MISSING node under root.
func firstSyntaxError(ctx *ExtractionContext, root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	NewExtractorEngine(nil).WithFallback(func(_ *ExtractionContext, node *sitter.Node) bool {
		if !node.IsError() && !node.IsMissing() {
			return !node.HasError()
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
		return true
	}).Walk(ctx, root)
	return best
}
