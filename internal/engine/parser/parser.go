// # internal/engine/parser/parser.go
package parser

import (
	"fixturecheck/internal/core/errors"
	"fmt"
)

type Parser struct {
	loader    *GrammarLoader
	pool      *ParserPool
	extractor *PythonExtractor
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader:    loader,
		pool:      NewParserPool(loader.Python()),
		extractor: &PythonExtractor{},
	}
}

// ParseFile parses Python source into a Module. Syntax errors do not fail
// the call; they are reported through Module.Unparsable.
func (p *Parser) ParseFile(path string, content []byte) (*Module, error) {
	if !p.loader.IsSupportedPath(path) {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, fmt.Sprintf("not a python file: %s", path)),
			errors.CtxPath, path,
		)
	}
	return p.ParseSource(path, content)
}

// ParseSource parses content regardless of the path's extension.
func (p *Parser) ParseSource(path string, content []byte) (*Module, error) {
	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	mod, err := p.extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "extraction failed"), errors.CtxPath, path)
	}
	return mod, nil
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.loader.IsSupportedPath(path)
}
