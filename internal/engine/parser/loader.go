// # internal/engine/parser/loader.go
package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonExtensions lists file suffixes handled by the Python grammar.
var PythonExtensions = []string{".py", ".pyi"}

type GrammarLoader struct {
	python *sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		python: sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

func (gl *GrammarLoader) Python() *sitter.Language {
	return gl.python
}

func (gl *GrammarLoader) IsSupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range PythonExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
