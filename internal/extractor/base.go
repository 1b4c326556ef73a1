package extractor

import sitter "github.com/smacker/go-tree-sitter"

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractPrototype(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Prototype
}
