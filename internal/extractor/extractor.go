package extractor

import (
	"context"
	"fmt"
	"os"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// annotationRe matches wrapper annotations written after a parameter name,
// e.g. "int* displs {ARRAY_IN|OP:comm_size:comm}".
var annotationRe = regexp.MustCompile(`(\w)\s*\{[^{}();\n]*\}(\s*[,)])`)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "c":
		langExt = &CExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// StripAnnotations removes parameter annotations that are not C syntax.
func StripAnnotations(src []byte) []byte {
	return annotationRe.ReplaceAll(src, []byte("$1$2"))
}

// ExtractFromFile parses a single header and extracts all function prototypes.
func (e *Extractor) ExtractFromFile(filepath string) ([]*Prototype, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return e.ExtractFromSource(sourceCode, filepath)
}

// ExtractFromSource extracts function prototypes from in-memory source.
func (e *Extractor) ExtractFromSource(sourceCode []byte, filepath string) ([]*Prototype, error) {
	sourceCode = StripAnnotations(sourceCode)

	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filepath, err)
	}

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var prototypes []*Prototype
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := query.CaptureNameForId(c.Index)
			proto := e.langExtractor.ExtractPrototype(captureName, c.Node, sourceCode, filepath)
			if proto != nil {
				prototypes = append(prototypes, proto)
			}
		}
	}

	return prototypes, nil
}
