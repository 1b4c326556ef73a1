package extractor

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CExtractor implements LanguageExtractor for C headers.
type CExtractor struct{}

func (x *CExtractor) GetLanguage() *sitter.Language {
	return c.GetLanguage()
}

func (x *CExtractor) GetQuery() string {
	return `
		(declaration) @decl
	`
}

func (x *CExtractor) ExtractPrototype(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Prototype {
	if captureName != "decl" {
		return nil
	}
	fn := functionDeclarator(node.ChildByFieldName("declarator"))
	if fn == nil {
		return nil
	}
	nameNode := innermostIdentifier(fn.ChildByFieldName("declarator"))
	if nameNode == nil {
		return nil
	}

	proto := &Prototype{
		Name:       nameNode.Content(sourceCode),
		ReturnType: normalizeType(strings.TrimPrefix(strings.TrimSpace(sliceBetween(sourceCode, node.StartByte(), nameNode.StartByte())), "extern ")),
		Filepath:   filepath,
		Line:       int(node.StartPoint().Row + 1),
		Params:     []Param{},
	}

	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return proto
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if child == nil || child.Type() != "parameter_declaration" {
			continue
		}
		param, ok := extractParam(child, sourceCode)
		if ok {
			proto.Params = append(proto.Params, param)
		}
	}
	return proto
}

// extractParam reads a parameter; a lone "void" list entry yields ok=false.
func extractParam(node *sitter.Node, sourceCode []byte) (Param, bool) {
	declarator := node.ChildByFieldName("declarator")
	nameNode := innermostIdentifier(declarator)
	if nameNode == nil {
		typeText := normalizeType(node.Content(sourceCode))
		if typeText == "void" {
			return Param{}, false
		}
		return Param{Type: typeText}, true
	}
	typeText := sliceBetween(sourceCode, node.StartByte(), nameNode.StartByte()) +
		sliceBetween(sourceCode, nameNode.EndByte(), node.EndByte())
	return Param{Name: nameNode.Content(sourceCode), Type: normalizeType(typeText)}, true
}

// functionDeclarator unwraps pointer declarators down to a function declarator.
func functionDeclarator(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "function_declarator":
			return node
		case "pointer_declarator", "parenthesized_declarator":
			node = node.ChildByFieldName("declarator")
			if node == nil {
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func innermostIdentifier(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "identifier":
			return node
		case "pointer_declarator", "array_declarator", "function_declarator", "parenthesized_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

func sliceBetween(src []byte, start, end uint32) string {
	if end < start || int(end) > len(src) {
		return ""
	}
	return string(src[start:end])
}

// normalizeType collapses whitespace and binds pointer and array markers to the type.
func normalizeType(text string) string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	text = strings.ReplaceAll(text, " *", "*")
	text = strings.ReplaceAll(text, " [", "[")
	return strings.TrimSpace(text)
}
