package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Element is a node of the minimal element tree built from XML input.
// A nil *Element behaves like an element without attributes or children,
// so lookups can be chained without checks.
type Element struct {
	name     string
	attrs    []xml.Attr
	children []*Element
	text     string
}

// Parse builds the element tree from XML input and returns the document element.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			elem := &Element{
				name:  t.Name.Local,
				attrs: append([]xml.Attr(nil), t.Attr...),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].text += string(t)
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(text string) (*Element, error) {
	return Parse(strings.NewReader(text))
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Name returns the local tag name.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Attr returns the value of the named attribute, or "" when it is absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	for _, attr := range e.attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// Child returns the first child element with the given tag, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, child := range e.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Children returns a copy of the child element slice, whatever their tags.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	result := make([]*Element, len(e.children))
	copy(result, e.children)
	return result
}

// Text returns the direct character data of the element, untrimmed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}
