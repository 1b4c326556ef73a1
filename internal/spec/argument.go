package spec

import (
	"strings"

	"specview/internal/xmldoc"
)

// Intent values an argument may declare. An unset intent is "".
const (
	IntentIn    = "in"
	IntentOut   = "out"
	IntentInOut = "inout"
)

// Argument is one formal parameter of a Call.
type Argument struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Intent string `yaml:"intent,omitempty"`
	// Order is the declared position, kept for display only.
	Order string `yaml:"order,omitempty"`
	// TypeAfterArg is a type suffix written after the name, e.g. "[]".
	TypeAfterArg string `yaml:"type_after_arg,omitempty"`
}

// NewArgument reads an argument element; absent attributes become "".
func NewArgument(el *xmldoc.Element) Argument {
	return Argument{
		Name:         el.Attr("name"),
		Type:         el.Attr("type"),
		Intent:       el.Attr("intent"),
		Order:        el.Attr("order"),
		TypeAfterArg: el.Attr("typeAfterArg"),
	}
}

// LabelOptions selects the decorations of an argument label.
type LabelOptions struct {
	ShowType   bool
	ShowIntent bool
	ShowOrder  bool
}

// Label renders the argument for display, e.g. "2: int* count[] (in)".
func (a Argument) Label(opts LabelOptions) string {
	out := a.Name
	if opts.ShowType {
		out = a.Type + " " + out + a.TypeAfterArg
	}
	if opts.ShowIntent {
		out = out + " (" + a.Intent + ")"
	}
	if opts.ShowOrder {
		out = a.Order + ": " + out
	}
	return out
}

// PlainType returns the declared type with every pointer marker removed.
func (a Argument) PlainType() string {
	return strings.ReplaceAll(a.Type, "*", "")
}
