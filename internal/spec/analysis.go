package spec

import (
	"strings"

	"specview/internal/xmldoc"
)

// RefKind is the set of references an analysis argument carries. An
// argument may name a call argument and an operation at the same time.
type RefKind uint8

const RefNone RefKind = 0

const (
	RefArgument RefKind = 1 << iota
	RefOperation
)

// Has reports whether kind is part of the set.
func (k RefKind) Has(kind RefKind) bool {
	return k&kind != 0
}

func (k RefKind) String() string {
	var parts []string
	if k.Has(RefArgument) {
		parts = append(parts, "argument")
	}
	if k.Has(RefOperation) {
		parts = append(parts, "operation")
	}
	return strings.Join(parts, "+")
}

func (k RefKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// AnalysisArgument is one input of an analysis. It references a call
// argument by name, an operation by (name, group, id), or both.
type AnalysisArgument struct {
	Type  string  `yaml:"type"`
	Order string  `yaml:"order,omitempty"`
	Ref   RefKind `yaml:"ref,omitempty"`
	// ArgumentMapping is the call argument name when Ref has RefArgument.
	ArgumentMapping string `yaml:"call_arg_name,omitempty"`
	// OperationRef is the declared triple when Ref has RefOperation.
	OperationRef *OperationKey `yaml:"op_name,omitempty"`
	// Operation is the sibling operation OperationRef resolved to, nil when unresolved.
	Operation *Operation `yaml:"-"`
}

// NewAnalysisArgument reads an analysis argument and resolves its operation
// reference against operations, the enclosing call's finished operation list.
// Both a call_arg_name and an op_name child are kept when present.
func NewAnalysisArgument(el *xmldoc.Element, operations []*Operation) AnalysisArgument {
	arg := AnalysisArgument{
		Type:  el.Attr("type"),
		Order: el.Attr(attrAnalysisArgOrder),
	}
	if ref := el.Child(tagCallArgName); ref != nil {
		arg.Ref |= RefArgument
		arg.ArgumentMapping = ref.Text()
	}
	if ref := el.Child(tagOpName); ref != nil {
		key := OperationKey{Name: ref.Text(), Group: ref.Attr("group"), ID: ref.Attr("id")}
		arg.Ref |= RefOperation
		arg.OperationRef = &key
		arg.Operation = findOperation(operations, key)
	}
	return arg
}

// Resolved reports whether an operation reference found its target.
func (a AnalysisArgument) Resolved() bool {
	return a.Ref.Has(RefOperation) && a.Operation != nil
}

// MapsDirectly reports whether the call argument reference names argument.
func (a AnalysisArgument) MapsDirectly(argument string) bool {
	return a.Ref.Has(RefArgument) && a.ArgumentMapping == argument
}

// MapsThroughOperation reports whether the resolved operation consumes argument.
func (a AnalysisArgument) MapsThroughOperation(argument string) bool {
	return a.Ref.Has(RefOperation) && a.Operation.IsMappedToArgument(argument)
}

// IsMappedToArgument reports whether this input reads the named call
// argument, directly or through the operation it inspects.
func (a AnalysisArgument) IsMappedToArgument(argument string) bool {
	return a.MapsDirectly(argument) || a.MapsThroughOperation(argument)
}

// Analysis is a named check associated with a call.
type Analysis struct {
	// Name is conventionally "group:shortname".
	Name      string             `yaml:"name"`
	Order     string             `yaml:"order,omitempty"`
	Group     string             `yaml:"group,omitempty"`
	Arguments []AnalysisArgument `yaml:"arguments,omitempty"`
}

// NewAnalysis reads an analysis element. operations must be the enclosing
// call's complete operation list.
func NewAnalysis(el *xmldoc.Element, operations []*Operation) *Analysis {
	an := &Analysis{
		Name:  el.Attr("name"),
		Order: el.Attr("order"),
		Group: el.Attr("group"),
	}
	if group := el.Child(tagAnalysisArguments); group != nil {
		for _, child := range group.Children() {
			an.Arguments = append(an.Arguments, NewAnalysisArgument(child, operations))
		}
	}
	return an
}

// IsMappedToArgument reports whether any input of the analysis reads the
// named call argument, either directly or through a resolved operation.
func (a *Analysis) IsMappedToArgument(argument string) bool {
	if a == nil {
		return false
	}
	for _, arg := range a.Arguments {
		if arg.IsMappedToArgument(argument) {
			return true
		}
	}
	return false
}

// ShortName strips the group prefix up to and including the first ':'.
// Names without a prefix are returned unchanged.
func (a *Analysis) ShortName() string {
	if i := strings.Index(a.Name, ":"); i >= 0 {
		return a.Name[i+1:]
	}
	return a.Name
}

// DisplayName derives the label of the analysis without touching its state.
func (a *Analysis) DisplayName(showGroup, showOrder bool) string {
	out := a.Name
	if !showGroup {
		out = a.ShortName()
	}
	if showOrder {
		out += "(" + a.Order + ")"
	}
	return out
}
