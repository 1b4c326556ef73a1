package spec

import "specview/internal/xmldoc"

// Tags and attributes as they appear after tag normalization.
const (
	tagFunctionArguments  = "function_arguments"
	tagOperations         = "operations"
	tagAnalyses           = "analyses"
	tagOperationArguments = "operation_arguments"
	tagAnalysisArguments  = "analysis_arguments"
	tagCallArgName        = "call_arg_name"
	tagOpName             = "op_name"
	attrAnalysisArgOrder  = "analysis_arg_order"
)

// Call is the aggregate root for one API call of the specification.
// It is built once from its element and not modified afterwards.
type Call struct {
	Name            string       `yaml:"name"`
	ReturnType      string       `yaml:"return_type,omitempty"`
	WrappEverywhere Flag         `yaml:"wrapp_everywhere"`
	IsFinalizer     Flag         `yaml:"is_finalizer"`
	Arguments       []Argument   `yaml:"arguments,omitempty"`
	Operations      []*Operation `yaml:"operations,omitempty"`
	Analyses        []*Analysis  `yaml:"analyses,omitempty"`
}

// NewCall builds a call from its element. Arguments and operations are read
// before analyses, which resolve their operation references against the
// finished operation list. Group sizes are recorded in stats when non-nil.
func NewCall(el *xmldoc.Element, stats *Stats) *Call {
	call := &Call{
		Name:            el.Attr("name"),
		ReturnType:      el.Attr("return-type"),
		WrappEverywhere: NewFlag(el.Attr("wrapp-everywhere")),
		IsFinalizer:     NewFlag(el.Attr("is-finalizer")),
	}

	if group := el.Child(tagFunctionArguments); group != nil {
		children := group.Children()
		stats.observeArguments(len(children))
		for _, child := range children {
			call.Arguments = append(call.Arguments, NewArgument(child))
		}
	}
	if group := el.Child(tagOperations); group != nil {
		children := group.Children()
		stats.observeOperations(len(children))
		for _, child := range children {
			call.Operations = append(call.Operations, NewOperation(child))
		}
	}
	if group := el.Child(tagAnalyses); group != nil {
		children := group.Children()
		stats.observeAnalyses(len(children))
		for _, child := range children {
			call.Analyses = append(call.Analyses, NewAnalysis(child, call.Operations))
		}
	}
	return call
}

// Argument looks up a call argument by name.
func (c *Call) Argument(name string) (Argument, bool) {
	for _, arg := range c.Arguments {
		if arg.Name == name {
			return arg, true
		}
	}
	return Argument{}, false
}

// HasArgument reports whether the call declares an argument with that name.
func (c *Call) HasArgument(name string) bool {
	_, ok := c.Argument(name)
	return ok
}

// Operation returns the first operation with the given key, or nil.
func (c *Call) Operation(key OperationKey) *Operation {
	return findOperation(c.Operations, key)
}

// MappedAnalyses returns the analyses mapped to the named argument, in order.
func (c *Call) MappedAnalyses(argument string) []*Analysis {
	var result []*Analysis
	for _, an := range c.Analyses {
		if an.IsMappedToArgument(argument) {
			result = append(result, an)
		}
	}
	return result
}

// MappedOperations returns the operations consuming the named argument, in order.
func (c *Call) MappedOperations(argument string) []*Operation {
	var result []*Operation
	for _, op := range c.Operations {
		if op.IsMappedToArgument(argument) {
			result = append(result, op)
		}
	}
	return result
}
