package spec

import "specview/internal/xmldoc"

// OperationKey is the natural key analysis arguments use to locate an operation.
type OperationKey struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group"`
	ID    string `yaml:"id"`
}

func (k OperationKey) String() string {
	return k.Name + "#" + k.Group + ":" + k.ID
}

// OperationArgument binds one operation input to a call argument by name.
type OperationArgument struct {
	Order string `yaml:"order,omitempty"`
	// CallArgName references a call argument by name; it is never validated.
	CallArgName string `yaml:"call_arg_name"`
}

// Operation is a low-level action associated with a call.
type Operation struct {
	Name      string              `yaml:"name"`
	Group     string              `yaml:"group"`
	ID        string              `yaml:"id"`
	Order     string              `yaml:"order,omitempty"`
	Arguments []OperationArgument `yaml:"arguments,omitempty"`
}

// NewOperation reads an operation element with its operation_arguments group.
func NewOperation(el *xmldoc.Element) *Operation {
	op := &Operation{
		Order: el.Attr("order"),
		Name:  el.Attr("name"),
		Group: el.Attr("group"),
		ID:    el.Attr("id"),
	}
	if group := el.Child(tagOperationArguments); group != nil {
		for _, child := range group.Children() {
			op.Arguments = append(op.Arguments, OperationArgument{
				Order:       child.Attr("op-arg-order"),
				CallArgName: child.Child(tagCallArgName).Text(),
			})
		}
	}
	return op
}

// Key returns the (name, group, id) triple of the operation.
func (o *Operation) Key() OperationKey {
	return OperationKey{Name: o.Name, Group: o.Group, ID: o.ID}
}

// IsMappedToArgument reports whether any operation argument consumes the named call argument.
func (o *Operation) IsMappedToArgument(argument string) bool {
	if o == nil {
		return false
	}
	for _, arg := range o.Arguments {
		if arg.CallArgName == argument {
			return true
		}
	}
	return false
}

// CallArgNames returns the referenced call argument names in declaration order.
func (o *Operation) CallArgNames() []string {
	if o == nil {
		return nil
	}
	names := make([]string, 0, len(o.Arguments))
	for _, arg := range o.Arguments {
		names = append(names, arg.CallArgName)
	}
	return names
}

// findOperation returns the first operation whose key equals key exactly.
func findOperation(operations []*Operation, key OperationKey) *Operation {
	for _, op := range operations {
		if op.Name == key.Name && op.Group == key.Group && op.ID == key.ID {
			return op
		}
	}
	return nil
}
