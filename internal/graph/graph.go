package graph

import (
	"strconv"

	"specview/internal/spec"
)

// Node represents an argument, operation or analysis of one call.
type Node struct {
	ID string
	// Scope identifies the owning call instance, see CallScope.
	Scope string
	Call  string
	Kind  NodeKind
	Name  string
}

// Edge represents a directed mapping between two nodes of the same call.
type Edge struct {
	From string
	To   string
	Kind RelationKind
}

// Graph is the mapping graph of a loaded document.
type Graph struct {
	Nodes      map[string]*Node
	Edges      []Edge
	Unresolved []UnresolvedRelation

	// order keeps node IDs in insertion order.
	order []string
	calls int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []Edge{},
	}
}

// CallScope names one call instance. Calls may share a name, so the
// position of the call in the document is part of the scope.
func CallScope(index int, name string) string {
	return name + "@" + strconv.Itoa(index)
}

func ArgumentID(scope, name string) string {
	return scope + "/arg/" + name
}

func OperationID(scope string, key spec.OperationKey) string {
	return scope + "/op/" + key.String()
}

// AnalysisID identifies an analysis by its position since names may repeat.
func AnalysisID(scope string, index int, name string) string {
	return scope + "/analysis/" + strconv.Itoa(index) + ":" + name
}

// Build creates the mapping graph of the given calls.
func Build(calls []*spec.Call) *Graph {
	g := NewGraph()
	for _, call := range calls {
		g.AddCall(call)
	}
	return g
}

// AddCall adds the nodes and edges of one call, scoped by the number of
// calls added before it. Argument references are checked against the call's
// own arguments; those that match nothing are recorded as unresolved.
func (g *Graph) AddCall(call *spec.Call) {
	if call == nil {
		return
	}
	scope := CallScope(g.calls, call.Name)
	g.calls++

	node := func(id string, kind NodeKind, name string) {
		g.addNode(&Node{ID: id, Scope: scope, Call: call.Name, Kind: kind, Name: name})
	}
	for _, arg := range call.Arguments {
		node(ArgumentID(scope, arg.Name), KindArgument, arg.Name)
	}
	for _, op := range call.Operations {
		opID := OperationID(scope, op.Key())
		node(opID, KindOperation, op.Name)
		for _, name := range op.CallArgNames() {
			g.link(call, scope, opID, name, RelationConsumes)
		}
	}
	for i, an := range call.Analyses {
		anID := AnalysisID(scope, i, an.Name)
		node(anID, KindAnalysis, an.Name)
		for _, arg := range an.Arguments {
			if arg.Ref.Has(spec.RefArgument) {
				g.link(call, scope, anID, arg.ArgumentMapping, RelationInspects)
			}
			if !arg.Ref.Has(spec.RefOperation) {
				continue
			}
			if arg.Operation == nil {
				g.Unresolved = append(g.Unresolved, UnresolvedRelation{
					From:   anID,
					Target: arg.OperationRef.String(),
					Kind:   RelationUsesOperation,
					Reason: ReasonNoCandidate,
				})
				continue
			}
			g.addEdge(anID, OperationID(scope, arg.Operation.Key()), RelationUsesOperation)
		}
	}
}

func (g *Graph) link(call *spec.Call, scope, from, argument string, kind RelationKind) {
	if !call.HasArgument(argument) {
		g.Unresolved = append(g.Unresolved, UnresolvedRelation{
			From:   from,
			Target: argument,
			Kind:   kind,
			Reason: ReasonUnknownArgument,
		})
		return
	}
	g.addEdge(from, ArgumentID(scope, argument), kind)
}

func (g *Graph) addNode(node *Node) {
	if _, ok := g.Nodes[node.ID]; !ok {
		g.order = append(g.order, node.ID)
	}
	g.Nodes[node.ID] = node
}

func (g *Graph) addEdge(from, to string, kind RelationKind) {
	for _, edge := range g.Edges {
		if edge.From == from && edge.To == to && edge.Kind == kind {
			return
		}
	}
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
}

// OrderedNodes returns nodes in insertion order.
func (g *Graph) OrderedNodes() []*Node {
	result := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		result = append(result, g.Nodes[id])
	}
	return result
}

// GetDependents returns all nodes that map to the given node.
func (g *Graph) GetDependents(id string) []*Node {
	var deps []*Node
	for _, edge := range g.Edges {
		if edge.To == id {
			if node, ok := g.Nodes[edge.From]; ok {
				deps = append(deps, node)
			}
		}
	}
	return deps
}
