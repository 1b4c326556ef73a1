package graph

func (g *Graph) UnresolvedReasonCounts() map[UnresolvedReason]int {
	counts := make(map[UnresolvedReason]int)
	if g == nil {
		return counts
	}
	for _, u := range g.Unresolved {
		reason := u.Reason
		if reason == "" {
			reason = ReasonNoCandidate
		}
		counts[reason]++
	}
	return counts
}

func (g *Graph) EdgeKindCounts() map[RelationKind]int {
	counts := make(map[RelationKind]int)
	if g == nil {
		return counts
	}
	for _, e := range g.Edges {
		counts[e.Kind]++
	}
	return counts
}

// UnmappedArguments returns the argument nodes no operation or analysis reads,
// in insertion order.
func (g *Graph) UnmappedArguments() []*Node {
	var result []*Node
	if g == nil {
		return result
	}
	for _, node := range g.OrderedNodes() {
		if node.Kind == KindArgument && len(g.GetDependents(node.ID)) == 0 {
			result = append(result, node)
		}
	}
	return result
}
