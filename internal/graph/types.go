package graph

type RelationKind string

const (
	RelationInspects      RelationKind = "inspects"
	RelationUsesOperation RelationKind = "uses_operation"
	RelationConsumes      RelationKind = "consumes"
)

type NodeKind string

const (
	KindArgument  NodeKind = "argument"
	KindOperation NodeKind = "operation"
	KindAnalysis  NodeKind = "analysis"
)

type UnresolvedReason string

const (
	ReasonNoCandidate     UnresolvedReason = "no_candidate"
	ReasonUnknownArgument UnresolvedReason = "unknown_argument"
)

// UnresolvedRelation is a reference that did not find its target.
type UnresolvedRelation struct {
	From   string           `json:"from" yaml:"from"`
	Target string           `json:"target" yaml:"target"`
	Kind   RelationKind     `json:"kind" yaml:"kind"`
	Reason UnresolvedReason `json:"reason" yaml:"reason"`
}
