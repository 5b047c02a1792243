package task

// Type names a learning problem.
type Type string

const (
	NodeClassification          Type = "NodeClassification"
	NodeRegression              Type = "NodeRegression"
	GraphClassification         Type = "GraphClassification"
	GraphRegression             Type = "GraphRegression"
	TimeDependentLinkPrediction Type = "TimeDependentLinkPrediction"
	LinkPrediction              Type = "LinkPrediction"
	KGEntityPrediction          Type = "KGEntityPrediction"
	KGRelationPrediction        Type = "KGRelationPrediction"
)

// Family groups task types by the graph element they predict on.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNode
	FamilyGraph
	FamilyEdge
)

func (f Family) String() string {
	switch f {
	case FamilyNode:
		return "node"
	case FamilyGraph:
		return "graph"
	case FamilyEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Family returns the family of t, or FamilyUnknown for a type outside the
// known set.
func (t Type) Family() Family {
	switch t {
	case NodeClassification, NodeRegression:
		return FamilyNode
	case GraphClassification, GraphRegression:
		return FamilyGraph
	case TimeDependentLinkPrediction, LinkPrediction, KGEntityPrediction, KGRelationPrediction:
		return FamilyEdge
	default:
		return FamilyUnknown
	}
}

// Valid reports whether t is a known task type.
func (t Type) Valid() bool { return t.Family() != FamilyUnknown }

// IsKG reports whether t is a knowledge-graph task.
func (t Type) IsKG() bool {
	return t == KGEntityPrediction || t == KGRelationPrediction
}

// Types lists every known task type.
func Types() []Type {
	return []Type{
		NodeClassification, NodeRegression,
		GraphClassification, GraphRegression,
		TimeDependentLinkPrediction, LinkPrediction,
		KGEntityPrediction, KGRelationPrediction,
	}
}
