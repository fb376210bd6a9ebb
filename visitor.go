package cpn

// Kind discriminates node types for callers that cannot type-switch.
type Kind int

const (
	PlaceNode Kind = iota
	TransitionNode
	ArcNode
)

// Visitor is the capability interface for net-wide traversal. Each node type
// resolves double dispatch by calling back the matching method from Accept.
// Visitors read the nodes they are handed; they must not mutate them.
type Visitor interface {
	VisitPlace(p *Place) error
	VisitTransition(t *Transition) error
	VisitArc(a Arc) error
}

// Node is anything a Visitor can be dispatched to.
type Node interface {
	Kind() Kind
	Accept(v Visitor) error
	String() string
}
