package cpn

import "fmt"

// Arc is the common view over input and output arcs. The owning transition is
// the implicit other endpoint; Place is a back-reference, not ownership.
type Arc interface {
	Node
	Place() *Place
	Weight() int
	HasExpression() bool
	Expression() *Expression
	Owner() *Transition
}

var (
	_ Arc = (*InputArc)(nil)
	_ Arc = (*OutputArc)(nil)
)

// InputArc carries tokens from a place into a transition. The expression, if
// present, is both the enabling guard and the rule for which derived values
// are consumed.
type InputArc struct {
	id     string
	place  *Place
	weight int
	expr   *Expression
	owner  *Transition
}

// In creates an input arc from place with weight 1 and no expression.
func In(place *Place) *InputArc {
	return &InputArc{
		id:     ID(),
		place:  place,
		weight: 1,
	}
}

// WithWeight sets the arc weight. Weights below 1 are normalized to 1.
func (a *InputArc) WithWeight(w int) *InputArc {
	if w < 1 {
		w = 1
	}
	a.weight = w
	return a
}

// WithExpression attaches a transform expression to the arc.
func (a *InputArc) WithExpression(source string) *InputArc {
	a.expr = NewExpression(source)
	return a
}

func (a *InputArc) Place() *Place           { return a.place }
func (a *InputArc) Weight() int             { return a.weight }
func (a *InputArc) HasExpression() bool     { return a.expr != nil }
func (a *InputArc) Expression() *Expression { return a.expr }
func (a *InputArc) Owner() *Transition      { return a.owner }

func (a *InputArc) Kind() Kind { return ArcNode }

func (a *InputArc) Accept(v Visitor) error {
	return v.VisitArc(a)
}

func (a *InputArc) String() string {
	owner := "?"
	if a.owner != nil {
		owner = a.owner.Name
	}
	return fmt.Sprintf("%s -> %s", a.place.Name, owner)
}

// OutputArc carries tokens produced by a transition into a place. The
// expression, if present, is the production rule applied to the collected
// input values.
type OutputArc struct {
	id     string
	place  *Place
	weight int
	expr   *Expression
	owner  *Transition
}

// Out creates an output arc to place with weight 1 and no expression.
func Out(place *Place) *OutputArc {
	return &OutputArc{
		id:     ID(),
		place:  place,
		weight: 1,
	}
}

// WithWeight sets the arc weight. Weights below 1 are normalized to 1.
func (a *OutputArc) WithWeight(w int) *OutputArc {
	if w < 1 {
		w = 1
	}
	a.weight = w
	return a
}

// WithExpression attaches a production expression to the arc.
func (a *OutputArc) WithExpression(source string) *OutputArc {
	a.expr = NewExpression(source)
	return a
}

func (a *OutputArc) Place() *Place           { return a.place }
func (a *OutputArc) Weight() int             { return a.weight }
func (a *OutputArc) HasExpression() bool     { return a.expr != nil }
func (a *OutputArc) Expression() *Expression { return a.expr }
func (a *OutputArc) Owner() *Transition      { return a.owner }

func (a *OutputArc) Kind() Kind { return ArcNode }

func (a *OutputArc) Accept(v Visitor) error {
	return v.VisitArc(a)
}

func (a *OutputArc) String() string {
	owner := "?"
	if a.owner != nil {
		owner = a.owner.Name
	}
	return fmt.Sprintf("%s -> %s", owner, a.place.Name)
}
