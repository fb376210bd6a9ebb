package cpn

import "fmt"

var (
	_ Node = (*Transition)(nil)
)

// Transition is the active element of the net. It owns its arc lists and its
// declared color set; it references the places it touches only through its
// arcs.
//
// IsEnabled is a pure read; Fire mutates the connected places. The two calls
// together form the classic check-then-fire pair and must be serialized by
// the driving loop when transitions share places. Place locks make each
// individual operation atomic, not the pair.
type Transition struct {
	ID   string
	Name string

	colorSet ColorSet
	inputs   []*InputArc
	outputs  []*OutputArc
	net      *Net
}

// NewTransition creates a transition with the given declared color tags. No
// tags means an empty color set.
func NewTransition(name string, tags ...TokenType) *Transition {
	return &Transition{
		ID:       ID(),
		Name:     name,
		colorSet: NewColorSet(tags...),
	}
}

// AddInput appends an input arc. Arcs are evaluated in the order they were
// added.
func (t *Transition) AddInput(a *InputArc) *Transition {
	a.owner = t
	t.inputs = append(t.inputs, a)
	return t
}

// AddOutput appends an output arc.
func (t *Transition) AddOutput(a *OutputArc) *Transition {
	a.owner = t
	t.outputs = append(t.outputs, a)
	return t
}

// WithInputs appends input arcs through AddInput.
func (t *Transition) WithInputs(arcs ...*InputArc) *Transition {
	for _, a := range arcs {
		t.AddInput(a)
	}
	return t
}

// WithOutputs appends output arcs through AddOutput.
func (t *Transition) WithOutputs(arcs ...*OutputArc) *Transition {
	for _, a := range arcs {
		t.AddOutput(a)
	}
	return t
}

// Inputs returns the input arcs in declaration order.
func (t *Transition) Inputs() []*InputArc {
	out := make([]*InputArc, len(t.inputs))
	copy(out, t.inputs)
	return out
}

// Outputs returns the output arcs in declaration order.
func (t *Transition) Outputs() []*OutputArc {
	out := make([]*OutputArc, len(t.outputs))
	copy(out, t.outputs)
	return out
}

// SetColorSet replaces the declared color set.
func (t *Transition) SetColorSet(s ColorSet) *Transition {
	t.colorSet = s
	return t
}

// ColorSet returns the declared color set.
func (t *Transition) ColorSet() ColorSet {
	return t.colorSet
}

// arcEnv is the environment an input arc's expression sees: the
// representative payload under "value" and under the token's schema name.
func arcEnv(rep *Token) map[string]interface{} {
	return map[string]interface{}{
		"value":         rep.Value,
		rep.Schema.Name: rep.Value,
	}
}

// producedTags derives the color tags an input arc can synthesize from the
// representative token. With an expression the tags come from the elements of
// the evaluated result, otherwise from the payload itself. ok is false when
// the expression fails, which disables the arc.
func producedTags(a *InputArc, rep *Token) ([]TokenType, bool) {
	if !a.HasExpression() {
		tag, ok := TypeOf(rep.Value)
		if !ok {
			return nil, false
		}
		return []TokenType{tag}, true
	}
	out, err := a.Expression().Eval(arcEnv(rep))
	if err != nil {
		return nil, false
	}
	tags := make([]TokenType, 0, len(out))
	for _, v := range out {
		tag, ok := TypeOf(v)
		if !ok {
			return nil, false
		}
		tags = append(tags, tag)
	}
	return tags, true
}

// IsEnabled reports whether the transition may legally fire. It is a
// type-covering check: it walks the input arcs in order, proving that the
// available input data, after each arc's optional transform, covers every tag
// the declared color set demands. It short-circuits as soon as the cover is
// complete and never mutates any place, arc, or token.
//
// Any arc that cannot supply weight tokens, or whose expression fails to
// compile or evaluate against the representative payload, disables the whole
// transition.
func (t *Transition) IsEnabled() bool {
	if len(t.inputs) == 0 || len(t.outputs) == 0 {
		return false
	}
	required := t.colorSet
	for _, arc := range t.inputs {
		if arc.Place().TokenCount() < arc.Weight() {
			return false
		}
		if arc.HasExpression() {
			if err := arc.Expression().Validate(); err != nil {
				return false
			}
		}
		rep, ok := arc.Place().First()
		if !ok {
			return false
		}
		tags, ok := producedTags(arc, rep)
		if !ok {
			return false
		}
		required = required.Without(tags...)
		if required.Empty() {
			return true
		}
	}
	return false
}

// Fire consumes weight tokens per input arc and produces weight tokens per
// output arc. The caller must have observed IsEnabled; if the marking changed
// since the check, Fire fails with a recoverable error (wrapping
// ErrInsufficientTokens when a place came up short) and restores any tokens
// it already consumed.
//
// The returned bool reports whether the transition is an interior node: true
// when its output tokens feed a downstream transition, false when it is a
// sink. How the driving loop interprets that signal is its own concern.
func (t *Transition) Fire() (bool, error) {
	taken := make(map[*Place][]*Token)
	rollback := func() {
		for place, tt := range taken {
			_ = place.Add(tt...)
		}
	}

	env := map[string]interface{}{}
	var reps []*Token
	for _, arc := range t.inputs {
		rep, ok := arc.Place().First()
		if !ok {
			rollback()
			return false, fmt.Errorf("%w: place %s is empty", ErrInsufficientTokens, arc.Place().Name)
		}
		if arc.HasExpression() {
			if _, err := arc.Expression().Eval(arcEnv(rep)); err != nil {
				rollback()
				return false, fmt.Errorf("input arc from %s: %w", arc.Place().Name, err)
			}
		}
		tt, err := arc.Place().RemoveOf(rep.Color(), arc.Weight())
		if err != nil {
			rollback()
			return false, err
		}
		taken[arc.Place()] = append(taken[arc.Place()], tt...)
		reps = append(reps, rep)
		env[rep.Schema.Name] = rep.Value
		if _, ok := env["value"]; !ok {
			env["value"] = rep.Value
		}
	}

	type batch struct {
		place  *Place
		tokens []*Token
	}
	produced := make([]batch, 0, len(t.outputs))
	for _, arc := range t.outputs {
		tokens, err := t.produce(arc, env, reps)
		if err != nil {
			rollback()
			return false, err
		}
		produced = append(produced, batch{place: arc.Place(), tokens: tokens})
	}
	for i, b := range produced {
		if err := b.place.Add(b.tokens...); err != nil {
			// unwind the batches already added, then the consumed tokens
			for _, done := range produced[:i] {
				for _, tok := range done.tokens {
					done.place.removeByID(tok.ID)
				}
			}
			rollback()
			return false, err
		}
	}
	return t.interior(), nil
}

// produce builds the tokens one output arc contributes. With an expression
// the result elements become token values in turn; without one the first
// consumed value matching the declared color set is copied.
func (t *Transition) produce(arc *OutputArc, env map[string]interface{}, reps []*Token) ([]*Token, error) {
	if arc.HasExpression() {
		out, err := arc.Expression().Eval(env)
		if err != nil {
			return nil, fmt.Errorf("output arc to %s: %w", arc.Place().Name, err)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("output arc to %s: expression produced no values", arc.Place().Name)
		}
		tokens := make([]*Token, arc.Weight())
		for i := range tokens {
			v := out[i%len(out)]
			tag, ok := TypeOf(v)
			if !ok {
				return nil, fmt.Errorf("output arc to %s: no color tag for %T", arc.Place().Name, v)
			}
			tok, err := SchemaFor(tag).NewToken(v)
			if err != nil {
				return nil, err
			}
			tokens[i] = tok
		}
		return tokens, nil
	}

	rep := t.representative(reps)
	if rep == nil {
		return nil, fmt.Errorf("output arc to %s: no input value matches color set %s", arc.Place().Name, t.colorSet)
	}
	tokens := make([]*Token, arc.Weight())
	for i := range tokens {
		tok, err := rep.Schema.NewToken(rep.Value)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// representative picks the consumed token an expressionless output arc
// copies: the first whose color belongs to the declared set, or the first
// consumed token when the set is empty.
func (t *Transition) representative(reps []*Token) *Token {
	if len(reps) == 0 {
		return nil
	}
	if t.colorSet.Empty() {
		return reps[0]
	}
	for _, rep := range reps {
		if t.colorSet.Contains(rep.Color()) {
			return rep
		}
	}
	return nil
}

// interior reports whether the transition's outputs feed another transition.
// Without a net to consult, having output arcs at all counts as interior.
func (t *Transition) interior() bool {
	if t.net == nil {
		return len(t.outputs) > 0
	}
	for _, out := range t.outputs {
		if t.net.feedsForward(out.Place()) {
			return true
		}
	}
	return false
}

func (t *Transition) Kind() Kind { return TransitionNode }

func (t *Transition) Accept(v Visitor) error {
	return v.VisitTransition(t)
}

func (t *Transition) String() string {
	return t.Name
}
