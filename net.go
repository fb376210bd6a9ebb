package cpn

import (
	"errors"
	"fmt"
	"io"
)

// Net is a registry of places and transitions. Arcs live on the transitions;
// the net only indexes them for traversal and for the sink/interior signal.
type Net struct {
	ID          string
	Name        string
	Places      []*Place
	Transitions []*Transition
}

func NewNet(name string) *Net {
	return &Net{
		ID:   ID(),
		Name: name,
	}
}

// WithPlaces registers places.
func (n *Net) WithPlaces(pp ...*Place) *Net {
	n.Places = append(n.Places, pp...)
	return n
}

// WithTransitions registers transitions and attaches them to the net so their
// Fire calls can report the interior/sink signal against the whole net.
func (n *Net) WithTransitions(tt ...*Transition) *Net {
	for _, t := range tt {
		t.net = n
	}
	n.Transitions = append(n.Transitions, tt...)
	return n
}

// Place looks a place up by name.
func (n *Net) Place(name string) *Place {
	for _, p := range n.Places {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Transition looks a transition up by name.
func (n *Net) Transition(name string) *Transition {
	for _, t := range n.Transitions {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Enabled returns the currently enabled transitions in registration order.
func (n *Net) Enabled() []*Transition {
	out := make([]*Transition, 0)
	for _, t := range n.Transitions {
		if t.IsEnabled() {
			out = append(out, t)
		}
	}
	return out
}

// TokenCount returns the total number of tokens across all places.
func (n *Net) TokenCount() int {
	total := 0
	for _, p := range n.Places {
		total += p.TokenCount()
	}
	return total
}

// feedsForward reports whether some transition reads from p.
func (n *Net) feedsForward(p *Place) bool {
	for _, t := range n.Transitions {
		for _, in := range t.inputs {
			if in.Place() == p {
				return true
			}
		}
	}
	return false
}

// Validate checks structural soundness: unique names, arcs pointing at
// registered places.
func (n *Net) Validate() error {
	seen := make(map[string]bool)
	for _, p := range n.Places {
		if seen[p.Name] {
			return fmt.Errorf("duplicate place %q", p.Name)
		}
		seen[p.Name] = true
	}
	registered := func(p *Place) bool {
		for _, q := range n.Places {
			if q == p {
				return true
			}
		}
		return false
	}
	seen = make(map[string]bool)
	for _, t := range n.Transitions {
		if seen[t.Name] {
			return fmt.Errorf("duplicate transition %q", t.Name)
		}
		seen[t.Name] = true
		for _, a := range t.inputs {
			if !registered(a.Place()) {
				return fmt.Errorf("transition %q reads from unregistered place %q", t.Name, a.Place().Name)
			}
		}
		for _, a := range t.outputs {
			if !registered(a.Place()) {
				return fmt.Errorf("transition %q writes to unregistered place %q", t.Name, a.Place().Name)
			}
		}
	}
	return nil
}

// Accept walks the net: places first, then transitions, then each
// transition's arcs (inputs before outputs, in declaration order).
func (n *Net) Accept(v Visitor) error {
	for _, p := range n.Places {
		if err := p.Accept(v); err != nil {
			return err
		}
	}
	for _, t := range n.Transitions {
		if err := t.Accept(v); err != nil {
			return err
		}
	}
	for _, t := range n.Transitions {
		for _, a := range t.inputs {
			if err := a.Accept(v); err != nil {
				return err
			}
		}
		for _, a := range t.outputs {
			if err := a.Accept(v); err != nil {
				return err
			}
		}
	}
	return nil
}

var ErrNotFound = errors.New("not found")

// Loader reads a value from a definition stream.
type Loader[T any] interface {
	Load(io.Reader) (T, error)
}

// Flusher writes a value to a definition stream.
type Flusher[T any] interface {
	Flush(io.Writer, T) error
}
