// Package analysis derives linear-algebraic views of a net: the weighted
// incidence matrix, firing vectors, and the state equation they feed.
package analysis

import (
	"fmt"

	"github.com/cpnkit/cpn"
	"gonum.org/v1/gonum/mat"
)

type Net struct {
	*cpn.Net
}

// State is a token count per place, indexed by the net's place order.
type State []float64

// Marking captures the current token counts as a state vector.
func (net *Net) Marking() State {
	s := make(State, len(net.Places))
	for i, p := range net.Places {
		s[i] = float64(p.TokenCount())
	}
	return s
}

// FiringVector returns the unit row vector selecting transition t.
func (net *Net) FiringVector(t int) *mat.Dense {
	v := make([]float64, len(net.Transitions))
	v[t] = 1
	return mat.NewDense(1, len(net.Transitions), v)
}

func (net *Net) arcNet(t *cpn.Transition, p *cpn.Place) float64 {
	w := float64(0)
	for _, a := range t.Outputs() {
		if a.Place() == p {
			w += float64(a.Weight())
		}
	}
	for _, a := range t.Inputs() {
		if a.Place() == p {
			w -= float64(a.Weight())
		}
	}
	return w
}

// Incidence returns the transitions-by-places matrix of net token flow,
// weighted by arc weights.
func (net *Net) Incidence() *mat.Dense {
	m := len(net.Places)
	n := len(net.Transitions)
	d := make([]float64, m*n)
	for i, trans := range net.Transitions {
		for j, place := range net.Places {
			d[i*m+j] = net.arcNet(trans, place)
		}
	}
	return mat.NewDense(n, m, d)
}

// NextState applies the state equation for firing t from state s. ok is
// false when t is not structurally applicable (some place would go
// negative).
func (net *Net) NextState(s State, t *cpn.Transition) (State, bool) {
	var tIndex = -1
	for i := range net.Transitions {
		if net.Transitions[i] == t {
			tIndex = i
			break
		}
	}
	if tIndex < 0 {
		return nil, false
	}

	cur := mat.NewDense(1, len(s), s)
	f := net.FiringVector(tIndex)

	var flow mat.Dense
	flow.Mul(f, net.Incidence())

	var out mat.Dense
	out.Add(cur, &flow)

	next := make(State, len(s))
	for i := range next {
		next[i] = out.At(0, i)
		if next[i] < 0 {
			return nil, false
		}
	}
	return next, true
}

func (s State) key() string {
	return fmt.Sprint([]float64(s))
}

func (s State) equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Reachable reports whether target can be reached from initial by firing
// structurally applicable transitions, exploring at most maxDepth firings
// deep. It works on counts only; color constraints can still rule a path
// out at run time.
func (net *Net) Reachable(initial, target State, maxDepth int) bool {
	type node struct {
		state State
		depth int
	}
	visited := map[string]bool{initial.key(): true}
	frontier := []node{{state: initial}}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if cur.state.equal(target) {
			return true
		}
		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}
		for _, t := range net.Transitions {
			next, ok := net.NextState(cur.state, t)
			if !ok || visited[next.key()] {
				continue
			}
			visited[next.key()] = true
			frontier = append(frontier, node{state: next, depth: cur.depth + 1})
		}
	}
	return false
}
