package analysis_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cpnkit/cpn"
	"github.com/cpnkit/cpn/analysis"
)

// ring builds a three-place cycle: p1 -t1-> p2 -t2-> p3 -t3-> p1.
func ring() *analysis.Net {
	pp := make([]*cpn.Place, 3)
	for i := range pp {
		pp[i] = cpn.NewPlace(fmt.Sprintf("p%d", i+1), 0)
	}
	tt := make([]*cpn.Transition, 3)
	for i := range tt {
		tt[i] = cpn.NewTransition(fmt.Sprintf("t%d", i+1)).
			AddInput(cpn.In(pp[i])).
			AddOutput(cpn.Out(pp[(i+1)%3]))
	}
	net := cpn.NewNet("ring").WithPlaces(pp...).WithTransitions(tt...)
	return &analysis.Net{Net: net}
}

func ExampleNet_Incidence() {
	aNet := ring()
	inc := aNet.Incidence()
	fmt.Printf("┌%s┐\n", strings.Repeat(" ", 3*len(aNet.Places)-1))
	for i := range aNet.Transitions {
		fmt.Print("│")
		s := " "
		for j := range aNet.Places {
			if j == len(aNet.Places)-1 {
				s = ""
			}
			fmt.Printf("%2d%s", int(inc.At(i, j)), s)
		}
		fmt.Print("│\n")
	}
	fmt.Printf("└%s┘", strings.Repeat(" ", 3*len(aNet.Places)-1))
	// Output:
	// ┌        ┐
	// │-1  1  0│
	// │ 0 -1  1│
	// │ 1  0 -1│
	// └        ┘
}

func TestNet_Incidence_Weighted(t *testing.T) {
	in := cpn.NewPlace("in", 0)
	out := cpn.NewPlace("out", 0)
	tr := cpn.NewTransition("t").
		AddInput(cpn.In(in).WithWeight(2)).
		AddOutput(cpn.Out(out).WithWeight(3))
	net := &analysis.Net{Net: cpn.NewNet("w").WithPlaces(in, out).WithTransitions(tr)}

	inc := net.Incidence()
	if got := inc.At(0, 0); got != -2 {
		t.Errorf("inc[t,in] = %v, want -2", got)
	}
	if got := inc.At(0, 1); got != 3 {
		t.Errorf("inc[t,out] = %v, want 3", got)
	}
}

func TestNet_NextState(t *testing.T) {
	aNet := ring()
	next, ok := aNet.NextState(analysis.State{1, 0, 0}, aNet.Transitions[0])
	if !ok {
		t.Fatal("t1 should apply to {1,0,0}")
	}
	want := analysis.State{0, 1, 0}
	for i := range want {
		if next[i] != want[i] {
			t.Fatalf("next = %v, want %v", next, want)
		}
	}

	if _, ok := aNet.NextState(analysis.State{0, 0, 0}, aNet.Transitions[0]); ok {
		t.Error("t1 should not apply to the empty marking")
	}
}

func TestNet_Reachable(t *testing.T) {
	aNet := ring()
	if !aNet.Reachable(analysis.State{1, 0, 0}, analysis.State{0, 0, 1}, 5) {
		t.Error("{0,0,1} should be reachable from {1,0,0}")
	}
	if aNet.Reachable(analysis.State{1, 0, 0}, analysis.State{2, 0, 0}, 5) {
		t.Error("a cycle cannot mint tokens")
	}
}
