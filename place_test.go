package cpn_test

import (
	"errors"
	"testing"

	"github.com/cpnkit/cpn"
)

func TestPlace_GroupsByColor(t *testing.T) {
	p := cpn.NewPlace("p", 0)
	one, _ := cpn.Integer().NewToken(1)
	two, _ := cpn.Integer().NewToken(2)
	hello, _ := cpn.String().NewToken("hello")
	if err := p.Add(one, hello, two); err != nil {
		t.Fatal(err)
	}

	if got := p.TokenCount(); got != 3 {
		t.Errorf("TokenCount = %d, want 3", got)
	}
	if got := p.TokenCountOf(cpn.Int); got != 2 {
		t.Errorf("TokenCountOf(integer) = %d, want 2", got)
	}
	if got := p.TokenCountOf(cpn.Str); got != 1 {
		t.Errorf("TokenCountOf(string) = %d, want 1", got)
	}
	if got := p.TokenCountOf(cpn.Float); got != 0 {
		t.Errorf("TokenCountOf(float) = %d, want 0", got)
	}
}

func TestPlace_FirstIsDeterministic(t *testing.T) {
	p := cpn.NewPlace("p", 0)
	if _, ok := p.First(); ok {
		t.Error("empty place returned a representative")
	}

	// integer group was inserted first, so its oldest token is the
	// representative even after other colors arrive
	one, _ := cpn.Integer().NewToken(1)
	hello, _ := cpn.String().NewToken("hello")
	two, _ := cpn.Integer().NewToken(2)
	for _, tok := range []*cpn.Token{one, hello, two} {
		if err := p.Add(tok); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 5; i++ {
		rep, ok := p.First()
		if !ok {
			t.Fatal("no representative")
		}
		if rep.ID != one.ID {
			t.Fatalf("representative = %s, want first inserted integer", rep)
		}
	}
}

func TestPlace_RemoveOf(t *testing.T) {
	p := cpn.NewPlace("p", 0)
	one, _ := cpn.Integer().NewToken(1)
	two, _ := cpn.Integer().NewToken(2)
	if err := p.Add(one, two); err != nil {
		t.Fatal(err)
	}

	taken, err := p.RemoveOf(cpn.Int, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(taken) != 1 || taken[0].Value != 1 {
		t.Errorf("removed %v, want oldest token 1", taken)
	}

	if _, err := p.RemoveOf(cpn.Int, 2); !errors.Is(err, cpn.ErrInsufficientTokens) {
		t.Errorf("err = %v, want ErrInsufficientTokens", err)
	}
	if got := p.TokenCount(); got != 1 {
		t.Errorf("failed remove changed the marking: %d tokens", got)
	}
}

func TestPlace_Bound(t *testing.T) {
	p := cpn.NewPlace("p", 2)
	one, _ := cpn.Integer().NewToken(1)
	two, _ := cpn.Integer().NewToken(2)
	three, _ := cpn.Integer().NewToken(3)
	if err := p.Add(one, two); err != nil {
		t.Fatal(err)
	}
	if err := p.Add(three); !errors.Is(err, cpn.ErrPlaceFull) {
		t.Errorf("err = %v, want ErrPlaceFull", err)
	}
	if got := p.TokenCount(); got != 2 {
		t.Errorf("failed add changed the marking: %d tokens", got)
	}
}
