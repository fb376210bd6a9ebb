package cpn_test

import (
	"testing"

	"github.com/cpnkit/cpn"
)

func TestExpression_Eval(t *testing.T) {
	env := map[string]interface{}{"value": 3}

	scalar := cpn.NewExpression("value * 2")
	out, err := scalar.Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 6 {
		t.Errorf("out = %v, want [6]", out)
	}

	seq := cpn.NewExpression(`[value, "x"]`)
	out, err = seq.Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("out = %v, want two elements", out)
	}
}

func TestExpression_Validate(t *testing.T) {
	if err := cpn.NewExpression("value + 1").Validate(); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := cpn.NewExpression("value +").Validate(); err == nil {
		t.Error("invalid expression accepted")
	}
}

func TestExpression_ErrorsDoNotEscape(t *testing.T) {
	e := cpn.NewExpression("value / 0")
	if _, err := e.Eval(map[string]interface{}{"value": 1}); err == nil {
		t.Error("division by zero should surface as an error")
	}
}
