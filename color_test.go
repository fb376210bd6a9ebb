package cpn_test

import (
	"testing"

	"github.com/cpnkit/cpn"
)

func TestTypeOf_FloatIsNotNumber(t *testing.T) {
	tag, ok := cpn.TypeOf(1.5)
	if !ok || tag != cpn.Float {
		t.Errorf("TypeOf(1.5) = %s, want float", tag)
	}
	tag, ok = cpn.TypeOf(1)
	if !ok || tag != cpn.Int {
		t.Errorf("TypeOf(1) = %s, want integer", tag)
	}
	if _, ok := cpn.TypeOf(struct{}{}); ok {
		t.Error("TypeOf accepted a value outside the closed enumeration")
	}
}

func TestColorSet_Order(t *testing.T) {
	s := cpn.NewColorSet(cpn.Int, cpn.Str, cpn.Int, cpn.Float)
	tags := s.Tags()
	want := []cpn.TokenType{cpn.Int, cpn.Str, cpn.Float}
	if len(tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("Tags = %v, want %v", tags, want)
		}
	}
}

func TestColorSet_Without(t *testing.T) {
	s := cpn.NewColorSet(cpn.Int, cpn.Str, cpn.Float)
	rest := s.Without(cpn.Str)
	if rest.Contains(cpn.Str) {
		t.Error("difference kept a removed tag")
	}
	if !rest.Contains(cpn.Int) || !rest.Contains(cpn.Float) {
		t.Error("difference dropped a kept tag")
	}
	if s.Len() != 3 {
		t.Error("Without mutated the receiver")
	}
	if !s.Without(cpn.Int, cpn.Str, cpn.Float).Empty() {
		t.Error("removing every tag should leave the empty set")
	}
}

func TestTokenType_IsValid(t *testing.T) {
	cases := []struct {
		tag   cpn.TokenType
		value interface{}
		want  bool
	}{
		{cpn.Float, 1.5, true},
		{cpn.Float, 1, false},
		{cpn.Int, int64(2), true},
		{cpn.Int, "2", false},
		{cpn.Str, "hi", true},
		{cpn.Bool, true, true},
		{cpn.Obj, map[string]interface{}{"a": 1}, true},
		{cpn.Obj, "not a map", false},
	}
	for _, c := range cases {
		if got := c.tag.IsValid(c.value); got != c.want {
			t.Errorf("%s.IsValid(%v) = %v, want %v", c.tag, c.value, got, c.want)
		}
	}
}

func TestParseTokenType(t *testing.T) {
	for _, s := range []string{"float", "integer", "string", "boolean", "object", "signal", "time"} {
		if _, err := cpn.ParseTokenType(s); err != nil {
			t.Errorf("ParseTokenType(%q): %v", s, err)
		}
	}
	if _, err := cpn.ParseTokenType("double"); err == nil {
		t.Error("ParseTokenType accepted an unknown tag")
	}
}
