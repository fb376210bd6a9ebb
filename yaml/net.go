// Package yaml loads and saves declarative net definitions.
package yaml

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cpnkit/cpn"
)

type PlaceDef struct {
	Name string `yaml:"name"`
	// Color is the tag initial values are checked against. Empty means
	// infer each value's tag from the value itself.
	Color   string        `yaml:"color,omitempty"`
	Bound   int           `yaml:"bound,omitempty"`
	Initial []interface{} `yaml:"initial,omitempty"`
}

type ArcDef struct {
	Place      string `yaml:"place"`
	Weight     int    `yaml:"weight,omitempty"`
	Expression string `yaml:"expression,omitempty"`
}

type TransitionDef struct {
	Name    string   `yaml:"name"`
	Colors  []string `yaml:"colors,omitempty"`
	Inputs  []ArcDef `yaml:"inputs,omitempty"`
	Outputs []ArcDef `yaml:"outputs,omitempty"`
}

type NetDef struct {
	Name        string          `yaml:"name"`
	Places      []PlaceDef      `yaml:"places"`
	Transitions []TransitionDef `yaml:"transitions"`
}

type Service struct{}

var (
	_ cpn.Loader[*cpn.Net]  = (*Service)(nil)
	_ cpn.Flusher[*cpn.Net] = (*Service)(nil)
)

func (s *Service) Load(r io.Reader) (*cpn.Net, error) {
	dec := yaml.NewDecoder(r)
	var def NetDef
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	return Build(&def)
}

// Build turns a definition into a live net with its initial marking.
func Build(def *NetDef) (*cpn.Net, error) {
	net := cpn.NewNet(def.Name)
	for _, pd := range def.Places {
		p := cpn.NewPlace(pd.Name, pd.Bound)
		for _, v := range pd.Initial {
			tok, err := initialToken(&pd, v)
			if err != nil {
				return nil, err
			}
			if err := p.Add(tok); err != nil {
				return nil, fmt.Errorf("place %s: %w", pd.Name, err)
			}
		}
		net.WithPlaces(p)
	}
	for _, td := range def.Transitions {
		tags := make([]cpn.TokenType, len(td.Colors))
		for i, c := range td.Colors {
			tag, err := cpn.ParseTokenType(c)
			if err != nil {
				return nil, fmt.Errorf("transition %s: color %q: %w", td.Name, c, err)
			}
			tags[i] = tag
		}
		t := cpn.NewTransition(td.Name, tags...)
		for _, ad := range td.Inputs {
			p := net.Place(ad.Place)
			if p == nil {
				return nil, fmt.Errorf("transition %s: unknown place %q", td.Name, ad.Place)
			}
			arc := cpn.In(p).WithWeight(ad.Weight)
			if ad.Expression != "" {
				arc = arc.WithExpression(ad.Expression)
			}
			t.AddInput(arc)
		}
		for _, ad := range td.Outputs {
			p := net.Place(ad.Place)
			if p == nil {
				return nil, fmt.Errorf("transition %s: unknown place %q", td.Name, ad.Place)
			}
			arc := cpn.Out(p).WithWeight(ad.Weight)
			if ad.Expression != "" {
				arc = arc.WithExpression(ad.Expression)
			}
			t.AddOutput(arc)
		}
		net.WithTransitions(t)
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

func initialToken(pd *PlaceDef, v interface{}) (*cpn.Token, error) {
	var tag cpn.TokenType
	if pd.Color != "" {
		parsed, err := cpn.ParseTokenType(pd.Color)
		if err != nil {
			return nil, fmt.Errorf("place %s: color %q: %w", pd.Name, pd.Color, err)
		}
		tag = parsed
	} else {
		inferred, ok := cpn.TypeOf(v)
		if !ok {
			return nil, fmt.Errorf("place %s: no color tag for initial value %v (%T)", pd.Name, v, v)
		}
		tag = inferred
	}
	tok, err := cpn.SchemaFor(tag).NewToken(v)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", pd.Name, err)
	}
	return tok, nil
}

// tagOrder fixes the group order in flushed definitions.
var tagOrder = []cpn.TokenType{cpn.Float, cpn.Int, cpn.Str, cpn.Bool, cpn.Obj, cpn.Sig, cpn.TimeStamp}

func (s *Service) Flush(w io.Writer, net *cpn.Net) error {
	def := NetDef{Name: net.Name}
	for _, p := range net.Places {
		pd := PlaceDef{Name: p.Name, Bound: p.Bound}
		groups := p.Tokens()
		for _, tag := range tagOrder {
			for _, tok := range groups[tag] {
				pd.Initial = append(pd.Initial, tok.Value)
			}
		}
		// a single-color place round-trips its tag; mixed places leave
		// the tag to be re-inferred per value on load
		if len(groups) == 1 {
			if rep, ok := p.First(); ok {
				pd.Color = string(rep.Color())
			}
		}
		def.Places = append(def.Places, pd)
	}
	for _, t := range net.Transitions {
		td := TransitionDef{Name: t.Name}
		for _, tag := range t.ColorSet().Tags() {
			td.Colors = append(td.Colors, string(tag))
		}
		for _, a := range t.Inputs() {
			td.Inputs = append(td.Inputs, arcDef(a))
		}
		for _, a := range t.Outputs() {
			td.Outputs = append(td.Outputs, arcDef(a))
		}
		def.Transitions = append(def.Transitions, td)
	}
	enc := yaml.NewEncoder(w)
	defer func() {
		_ = enc.Close()
	}()
	return enc.Encode(&def)
}

func arcDef(a cpn.Arc) ArcDef {
	def := ArcDef{Place: a.Place().Name, Weight: a.Weight()}
	if a.HasExpression() {
		def.Expression = a.Expression().Source
	}
	return def
}
