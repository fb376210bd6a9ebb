package sim

import (
	"github.com/shopspring/decimal"

	"github.com/cpnkit/cpn"
)

// Firing is one recorded step.
type Firing struct {
	Transition string
	Interior   bool
	// Delta is sum(outputWeights) - sum(inputWeights) for the fired
	// transition, observed as the whole-net token count change.
	Delta decimal.Decimal
}

// Trace accumulates exact token accounting over a run. Counts are decimals
// so aggregate statistics derived from them (averages, rates) stay exact
// over long runs.
type Trace struct {
	Steps    int
	Consumed decimal.Decimal
	Produced decimal.Decimal
	Firings  []Firing
}

func NewTrace() *Trace {
	return &Trace{
		Consumed: decimal.Zero,
		Produced: decimal.Zero,
	}
}

func (tr *Trace) Record(t *cpn.Transition, interior bool, delta int) {
	consumed := 0
	for _, a := range t.Inputs() {
		consumed += a.Weight()
	}
	produced := 0
	for _, a := range t.Outputs() {
		produced += a.Weight()
	}
	tr.Steps++
	tr.Consumed = tr.Consumed.Add(decimal.NewFromInt(int64(consumed)))
	tr.Produced = tr.Produced.Add(decimal.NewFromInt(int64(produced)))
	tr.Firings = append(tr.Firings, Firing{
		Transition: t.Name,
		Interior:   interior,
		Delta:      decimal.NewFromInt(int64(delta)),
	})
}

// NetDelta is the total token count change across the run.
func (tr *Trace) NetDelta() decimal.Decimal {
	return tr.Produced.Sub(tr.Consumed)
}

// MeanDelta is the average per-step token change, exact.
func (tr *Trace) MeanDelta() decimal.Decimal {
	if tr.Steps == 0 {
		return decimal.Zero
	}
	return tr.NetDelta().Div(decimal.NewFromInt(int64(tr.Steps)))
}
