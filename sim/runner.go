// Package sim drives a net: it repeatedly scans the enabled transitions,
// picks one by policy, and fires it. The loop is single-threaded and
// serializes every check-then-fire pair over the places the net touches,
// so transitions sharing a place cannot race each other here.
package sim

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cpnkit/cpn"
)

// Policy selects which enabled transition fires next. The enabled slice is
// never empty.
type Policy interface {
	Select(enabled []*cpn.Transition) *cpn.Transition
}

// FirstEnabled always fires the earliest-registered enabled transition.
type FirstEnabled struct{}

func (FirstEnabled) Select(enabled []*cpn.Transition) *cpn.Transition {
	return enabled[0]
}

// RoundRobin rotates through the enabled transitions across steps.
type RoundRobin struct {
	i int
}

func (r *RoundRobin) Select(enabled []*cpn.Transition) *cpn.Transition {
	t := enabled[r.i%len(enabled)]
	r.i++
	return t
}

type Runner struct {
	net    *cpn.Net
	policy Policy
	logger *zap.Logger
}

type Option func(*Runner)

func WithPolicy(p Policy) Option {
	return func(r *Runner) {
		r.policy = p
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

func New(net *cpn.Net, opts ...Option) *Runner {
	r := &Runner{
		net:    net,
		policy: FirstEnabled{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fires transitions until the net deadlocks, a sink fires, maxSteps is
// reached (0 means unbounded), or ctx is cancelled. A recoverable firing
// failure re-scans instead of aborting.
func (r *Runner) Run(ctx context.Context, maxSteps int) (*Trace, error) {
	trace := NewTrace()
	for step := 0; maxSteps <= 0 || step < maxSteps; step++ {
		select {
		case <-ctx.Done():
			return trace, ctx.Err()
		default:
		}
		enabled := r.net.Enabled()
		if len(enabled) == 0 {
			r.logger.Info("no enabled transitions", zap.Int("steps", trace.Steps))
			return trace, nil
		}
		t := r.policy.Select(enabled)
		before := r.net.TokenCount()
		interior, err := t.Fire()
		if err != nil {
			if errors.Is(err, cpn.ErrInsufficientTokens) {
				r.logger.Warn("transition lost its tokens between check and fire",
					zap.String("transition", t.Name),
					zap.Error(err))
				continue
			}
			return trace, err
		}
		after := r.net.TokenCount()
		trace.Record(t, interior, after-before)
		r.logger.Info("fired",
			zap.String("transition", t.Name),
			zap.Bool("interior", interior),
			zap.Int("tokens", after),
			zap.Int("delta", after-before))
		if !interior {
			r.logger.Info("sink fired, stopping", zap.String("transition", t.Name))
			return trace, nil
		}
	}
	return trace, nil
}
