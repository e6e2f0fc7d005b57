package engine

import (
	"context"

	"github.com/san-kum/motorlab/internal/motor"
)

// Engine runs full-horizon simulations against one motor design and one
// set of run constants.
type Engine struct {
	params    motor.Parameters
	cfg       Config
	metrics   []Metric
	observers []Observer
}

// New returns an engine for the given motor and constants.
func New(p motor.Parameters, cfg Config) *Engine {
	return &Engine{
		params:    p,
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Start validates the inputs and returns a fresh Run positioned at t=0.
// Used by callers that step the simulation themselves (live views).
func (e *Engine) Start(in Inputs) (*Run, error) {
	if err := e.cfg.validate(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return newRun(e.params, e.cfg, in), nil
}

// Run integrates the full horizon in one pass and returns the trace with
// final metric values. Cancellation is checked between steps only; the
// per-step algorithm is untouched by it. On cancellation the partial
// result is returned alongside the context error.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	r, err := e.Start(in)
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	for !r.Done() {
		select {
		case <-ctx.Done():
			return e.result(r), ctx.Err()
		default:
		}

		s := r.Step()

		for _, m := range e.metrics {
			m.Observe(s)
		}
		for _, obs := range e.observers {
			obs.OnStep(s)
		}
	}

	return e.result(r), nil
}

func (e *Engine) result(r *Run) *Result {
	res := &Result{
		Trace:   r.Trace(),
		Metrics: make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
