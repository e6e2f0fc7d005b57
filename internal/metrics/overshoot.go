// Package metrics provides run-level figures of merit computed from
// engine samples: overshoot, settling time, saturation duty and control
// effort.
package metrics

import (
	"math"

	"github.com/san-kum/motorlab/internal/engine"
)

// Overshoot reports the peak speed excursion beyond the reference as a
// fraction of the reference. Zero if the speed never exceeds it.
type Overshoot struct {
	ref      float64
	maxSpeed float64
}

func NewOvershoot() *Overshoot {
	return &Overshoot{}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s engine.Sample) {
	if s.RefSpeed != 0 {
		o.ref = s.RefSpeed
	}
	if math.Abs(s.Speed) > math.Abs(o.maxSpeed) {
		o.maxSpeed = s.Speed
	}
}

func (o *Overshoot) Value() float64 {
	if o.ref == 0 {
		return 0
	}
	over := (o.maxSpeed - o.ref) / o.ref
	if over < 0 {
		return 0
	}
	return over
}

func (o *Overshoot) Reset() {
	o.ref = 0
	o.maxSpeed = 0
}
