package engine

import "math"

// Inputs are the per-run scalars. Bandwidths are rad/s and must be
// positive and finite; the reference speed is RPM and may be any finite
// value including zero or negative (reverse rotation).
type Inputs struct {
	CurrentBandwidth float64
	SpeedBandwidth   float64
	ReferenceRPM     float64
}

func (in Inputs) validate() error {
	if !(in.CurrentBandwidth > 0) || math.IsInf(in.CurrentBandwidth, 0) {
		return invalidParam("current-loop bandwidth must be positive and finite, got %g", in.CurrentBandwidth)
	}
	if !(in.SpeedBandwidth > 0) || math.IsInf(in.SpeedBandwidth, 0) {
		return invalidParam("speed-loop bandwidth must be positive and finite, got %g", in.SpeedBandwidth)
	}
	if math.IsNaN(in.ReferenceRPM) || math.IsInf(in.ReferenceRPM, 0) {
		return invalidParam("reference speed must be finite, got %g", in.ReferenceRPM)
	}
	return nil
}

// Trace is the run output: five parallel sequences, one entry per
// integration step. Speeds are RPM; voltage and torque carry the display
// scale factors from the units package.
type Trace struct {
	Times    []float64
	SpeedRPM []float64
	RefRPM   []float64
	Voltage  []float64
	Torque   []float64
}

func newTrace(capacity int) *Trace {
	return &Trace{
		Times:    make([]float64, 0, capacity),
		SpeedRPM: make([]float64, 0, capacity),
		RefRPM:   make([]float64, 0, capacity),
		Voltage:  make([]float64, 0, capacity),
		Torque:   make([]float64, 0, capacity),
	}
}

func (tr *Trace) append(t, speedRPM, refRPM, voltage, torque float64) {
	tr.Times = append(tr.Times, t)
	tr.SpeedRPM = append(tr.SpeedRPM, speedRPM)
	tr.RefRPM = append(tr.RefRPM, refRPM)
	tr.Voltage = append(tr.Voltage, voltage)
	tr.Torque = append(tr.Torque, torque)
}

// Len returns the number of recorded steps.
func (tr *Trace) Len() int { return len(tr.Times) }

// IsValid reports whether every recorded value is finite. A false result
// means the integration diverged for the chosen step size or parameters.
func (tr *Trace) IsValid() bool {
	for _, seq := range [][]float64{tr.Times, tr.SpeedRPM, tr.RefRPM, tr.Voltage, tr.Torque} {
		for _, v := range seq {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Sample is the SI-domain view of one completed step, handed to metrics
// and observers. Command fields are post-clamp values.
type Sample struct {
	Step       int
	Time       float64
	RefSpeed   float64 // staged reference, rad/s
	Speed      float64 // mechanical speed after the plant update, rad/s
	Current    float64 // armature current after the plant update, A
	TorqueCmd  float64 // clamped speed-loop output, Nm
	CurrentRef float64 // clamped current reference, A
	Voltage    float64 // clamped terminal voltage, V
	Torque     float64 // electromagnetic torque used this step, Nm
}

// Metric accumulates a scalar over the samples of one run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer receives every sample as the run progresses.
type Observer interface {
	OnStep(s Sample)
}

// Result bundles the trace with the final metric values.
type Result struct {
	Trace   *Trace
	Metrics map[string]float64
}
