package engine

import (
	"github.com/san-kum/motorlab/internal/control"
	"github.com/san-kum/motorlab/internal/motor"
	"github.com/san-kum/motorlab/internal/units"
)

// Run is one simulation in progress. It owns its controller and plant
// state exclusively; allocate a fresh Run per simulation.
type Run struct {
	p     motor.Parameters
	cfg   Config
	gains control.Gains

	refSpeed float64 // requested set-point, rad/s

	step    int
	steps   int
	speed   float64 // rad/s
	current float64 // A

	speedPI   control.PI
	currentPI control.PI

	trace *Trace
}

func newRun(p motor.Parameters, cfg Config, in Inputs) *Run {
	g := control.Derive(p, in.CurrentBandwidth, in.SpeedBandwidth, cfg.DampingDiv)
	return &Run{
		p:         p,
		cfg:       cfg,
		gains:     g,
		refSpeed:  units.RPMToRadPerSec(in.ReferenceRPM),
		steps:     cfg.steps(),
		speedPI:   control.PI{Kp: g.Kps, Ki: g.Kis, Kaw: g.Kas},
		currentPI: control.PI{Kp: g.Kpc, Ki: g.Kic, Kaw: g.Kac},
		trace:     newTrace(cfg.steps()),
	}
}

// Gains returns the gain bundle derived for this run.
func (r *Run) Gains() control.Gains { return r.gains }

// Done reports whether the full horizon has been covered.
func (r *Run) Done() bool { return r.step >= r.steps }

// Trace returns the series recorded so far. The slices are shared with
// the run; callers must not mutate them while the run is stepping.
func (r *Run) Trace() *Trace { return r.trace }

// Step advances the simulation by one dt and records the step. The
// per-step order is a specific discrete realization and must not be
// rearranged: reference staging, outer loop with torque and
// current-reference clamps, inner loop with back-EMF feed-forward and
// voltage clamp, plant integration, recording.
func (r *Run) Step() Sample {
	dt := r.cfg.Dt
	t := float64(r.step) * dt

	// Reference staging: zero until the hold time, then the set-point.
	ref := 0.0
	if t >= r.cfg.RefHold {
		ref = r.refSpeed
	}

	// Speed loop. The integral advances against the torque-domain
	// clamping excess, so it stalls rather than winding up while the
	// command saturates.
	speedErr := ref - r.speed
	rawTorque := r.speedPI.Output(speedErr)
	torqueCmd := control.Saturate(rawTorque, r.cfg.SatFactor*r.p.RatedTorque)
	currentRef := control.Saturate(torqueCmd/r.p.TorqueConst, r.p.RatedCurrent)
	r.speedPI.Advance(speedErr, rawTorque-torqueCmd, dt)

	// Current loop. Feed-forward of the back-EMF decouples the speed
	// disturbance; the clamp applies to the summed command.
	currentErr := currentRef - r.current
	rawVoltage := r.currentPI.Output(currentErr) + r.p.BackEMFConst*r.speed
	voltage := control.Saturate(rawVoltage, r.cfg.SatFactor*r.p.RatedVoltage)
	r.currentPI.Advance(currentErr, rawVoltage-voltage, dt)

	// Plant, explicit Euler. The electromagnetic torque driving the
	// mechanical state and the trace is taken from the current entering
	// the step, so the reported torque lags the armature update by one
	// integration.
	backEMF := r.p.BackEMFConst * r.speed
	torque := r.p.TorqueConst * r.current
	r.current += dt * (voltage - backEMF - r.p.Resistance*r.current) / r.p.Inductance
	r.speed += dt * (torque - r.p.Friction*r.speed) / r.p.Inertia

	r.trace.append(t,
		units.RadPerSecToRPM(r.speed),
		units.RadPerSecToRPM(ref),
		voltage*units.VoltageScale,
		torque*units.TorqueScale,
	)

	s := Sample{
		Step:       r.step,
		Time:       t,
		RefSpeed:   ref,
		Speed:      r.speed,
		Current:    r.current,
		TorqueCmd:  torqueCmd,
		CurrentRef: currentRef,
		Voltage:    voltage,
		Torque:     torque,
	}
	r.step++
	return s
}
