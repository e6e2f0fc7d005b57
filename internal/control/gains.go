// Package control holds the cascaded-loop controller pieces: gain
// derivation from requested bandwidths and the PI integrator primitive
// shared by the speed and current loops.
package control

import "github.com/san-kum/motorlab/internal/motor"

// Gains is the full gain bundle for one run. Derived once, never mutated.
type Gains struct {
	// Current (inner) loop.
	Kpc float64
	Kic float64
	// Speed (outer) loop.
	Kps float64
	Kis float64
	// Back-calculation anti-windup gains, reciprocals of the
	// proportional gains of their loops.
	Kac float64
	Kas float64
}

// Derive computes controller gains from the motor design and the two
// requested loop bandwidths (rad/s).
//
// The current loop uses pole-zero cancellation: Kic/Kpc = Ra/La cancels
// the electrical pole, leaving a first-order closed loop at wcc. The
// speed loop places its crossover at wcs against the mechanical inertia;
// dampingDiv sets the integral zero at wcs/dampingDiv, fixing the
// closed-loop damping ratio.
func Derive(p motor.Parameters, wcc, wcs, dampingDiv float64) Gains {
	g := Gains{
		Kpc: p.Inductance * wcc,
		Kic: p.Resistance * wcc,
		Kps: p.Inertia * wcs / p.TorqueConst,
		Kis: p.Inertia * wcs * wcs / dampingDiv / p.TorqueConst,
	}
	g.Kac = 1 / g.Kpc
	g.Kas = 1 / g.Kps
	return g
}
