package engine

import (
	"fmt"
	"math"
)

// Defaults for the integration and controller design constants. The
// electrical time constant of the default motor is about 32 us, so the
// 5 us step leaves a comfortable stability margin for explicit Euler;
// changing Dt requires revalidating stability.
const (
	DefaultDt         = 5e-6
	DefaultHorizon    = 0.1
	DefaultRefHold    = 0.01
	DefaultSatFactor  = 1.4
	DefaultDampingDiv = 5.0
)

// Config carries the fixed run constants. These are design defaults, not
// per-run inputs; Inputs carries the per-run scalars.
type Config struct {
	Dt         float64 // integration step, s
	Horizon    float64 // simulated duration, s
	RefHold    float64 // reference held at zero before this time, s
	SatFactor  float64 // saturation limits as a multiple of rated values
	DampingDiv float64 // speed-loop integral-gain divisor
}

// DefaultConfig returns the validated defaults.
func DefaultConfig() Config {
	return Config{
		Dt:         DefaultDt,
		Horizon:    DefaultHorizon,
		RefHold:    DefaultRefHold,
		SatFactor:  DefaultSatFactor,
		DampingDiv: DefaultDampingDiv,
	}
}

func (c Config) validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("%w: horizon must be positive, got %g", ErrInvalidConfig, c.Horizon)
	}
	if c.RefHold < 0 || math.IsNaN(c.RefHold) {
		return fmt.Errorf("%w: reference hold must be non-negative, got %g", ErrInvalidConfig, c.RefHold)
	}
	if !(c.SatFactor > 0) {
		return fmt.Errorf("%w: saturation factor must be positive, got %g", ErrInvalidConfig, c.SatFactor)
	}
	if !(c.DampingDiv > 0) {
		return fmt.Errorf("%w: damping divisor must be positive, got %g", ErrInvalidConfig, c.DampingDiv)
	}
	return nil
}

// steps returns the number of integration steps covering the horizon,
// ceil(horizon/dt) with a guard against float division landing a hair
// above an exact multiple.
func (c Config) steps() int {
	n := c.Horizon / c.Dt
	if math.Abs(n-math.Round(n)) < 1e-9 {
		return int(math.Round(n))
	}
	return int(math.Ceil(n))
}
