package control

// PI is a proportional-integral regulator with back-calculation
// anti-windup. The output is computed from the integral state as it
// stands; the caller clamps the output (possibly after summing a
// feed-forward term) and reports the clamping excess back through
// Advance, which slows or reverses integration while saturated.
type PI struct {
	Kp  float64
	Ki  float64
	Kaw float64

	integral float64
}

// Output returns the unclamped controller output for err. It does not
// advance the integral state.
func (c *PI) Output(err float64) float64 {
	return c.Kp*err + c.Ki*c.integral
}

// Advance integrates the error over dt. excess is the amount removed by
// output clamping (unclamped minus clamped); while the output is inside
// its limits it is zero and the accumulator behaves as a plain integrator.
func (c *PI) Advance(err, excess, dt float64) {
	c.integral += (err - c.Kaw*excess) * dt
}

// Integral returns the accumulator value.
func (c *PI) Integral() float64 { return c.integral }

// Reset clears the accumulator.
func (c *PI) Reset() { c.integral = 0 }

// Saturate clamps v to the symmetric range [-limit, limit].
func Saturate(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
