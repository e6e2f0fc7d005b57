// Package units translates between the engine's SI quantities and the
// presentation units used in traces and plots.
package units

import "math"

// Display scale factors applied when recording traces. Voltage and torque
// are scaled so all four plotted lines share one axis range.
const (
	VoltageScale = 100.0
	TorqueScale  = 1e6
)

const rpmPerRadPerSec = 60.0 / (2.0 * math.Pi)

// RPMToRadPerSec converts rotational speed from RPM to rad/s.
func RPMToRadPerSec(rpm float64) float64 {
	return rpm / rpmPerRadPerSec
}

// RadPerSecToRPM converts rotational speed from rad/s to RPM.
func RadPerSecToRPM(w float64) float64 {
	return w * rpmPerRadPerSec
}
