package motor

// Parameters describes a permanent-magnet DC motor. All values are SI.
// TorqueConst and BackEMFConst are the same physical constant in a
// consistent SI model; both fields exist because the two loops read them
// for different purposes.
type Parameters struct {
	RatedVoltage float64 // V
	RatedCurrent float64 // A
	RatedTorque  float64 // Nm
	Resistance   float64 // armature resistance, ohm
	Inductance   float64 // armature inductance, H
	Inertia      float64 // rotor inertia, kg*m^2
	Friction     float64 // viscous friction coefficient, Nm*s/rad
	TorqueConst  float64 // Nm/A
	BackEMFConst float64 // V*s/rad
}

// Default returns the fixed design the simulator models. The electrical
// time constant La/Ra is 32 us, which constrains the integration step.
func Default() Parameters {
	return Parameters{
		RatedVoltage: 48.0,
		RatedCurrent: 10.0,
		RatedTorque:  0.5,
		Resistance:   0.5,
		Inductance:   16e-6,
		Inertia:      1e-4,
		Friction:     1e-5,
		TorqueConst:  0.05,
		BackEMFConst: 0.05,
	}
}

// ElectricalTimeConstant returns La/Ra in seconds.
func (p Parameters) ElectricalTimeConstant() float64 {
	return p.Inductance / p.Resistance
}

// MechanicalTimeConstant returns J/B in seconds.
func (p Parameters) MechanicalTimeConstant() float64 {
	return p.Inertia / p.Friction
}
