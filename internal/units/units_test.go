package units

import (
	"math"
	"testing"
)

func TestRPMConversionRoundTrip(t *testing.T) {
	for _, rpm := range []float64{0, 1, -1500, 1500, 3000.5} {
		got := RadPerSecToRPM(RPMToRadPerSec(rpm))
		if math.Abs(got-rpm) > 1e-9 {
			t.Errorf("round trip %f -> %f", rpm, got)
		}
	}
}

func TestKnownConversions(t *testing.T) {
	// One full revolution per second is 60 RPM.
	if got := RadPerSecToRPM(2 * math.Pi); math.Abs(got-60) > 1e-9 {
		t.Errorf("2*pi rad/s should be 60 RPM, got %f", got)
	}

	if got := RPMToRadPerSec(60); math.Abs(got-2*math.Pi) > 1e-9 {
		t.Errorf("60 RPM should be 2*pi rad/s, got %f", got)
	}
}
