package control

import (
	"math"
	"testing"
)

func TestPIOutput(t *testing.T) {
	c := &PI{Kp: 2.0, Ki: 0.5}

	if got := c.Output(3.0); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("P-only output: expected 6, got %f", got)
	}

	c.Advance(3.0, 0, 0.1)
	// integral = 0.3, output = 2*3 + 0.5*0.3
	if got := c.Output(3.0); math.Abs(got-6.15) > 1e-12 {
		t.Errorf("PI output after advance: expected 6.15, got %f", got)
	}
}

func TestPIOutputDoesNotMutate(t *testing.T) {
	c := &PI{Kp: 1.0, Ki: 1.0}

	a := c.Output(1.0)
	b := c.Output(1.0)

	if a != b {
		t.Errorf("Output mutated state: %f vs %f", a, b)
	}
	if c.Integral() != 0 {
		t.Errorf("integral should still be zero, got %f", c.Integral())
	}
}

func TestPIAntiWindupSlowsIntegration(t *testing.T) {
	free := &PI{Kp: 2.0, Ki: 1.0, Kaw: 0.5}
	sat := &PI{Kp: 2.0, Ki: 1.0, Kaw: 0.5}

	free.Advance(1.0, 0, 0.1)
	sat.Advance(1.0, 0.8, 0.1)

	if sat.Integral() >= free.Integral() {
		t.Errorf("saturated integral %f should trail unsaturated %f", sat.Integral(), free.Integral())
	}

	// excess = err/Kaw makes the correction cancel the error exactly.
	frozen := &PI{Kp: 2.0, Ki: 1.0, Kaw: 0.5}
	frozen.Advance(1.0, 2.0, 0.1)
	if math.Abs(frozen.Integral()) > 1e-15 {
		t.Errorf("integral should be frozen, got %f", frozen.Integral())
	}
}

func TestPIReset(t *testing.T) {
	c := &PI{Kp: 1.0, Ki: 1.0}
	c.Advance(5.0, 0, 1.0)
	c.Reset()

	if c.Integral() != 0 {
		t.Errorf("expected zero integral after reset, got %f", c.Integral())
	}
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		v, limit, want float64
	}{
		{0.5, 1.0, 0.5},
		{1.5, 1.0, 1.0},
		{-1.5, 1.0, -1.0},
		{1.0, 1.0, 1.0},
		{-1.0, 1.0, -1.0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := Saturate(tt.v, tt.limit); got != tt.want {
			t.Errorf("Saturate(%f, %f) = %f, want %f", tt.v, tt.limit, got, tt.want)
		}
	}
}
