package metrics

import (
	"math"

	"github.com/san-kum/motorlab/internal/engine"
)

// SaturationDuty reports the fraction of steps on which either the
// voltage or the current-reference clamp was active.
type SaturationDuty struct {
	voltageLimit float64
	currentLimit float64
	saturated    int
	samples      int
}

func NewSaturationDuty(voltageLimit, currentLimit float64) *SaturationDuty {
	return &SaturationDuty{voltageLimit: voltageLimit, currentLimit: currentLimit}
}

func (m *SaturationDuty) Name() string { return "saturation_duty" }

func (m *SaturationDuty) Observe(s engine.Sample) {
	m.samples++
	if math.Abs(s.Voltage) >= m.voltageLimit || math.Abs(s.CurrentRef) >= m.currentLimit {
		m.saturated++
	}
}

func (m *SaturationDuty) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.saturated) / float64(m.samples)
}

func (m *SaturationDuty) Reset() {
	m.saturated = 0
	m.samples = 0
}
