package metrics

import (
	"math"

	"github.com/san-kum/motorlab/internal/engine"
)

// SettlingTime reports the last time the speed was outside the tolerance
// band around the reference. Zero means the run never left the band.
type SettlingTime struct {
	tolerance   float64
	lastOutside float64
}

// NewSettlingTime builds the metric with a fractional band, e.g. 0.02
// for +/-2% of the reference.
func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{tolerance: tolerance}
}

func (m *SettlingTime) Name() string { return "settling_time" }

func (m *SettlingTime) Observe(s engine.Sample) {
	if s.RefSpeed == 0 {
		return
	}
	if math.Abs(s.Speed-s.RefSpeed) > m.tolerance*math.Abs(s.RefSpeed) {
		m.lastOutside = s.Time
	}
}

func (m *SettlingTime) Value() float64 { return m.lastOutside }

func (m *SettlingTime) Reset() { m.lastOutside = 0 }
