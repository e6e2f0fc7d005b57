package engine_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motorlab/internal/engine"
	"github.com/san-kum/motorlab/internal/motor"
)

// clampWatcher records the worst-case magnitudes of the clamped commands
// and the armature current over a run.
type clampWatcher struct {
	maxVoltage    float64
	maxCurrentRef float64
	maxTorqueCmd  float64
	maxCurrent    float64
}

func (w *clampWatcher) OnStep(s engine.Sample) {
	w.maxVoltage = math.Max(w.maxVoltage, math.Abs(s.Voltage))
	w.maxCurrentRef = math.Max(w.maxCurrentRef, math.Abs(s.CurrentRef))
	w.maxTorqueCmd = math.Max(w.maxTorqueCmd, math.Abs(s.TorqueCmd))
	w.maxCurrent = math.Max(w.maxCurrent, math.Abs(s.Current))
}

type countMetric struct{ n int }

func (c *countMetric) Name() string            { return "count" }
func (c *countMetric) Observe(s engine.Sample) { c.n++ }
func (c *countMetric) Value() float64          { return float64(c.n) }
func (c *countMetric) Reset()                  { c.n = 0 }

var _ = Describe("Engine", func() {
	var (
		params motor.Parameters
		cfg    engine.Config
	)

	BeforeEach(func() {
		params = motor.Default()
		cfg = engine.DefaultConfig()
	})

	defaults := engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 1500}

	Describe("Run", func() {
		It("produces five equal-length sequences covering the horizon", func() {
			res, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())

			tr := res.Trace
			steps := int(math.Round(cfg.Horizon / cfg.Dt))
			Expect(tr.Len()).To(Equal(steps))
			Expect(tr.SpeedRPM).To(HaveLen(steps))
			Expect(tr.RefRPM).To(HaveLen(steps))
			Expect(tr.Voltage).To(HaveLen(steps))
			Expect(tr.Torque).To(HaveLen(steps))
		})

		It("stages the reference as a step, not a ramp", func() {
			res, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())

			tr := res.Trace
			for i, t := range tr.Times {
				if t < cfg.RefHold {
					Expect(tr.RefRPM[i]).To(BeZero(), "reference must be held at zero before t=%g", cfg.RefHold)
				} else {
					Expect(tr.RefRPM[i]).To(BeNumerically("~", 1500, 1e-9))
				}
			}
		})

		It("stays exactly at rest for a zero reference", func() {
			res, err := engine.New(params, cfg).Run(context.Background(), engine.Inputs{
				CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 0,
			})
			Expect(err).NotTo(HaveOccurred())

			tr := res.Trace
			for i := range tr.Times {
				Expect(tr.SpeedRPM[i]).To(BeZero())
				Expect(tr.Voltage[i]).To(BeZero())
				Expect(tr.Torque[i]).To(BeZero())
			}
		})

		It("converges toward the set-point without divergence", func() {
			res, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())

			tr := res.Trace
			Expect(tr.IsValid()).To(BeTrue())

			final := tr.SpeedRPM[tr.Len()-1]
			Expect(final).To(BeNumerically(">", 1100))
			Expect(final).To(BeNumerically("<", 1700))

			// Monotonically approaching: the running peak never sags by
			// more than a bounded overshoot margin.
			peak := 0.0
			for _, v := range tr.SpeedRPM {
				Expect(v).To(BeNumerically("<", 1900))
				peak = math.Max(peak, v)
				Expect(v).To(BeNumerically(">=", peak-0.1*1500))
			}
		})

		It("is deterministic: identical inputs give bit-identical traces", func() {
			a, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())
			b, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Trace).To(Equal(b.Trace))
		})

		It("feeds metrics one observation per step", func() {
			eng := engine.New(params, cfg)
			m := &countMetric{}
			eng.AddMetric(m)

			res, err := eng.Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(HaveKeyWithValue("count", float64(res.Trace.Len())))
		})

		It("returns the context error when canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := engine.New(params, cfg).Run(ctx, defaults)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Trace.Len()).To(BeNumerically("<", cfg.Horizon/cfg.Dt))
		})
	})

	Describe("saturation", func() {
		It("never lets the clamped commands exceed their limits", func() {
			eng := engine.New(params, cfg)
			w := &clampWatcher{}
			eng.AddObserver(w)

			// A reference far beyond what the motor can reach keeps both
			// loops saturated for most of the run.
			_, err := eng.Run(context.Background(), engine.Inputs{
				CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 50000,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(w.maxVoltage).To(BeNumerically("<=", cfg.SatFactor*params.RatedVoltage+1e-9))
			Expect(w.maxCurrentRef).To(BeNumerically("<=", params.RatedCurrent+1e-9))
			Expect(w.maxTorqueCmd).To(BeNumerically("<=", cfg.SatFactor*params.RatedTorque+1e-9))
			// The armature current tracks a clamped reference through a
			// pole-zero-canceled first-order loop; it must stay near the
			// rated bound.
			Expect(w.maxCurrent).To(BeNumerically("<=", params.RatedCurrent*1.05))
		})

		It("keeps the anti-windup integral bounded while saturated", func() {
			res, err := engine.New(params, cfg).Run(context.Background(), engine.Inputs{
				CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 50000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trace.IsValid()).To(BeTrue())
		})
	})

	Describe("torque recording", func() {
		It("lags the armature update by one integration step", func() {
			// With the reference active from t=0, the first step applies a
			// non-zero voltage but must still report zero torque, because
			// the reported torque is computed from the current entering
			// the step.
			cfg.RefHold = 0
			run, err := engine.New(params, cfg).Start(defaults)
			Expect(err).NotTo(HaveOccurred())

			s := run.Step()
			Expect(s.Voltage).NotTo(BeZero())
			Expect(s.Torque).To(BeZero())
			Expect(run.Trace().Torque[0]).To(BeZero())

			s = run.Step()
			Expect(s.Torque).NotTo(BeZero())
		})
	})

	Describe("input validation", func() {
		DescribeTable("rejects degenerate inputs",
			func(in engine.Inputs) {
				_, err := engine.New(params, cfg).Run(context.Background(), in)
				Expect(err).To(MatchError(engine.ErrInvalidParameter))
			},
			Entry("zero current bandwidth", engine.Inputs{CurrentBandwidth: 0, SpeedBandwidth: 10, ReferenceRPM: 1500}),
			Entry("zero speed bandwidth", engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: 0, ReferenceRPM: 1500}),
			Entry("negative current bandwidth", engine.Inputs{CurrentBandwidth: -200, SpeedBandwidth: 10, ReferenceRPM: 1500}),
			Entry("negative speed bandwidth", engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: -10, ReferenceRPM: 1500}),
			Entry("NaN current bandwidth", engine.Inputs{CurrentBandwidth: math.NaN(), SpeedBandwidth: 10, ReferenceRPM: 1500}),
			Entry("Inf speed bandwidth", engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: math.Inf(1), ReferenceRPM: 1500}),
			Entry("NaN reference", engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: math.NaN()}),
			Entry("Inf reference", engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: math.Inf(-1)}),
		)

		It("rejects a non-positive step size", func() {
			cfg.Dt = 0
			_, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))
		})

		It("rejects a non-positive horizon", func() {
			cfg.Horizon = -1
			_, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))
		})
	})

	Describe("divergence", func() {
		It("completes and leaves non-finite values detectable in the trace", func() {
			// A step far beyond the electrical stability limit makes the
			// explicit Euler armature update diverge. The run must still
			// cover the horizon; the caller detects the blow-up from the
			// trace.
			cfg.Dt = 2e-4
			res, err := engine.New(params, cfg).Run(context.Background(), defaults)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Trace.Len()).To(Equal(int(math.Round(cfg.Horizon / cfg.Dt))))
			Expect(res.Trace.IsValid()).To(BeFalse())
		})
	})
})
