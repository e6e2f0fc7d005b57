// Package engine simulates the transient response of a permanent-magnet
// DC motor under cascaded PI control (inner current loop, outer speed
// loop) with output saturation and back-calculation anti-windup.
//
// The core pieces:
//
//   - [Inputs]: the three scalars a run is parameterized by (two loop
//     bandwidths and a reference speed)
//   - [Run]: one stateful fixed-step integration, advanced with Step
//   - [Engine]: orchestrates full-horizon runs and feeds metrics and
//     observers
//   - [Trace]: the five time-aligned output sequences
//
// # Example
//
//	eng := engine.New(motor.Default(), engine.DefaultConfig())
//	res, _ := eng.Run(ctx, engine.Inputs{CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 1500})
//
// # Thread Safety
//
// An Engine is safe to call from multiple goroutines only because every
// Run allocates fresh controller and plant state; nothing is shared
// between invocations. A Run value itself is not thread-safe.
package engine
