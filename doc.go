// Package caoscil provides cellular-automaton oscillators in pure Go.
//
// A 64-cell cyclic binary cellular automaton is advanced at a controllable
// rate, and each generation's state word is mapped onto an amplitude in
// [-1, 1]. The result is a family of deterministic, rule-dependent noise and
// modulation sources for audio synthesis.
//
// # Oscillators
//
//   - [Ramp]: advances the automaton at a variable speed in generations per
//     sample and ramps linearly from the current output toward each new
//     generation's amplitude. [RampFloat32] is the float32 counterpart.
//   - [Resettable]: a [Ramp] with a per-sample trigger input that restarts
//     the automaton from its seed.
//   - [Block]: steps the automaton once per call and returns the raw
//     amplitude, for control-rate use.
//
// # Quick Start
//
// For one-shot rendering:
//
//	samples, err := caoscil.Render(caoscil.DefaultConfig(), 0.05, 48000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming with a reusable oscillator:
//
//	osc, err := caoscil.NewRamp(caoscil.Config{
//	    Rule:  caoscil.Rule110,
//	    Order: 3,
//	    Seed:  12345,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	block := make([]float64, 64)
//	for range blocks {
//	    osc.Process(block, speed)
//	    writeOutput(block)
//	}
//
// # Rules and Orders
//
// A rule is a 64-entry lookup table packed into a uint64. For cell i the
// automaton reads Order consecutive cells starting at the cell before i
// (wrapping around the ring), little-endian, and the window value selects a
// bit of the rule. Order 3 with a rule below 256 reproduces the elementary
// automata; [Rule30], [Rule90], [Rule110] and [Rule184] are provided as
// presets. Orders 1 through 6 are accepted.
//
// # Speed
//
// Speed is measured in generations per sample. Only its magnitude is used.
// Speeds below 2^-23 freeze the oscillator: it holds its output and does not
// evolve. Speeds above [MaxSpeed] are capped.
//
// # Thread Safety
//
// Oscillators are not safe for concurrent use. Independent instances may be
// driven from separate goroutines.
package caoscil
