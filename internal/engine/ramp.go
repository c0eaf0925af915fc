// Package engine implements the cellular-automaton oscillators: the
// interpolating ramp oscillator, its reset-triggered variant and the
// block-rate oscillator.
//
// Every oscillator owns its automaton state exclusively and is meant to be
// driven from a single goroutine. The process paths allocate nothing.
package engine

import (
	"math"

	"github.com/tphakala/go-caoscil/internal/automaton"
	"github.com/tphakala/go-caoscil/internal/simdops"
)

// Ramp advances a cellular automaton at a variable rate and ramps its output
// linearly toward the amplitude of the latest generation.
//
// Type parameter F sets the precision of the emitted samples and of the ramp
// arithmetic. The phase accumulator is always float64.
//
// The phase accumulator counts generations still due before the next
// automaton step. Each sample subtracts the speed; whenever it drops below
// automaton.Epsilon a generation is consumed and 1.0 is credited back. After
// a sample is processed the accumulator is at least automaton.Epsilon.
type Ramp[F simdops.Float] struct {
	// Configuration, fixed at construction
	rule  uint64
	order uint
	seed  float64

	// Automaton and ramp state
	state   uint64
	phase   float64
	current F
	target  F
	delta   F

	// Statistics
	samples     int64
	generations int64
}

// NewRamp creates a ramp oscillator seeded per automaton.Seed. The output
// starts at the amplitude of the seed state with no ramp in progress.
//
// order is not validated here; callers reject values outside
// [automaton.MinOrder, automaton.MaxOrder] before construction.
func NewRamp[F simdops.Float](rule uint64, order uint, seed float64) *Ramp[F] {
	r := &Ramp[F]{
		rule:  rule,
		order: order,
		seed:  seed,
	}
	r.Reset()
	return r
}

// Reset restores the state produced by construction.
func (r *Ramp[F]) Reset() {
	r.state = automaton.Seed(r.seed, r.rule, r.order)
	amp := F(automaton.ToAmplitude(r.state))
	r.current = amp
	r.target = amp
	r.delta = 0
	r.phase = 0
	r.samples = 0
	r.generations = 0
}

// Process fills out with consecutive samples at the given speed in
// generations per sample. Only the magnitude of speed is used.
//
// A speed below automaton.Epsilon (or NaN) holds the current value for the
// whole block without touching any state.
func (r *Ramp[F]) Process(out []F, speed F) {
	s, running := effectiveSpeed(speed)
	if !running {
		r.hold(out)
		return
	}

	for i := range out {
		out[i] = r.step(s)
	}
	r.samples += int64(len(out))
}

// Next produces a single sample. It is equivalent to Process with a
// one-element block.
func (r *Ramp[F]) Next(speed F) F {
	s, running := effectiveSpeed(speed)
	if !running {
		return r.current
	}
	r.samples++
	return r.step(s)
}

// hold writes the current value to every element of out.
func (r *Ramp[F]) hold(out []F) {
	for i := range out {
		out[i] = r.current
	}
}

// step runs one sample: consume the speed, catch up on due generations and
// move the ramp.
func (r *Ramp[F]) step(speed float64) F {
	r.phase -= speed
	r.catchUp()
	return r.advance(speed)
}

// catchUp evolves the automaton until no generation is due. Each generation
// retargets the ramp from wherever the output currently is.
func (r *Ramp[F]) catchUp() {
	for r.phase < automaton.Epsilon {
		r.state = automaton.Evolve(r.state, r.rule, r.order)
		r.target = F(automaton.ToAmplitude(r.state))
		r.delta = r.target - r.current
		r.phase += generationPeriod
		r.generations++
	}
}

// advance moves the output by delta*speed and clamps it at the target.
// The direction is taken before the move, every sample. An output already
// sitting on the target stays there until the next generation retargets it.
func (r *Ramp[F]) advance(speed float64) F {
	switch {
	case r.current < r.target:
		r.current = min(r.current+r.delta*F(speed), r.target)
	case r.current > r.target:
		r.current = max(r.current+r.delta*F(speed), r.target)
	}
	return r.current
}

// reseed restarts the automaton from the construction seed and makes a
// generation due immediately. The output value is left to ramp.
func (r *Ramp[F]) reseed() {
	r.state = automaton.Seed(r.seed, r.rule, r.order)
	r.phase = 0
}

// State returns the current automaton state.
func (r *Ramp[F]) State() uint64 {
	return r.state
}

// Value returns the most recently emitted sample (or the initial value).
func (r *Ramp[F]) Value() F {
	return r.current
}

// Target returns the amplitude of the latest generation.
func (r *Ramp[F]) Target() F {
	return r.target
}

// Phase returns the phase accumulator.
func (r *Ramp[F]) Phase() float64 {
	return r.phase
}

// GetStatistics returns processing statistics.
func (r *Ramp[F]) GetStatistics() map[string]int64 {
	return map[string]int64{
		statSamples:     r.samples,
		statGenerations: r.generations,
	}
}

// effectiveSpeed returns |speed| capped at MaxSpeed, and whether the
// oscillator should run at all.
func effectiveSpeed[F simdops.Float](speed F) (float64, bool) {
	s := math.Abs(float64(speed))
	if !(s >= automaton.Epsilon) {
		return 0, false
	}
	return min(s, MaxSpeed), true
}
