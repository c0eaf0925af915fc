package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-caoscil/internal/automaton"
	"github.com/tphakala/go-caoscil/internal/simdops"
)

// ErrBufferMismatch indicates a trigger block shorter than the output block.
var ErrBufferMismatch = errors.New("trigger buffer shorter than output buffer")

// Resettable is a Ramp with a per-sample reset trigger. A trigger sample of
// magnitude at least automaton.Epsilon reseeds the automaton from the
// construction seed and forces a new generation within the same sample. The
// output is not moved by the reset itself; it ramps toward the new target.
type Resettable[F simdops.Float] struct {
	Ramp[F]

	resets int64
}

// NewResettable creates a resettable ramp oscillator.
func NewResettable[F simdops.Float](rule uint64, order uint, seed float64) *Resettable[F] {
	r := &Resettable[F]{}
	r.rule = rule
	r.order = order
	r.seed = seed
	r.Reset()
	return r
}

// Reset restores the state produced by construction.
func (r *Resettable[F]) Reset() {
	r.Ramp.Reset()
	r.resets = 0
}

// Process fills out at the given speed, consulting reset[i] for sample i.
// reset must be at least as long as out.
//
// As with Ramp, a frozen speed holds the current value for the block; reset
// triggers are not consulted while frozen.
func (r *Resettable[F]) Process(out, reset []F, speed F) error {
	if len(reset) < len(out) {
		return fmt.Errorf("%w: %d triggers for %d samples", ErrBufferMismatch, len(reset), len(out))
	}

	s, running := effectiveSpeed(speed)
	if !running {
		r.hold(out)
		return nil
	}

	for i := range out {
		out[i] = r.stepWithReset(s, reset[i])
	}
	r.samples += int64(len(out))
	return nil
}

// NextWithReset produces a single sample with the given trigger value.
func (r *Resettable[F]) NextWithReset(speed, trigger F) F {
	s, running := effectiveSpeed(speed)
	if !running {
		return r.current
	}
	r.samples++
	return r.stepWithReset(s, trigger)
}

// stepWithReset consumes the speed, applies a pending trigger, then catches
// up and ramps like Ramp.step. The trigger zeroes the phase after the speed
// is subtracted, so the catch-up loop starts from exactly 0.
func (r *Resettable[F]) stepWithReset(speed float64, trigger F) F {
	r.phase -= speed
	if math.Abs(float64(trigger)) >= automaton.Epsilon {
		r.reseed()
		r.resets++
	}
	r.catchUp()
	return r.advance(speed)
}

// GetStatistics returns processing statistics.
func (r *Resettable[F]) GetStatistics() map[string]int64 {
	stats := r.Ramp.GetStatistics()
	stats[statResets] = r.resets
	return stats
}
