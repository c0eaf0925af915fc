// Package automaton implements the 64-cell cyclic binary cellular automaton
// that drives the oscillators: the synchronous update, the seeding rule and
// the mapping from a state word to an amplitude.
//
// A state is a plain uint64. Bit i is cell i; cell 63's next neighbour is
// cell 0. A rule is a 64-entry lookup table packed into a uint64: bit k gives
// the next value of a cell whose neighbourhood window reads k.
//
// All functions are pure and allocation-free.
package automaton

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// ErrInvalidOrder indicates a window width outside [MinOrder, MaxOrder].
var ErrInvalidOrder = errors.New("invalid automaton order")

// ValidateOrder checks that order keeps every window value inside the
// 64-entry rule table.
func ValidateOrder(order uint) error {
	if order < MinOrder || order > MaxOrder {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidOrder, order, MinOrder, MaxOrder)
	}
	return nil
}

// Evolve computes one generation. Every output cell is derived from the same
// input snapshot, so the update is synchronous.
//
// For cell i the window starts at the cell before it, (i+63) mod 64, and spans
// order cells read little-endian with wrap-around. The window value selects
// a bit of rule.
//
// Evolve is total: with Go shift semantics an order outside [MinOrder,
// MaxOrder] produces a defined (if meaningless) result. Callers that take
// order from users validate it with ValidateOrder first.
func Evolve(state, rule uint64, order uint) uint64 {
	mask := uint64(1)<<order - 1

	var next uint64
	for i := range Cells {
		idx := (i + prevOffset) % Cells
		key := bits.RotateLeft64(state, -idx) & mask
		next |= (rule >> key & 1) << i
	}
	return next
}

// EvolveN applies Evolve n times and returns the final state.
func EvolveN(state, rule uint64, order uint, n int) uint64 {
	for range n {
		state = Evolve(state, rule, order)
	}
	return state
}

// Seed derives a starting state from a control value.
//
// A value within Epsilon of zero selects CanonicalSeed evolved
// DecorrelationSteps times under rule and order, so the canonical start is
// not correlated with the first audible generation. NaN takes the same path.
// Any other value is truncated toward zero and used directly; negative
// values wrap as two's complement and values beyond the uint64 range
// saturate.
func Seed(value float64, rule uint64, order uint) uint64 {
	if math.Abs(value) < Epsilon || math.IsNaN(value) {
		return EvolveN(CanonicalSeed, rule, order, DecorrelationSteps)
	}
	return truncate(value)
}

// truncate converts value to a state word without relying on the
// implementation-defined behaviour of out-of-range float conversions.
func truncate(value float64) uint64 {
	switch {
	case value >= maxSeed:
		return math.MaxUint64
	case value >= 0:
		return uint64(value)
	case value <= math.MinInt64:
		return 1 << 63
	default:
		return uint64(int64(value))
	}
}

// ToAmplitude maps a state onto [-1, 1]. The mapping is monotonic:
// ToAmplitude(0) == -1 and ToAmplitude(math.MaxUint64) == 1.
func ToAmplitude(state uint64) float64 {
	return float64(state)/maxState*amplitudeScale - amplitudeOffset
}

// Alive reports whether cell i of state is set. i is taken modulo Cells.
func Alive(state uint64, i int) bool {
	return state>>(uint(i)%Cells)&1 == 1
}

// Format renders state as a Cells-wide line, '*' for live cells and ' ' for
// dead ones, cell 0 first.
func Format(state uint64) string {
	var sb strings.Builder
	sb.Grow(Cells)
	for i := range Cells {
		if Alive(state, i) {
			sb.WriteByte(glyphAlive)
		} else {
			sb.WriteByte(glyphDead)
		}
	}
	return sb.String()
}
