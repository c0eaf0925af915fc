// Package simdops provides generic SIMD block operations for float32 and
// float64 samples, so oscillator output can be post-processed at either
// precision from a single code path.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported sample types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated block operations for type F.
// Function pointers keep callers generic while delegating to the
// type-specific implementations.
type Ops[F Float] struct {
	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)
}

// Pre-instantiated operations for each float type.
var (
	ops32 = Ops[float32]{
		Sum:         f32.Sum,
		Scale:       f32.Scale,
		Interleave2: f32.Interleave2,
	}
	ops64 = Ops[float64]{
		Sum:         f64.Sum,
		Scale:       f64.Scale,
		Interleave2: f64.Interleave2,
	}
)

// For returns the Ops instance for type F.
// The type switch happens once per caller, not per sample.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Float32Ops returns the float32 SIMD operations.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}

// Info describes the instruction set the simd package selected at start-up.
func Info() string {
	return cpu.Info()
}

// Mean returns the arithmetic mean of a, or 0 for an empty slice.
func Mean[F Float](a []F) F {
	if len(a) == 0 {
		return 0
	}
	return For[F]().Sum(a) / F(len(a))
}

// Gain scales buf in place by g. A unity gain leaves buf untouched.
func Gain[F Float](buf []F, g F) {
	if g == 1 || len(buf) == 0 {
		return
	}
	For[F]().Scale(buf, buf, g)
}
