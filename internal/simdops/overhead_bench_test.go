package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

const benchBlock = 64 // typical host block size

// BenchmarkDirectF64Scale measures direct SIMD call overhead.
func BenchmarkDirectF64Scale(b *testing.B) {
	a := make([]float64, benchBlock)
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		f64.Scale(a, a, 0.999)
	}
}

// BenchmarkIndirectF64Scale measures indirect call through Ops struct.
func BenchmarkIndirectF64Scale(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, benchBlock)
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(a, a, 0.999)
	}
}

// BenchmarkDirectF32Sum measures direct SIMD call overhead.
func BenchmarkDirectF32Sum(b *testing.B) {
	a := make([]float32, benchBlock)
	for i := range a {
		a[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = f32.Sum(a)
	}
}

// BenchmarkIndirectF32Sum measures indirect call through Ops struct.
func BenchmarkIndirectF32Sum(b *testing.B) {
	ops := For[float32]()
	a := make([]float32, benchBlock)
	for i := range a {
		a[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.Sum(a)
	}
}
