// Package testutil provides reusable test helper functions for oscillator tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
)

// T is the part of *testing.T the assertions use.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-12
	Float32Tolerance = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F ~float32 | ~float64](t T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(float64(v)) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(float64(v), 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d] is Inf", i), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange[F ~float32 | ~float64](t T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if float64(v) < minVal || float64(v) > maxVal {
			return assert.Fail(t, fmt.Sprintf("value out of range: s[%d]=%f is outside range [%f, %f]", i, float64(v), minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic[F ~float32 | ~float64](t T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, fmt.Sprintf("not monotonic: s[%d]=%f < s[%d]=%f", i, float64(s[i]), i-1, float64(s[i-1])), msgAndArgs...)
		}
	}
	return true
}

// AssertConstant verifies that every element equals want exactly.
func AssertConstant[F ~float32 | ~float64](t T, s []F, want F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != want {
			return assert.Fail(t, fmt.Sprintf("value changed: s[%d]=%v, want %v", i, v, want), msgAndArgs...)
		}
	}
	return true
}

// AssertBetween verifies that value lies between a and b inclusive,
// in either order.
func AssertBetween(t T, value, a, b float64, msgAndArgs ...any) bool {
	t.Helper()
	lo, hi := min(a, b), max(a, b)
	if value < lo || value > hi {
		return assert.Fail(t, fmt.Sprintf("value not between bounds: value %v is outside [%v, %v]", value, lo, hi), msgAndArgs...)
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value out of range: value %f is outside range [%f, %f]", value, minVal, maxVal), msgAndArgs...)
	}
	return true
}

// AssertBitIdentical verifies that two sample slices match exactly.
func AssertBitIdentical[F ~float32 | ~float64](t T, want, got []F, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if math.Float64bits(float64(want[i])) != math.Float64bits(float64(got[i])) {
			return assert.Fail(t, fmt.Sprintf("samples differ: sample %d: want %v, got %v", i, want[i], got[i]), msgAndArgs...)
		}
	}
	return true
}
