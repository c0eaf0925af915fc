package caoscil

import (
	"fmt"

	"github.com/tphakala/go-caoscil/internal/simdops"
)

// stereoChannels is the channel count produced by the interleave helpers.
const stereoChannels = 2

// Render is a convenience function for one-shot rendering. It creates a Ramp
// from config and returns n samples at a constant speed.
func Render(config Config, speed float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrInvalidConfig, n)
	}
	r, err := NewRamp(config)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	r.Process(out, speed)
	return out, nil
}

// RenderResettable renders n samples from a Resettable oscillator, firing a
// reset trigger every resetEvery samples starting with the first. A
// resetEvery of 0 never triggers.
func RenderResettable(config Config, speed float64, resetEvery, n int) ([]float64, error) {
	if n < 0 || resetEvery < 0 {
		return nil, fmt.Errorf("%w: negative sample count", ErrInvalidConfig)
	}
	r, err := NewResettable(config)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	reset := make([]float64, n)
	if resetEvery > 0 {
		for i := 0; i < n; i += resetEvery {
			reset[i] = 1
		}
	}
	if err := r.Process(out, reset, speed); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderBlocks returns n consecutive values of a Block oscillator, one per
// generation.
func RenderBlocks(config Config, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", ErrInvalidConfig, n)
	}
	b, err := NewBlock(config)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = b.Next()
	}
	return out, nil
}

// RenderStereo renders two independently configured channels at the same
// speed. Different seeds give decorrelated channels.
func RenderStereo(left, right Config, speed float64, n int) (leftOut, rightOut []float64, err error) {
	leftOut, err = Render(left, speed, n)
	if err != nil {
		return nil, nil, err
	}

	rightOut, err = Render(right, speed, n)
	if err != nil {
		return nil, nil, err
	}

	return leftOut, rightOut, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	n := min(len(left), len(right))
	result := make([]float64, n*stereoChannels)
	simdops.Float64Ops().Interleave2(result, left[:n], right[:n])
	return result
}

// =============================================================================
// Float32 Native API
// =============================================================================
//
// Generation timing is identical to the float64 API; only the ramp arithmetic
// and the output are single precision. Use these when the rest of the audio
// path is float32.

// RenderFloat32 is the float32 equivalent of Render.
func RenderFloat32(config Config, speed float32, n int) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrInvalidConfig, n)
	}
	r, err := NewRampFloat32(config)
	if err != nil {
		return nil, err
	}

	out := make([]float32, n)
	r.Process(out, speed)
	return out, nil
}

// InterleaveToStereoFloat32 is the float32 equivalent of InterleaveToStereo.
func InterleaveToStereoFloat32(left, right []float32) []float32 {
	n := min(len(left), len(right))
	result := make([]float32, n*stereoChannels)
	simdops.Float32Ops().Interleave2(result, left[:n], right[:n])
	return result
}
