package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_ReturnsSharedTables(t *testing.T) {
	assert.Same(t, Float32Ops(), For[float32]())
	assert.Same(t, Float64Ops(), For[float64]())
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 0.0, Mean[float64](nil), 0)
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, float32(-0.5), Mean([]float32{-1, 0, -1, 0}), 1e-6)
}

func TestGain(t *testing.T) {
	buf := []float64{1, -0.5, 0.25, 0}
	Gain(buf, 0.5)
	assert.InDeltaSlice(t, []float64{0.5, -0.25, 0.125, 0}, buf, 1e-12)

	unchanged := []float32{0.3, 0.7}
	Gain(unchanged, 1)
	assert.Equal(t, []float32{0.3, 0.7}, unchanged)
}

func TestInterleave2(t *testing.T) {
	dst := make([]float64, 6)
	Float64Ops().Interleave2(dst, []float64{1, 2, 3}, []float64{-1, -2, -3})
	require.Equal(t, []float64{1, -1, 2, -2, 3, -3}, dst)
}

func TestInfo(t *testing.T) {
	assert.NotEmpty(t, Info())
}
