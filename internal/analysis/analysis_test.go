package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	caoscil "github.com/tphakala/go-caoscil"
)

const testRate = 48000.0

func sine(freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testRate)
	}
	return out
}

func TestComputeStats_TooShort(t *testing.T) {
	_, err := ComputeStats([]float64{1})
	require.ErrorIs(t, err, ErrTooShort)
	_, err = ComputeSpectrum(nil, testRate)
	require.ErrorIs(t, err, ErrTooShort)
}

func TestComputeStats_Constant(t *testing.T) {
	s, err := ComputeStats([]float64{-1, -1, -1, -1})
	require.NoError(t, err)

	assert.InDelta(t, -1.0, s.Mean, 1e-12)
	assert.InDelta(t, 0.0, s.StdDev, 1e-12)
	assert.InDelta(t, 1.0, s.RMS, 1e-12)
	assert.Equal(t, 0, s.ZeroCrossings)
	assert.InDelta(t, 0.0, s.Lag1, 0)
	assert.InDelta(t, 0.0, s.Skewness, 0)
}

func TestComputeStats_Alternating(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 1
		if i%2 == 1 {
			x[i] = -1
		}
	}

	s, err := ComputeStats(x)
	require.NoError(t, err)
	assert.Equal(t, 99, s.ZeroCrossings)
	assert.InDelta(t, -1.0, s.Lag1, 1e-9)
	assert.InDelta(t, 1.0, s.Max, 0)
	assert.InDelta(t, -1.0, s.Min, 0)
	assert.InDelta(t, 0.0, s.Mean, 1e-12)
}

func TestComputeSpectrum_SinePeak(t *testing.T) {
	const (
		n    = 4800 // 10 Hz bins
		freq = 1000.0
	)
	sp, err := ComputeSpectrum(sine(freq, n), testRate)
	require.NoError(t, err)

	assert.Len(t, sp.Magnitudes, n/2+1)
	assert.InDelta(t, freq, sp.PeakHz, 10)
	assert.InDelta(t, freq, sp.CentroidHz, 200)
	assert.Less(t, sp.Flatness, 0.1)
	assert.InDelta(t, 0.0, sp.Freqs[0], 0)
	assert.InDelta(t, testRate/2, sp.Freqs[len(sp.Freqs)-1], 1e-9)
}

func TestComputeSpectrum_RejectsBadRate(t *testing.T) {
	_, err := ComputeSpectrum(sine(100, 64), 0)
	require.Error(t, err)
}

func TestComputeSpectrum_DCRemoved(t *testing.T) {
	x := make([]float64, 256)
	for i := range x {
		x[i] = 0.75
	}
	sp, err := ComputeSpectrum(x, testRate)
	require.NoError(t, err)
	for k, m := range sp.Magnitudes {
		assert.InDelta(t, 0.0, m, 1e-12, "bin %d", k)
	}
	assert.InDelta(t, 0.0, sp.Flatness, 0)
}

func TestAnalyze_OscillatorCharacter(t *testing.T) {
	// A fast rule-30 oscillator is noise-like; a slow one is a smooth ramp.
	fast, err := caoscil.Render(caoscil.DefaultConfig(), 1, 8192)
	require.NoError(t, err)
	slow, err := caoscil.Render(caoscil.DefaultConfig(), 0.01, 8192)
	require.NoError(t, err)

	rf, err := Analyze(fast, testRate)
	require.NoError(t, err)
	rs, err := Analyze(slow, testRate)
	require.NoError(t, err)

	assert.Greater(t, rs.Stats.Lag1, 0.9)
	assert.Less(t, rf.Stats.Lag1, rs.Stats.Lag1)
	assert.Greater(t, rf.Spectrum.CentroidHz, rs.Spectrum.CentroidHz)
	assert.Greater(t, rf.Spectrum.Flatness, rs.Spectrum.Flatness)
	assert.GreaterOrEqual(t, rf.Stats.Min, -1.0)
	assert.LessOrEqual(t, rf.Stats.Max, 1.0)

	assert.Contains(t, rf.String(), "samples=8192")
}

func BenchmarkAnalyze(b *testing.B) {
	x := sine(440, 4096)
	for b.Loop() {
		_, _ = Analyze(x, testRate)
	}
}
