// Package analysis measures rendered oscillator output: amplitude
// statistics, serial correlation and a windowed magnitude spectrum.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-caoscil/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooShort indicates a signal with fewer than MinSamples samples.
var ErrTooShort = errors.New("signal too short to analyze")

// MinSamples is the smallest signal Analyze accepts.
const MinSamples = 2

// Stats summarizes the amplitude distribution of a signal.
type Stats struct {
	N        int
	Mean     float64
	StdDev   float64
	RMS      float64
	Min      float64
	Max      float64
	Skewness float64

	// ZeroCrossings counts sign changes between consecutive samples.
	ZeroCrossings int

	// Lag1 is the correlation between each sample and its successor. Slow
	// ramps approach 1, white noise approaches 0.
	Lag1 float64
}

// Spectrum is the one-sided magnitude spectrum of a Hann-windowed signal.
type Spectrum struct {
	// Freqs holds the centre frequency of each bin in Hz.
	Freqs []float64

	// Magnitudes holds |X[k]| for each bin, normalized by the window sum.
	Magnitudes []float64

	// PeakHz is the frequency of the strongest non-DC bin.
	PeakHz float64

	// CentroidHz is the magnitude-weighted mean frequency, DC excluded.
	CentroidHz float64

	// Flatness is the ratio of geometric to arithmetic mean power, DC
	// excluded: 1 for flat noise, near 0 for tonal signals.
	Flatness float64
}

// Report combines Stats and Spectrum.
type Report struct {
	Stats    Stats
	Spectrum Spectrum
}

// ComputeStats measures samples. It returns ErrTooShort for fewer than
// MinSamples samples.
func ComputeStats(samples []float64) (Stats, error) {
	if len(samples) < MinSamples {
		return Stats{}, fmt.Errorf("%w: %d samples", ErrTooShort, len(samples))
	}

	mean, std := stat.MeanStdDev(samples, nil)
	s := Stats{
		N:        len(samples),
		Mean:     mean,
		StdDev:   std,
		RMS:      floats.Norm(samples, 2) / math.Sqrt(float64(len(samples))),
		Min:      floats.Min(samples),
		Max:      floats.Max(samples),
		Skewness: stat.Skew(samples, nil),
	}

	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			s.ZeroCrossings++
		}
	}

	if std > 0 {
		s.Lag1 = stat.Correlation(samples[:len(samples)-1], samples[1:], nil)
	}
	if math.IsNaN(s.Skewness) {
		s.Skewness = 0
	}
	if math.IsNaN(s.Lag1) {
		s.Lag1 = 0
	}
	return s, nil
}

// ComputeSpectrum returns the magnitude spectrum of samples at sampleRate Hz.
// The DC offset is removed before windowing.
func ComputeSpectrum(samples []float64, sampleRate float64) (Spectrum, error) {
	n := len(samples)
	if n < MinSamples {
		return Spectrum{}, fmt.Errorf("%w: %d samples", ErrTooShort, n)
	}
	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("analysis: sample rate must be positive, got %v", sampleRate)
	}

	seq := make([]float64, n)
	copy(seq, samples)
	dc := simdops.Mean(seq)
	floats.AddConst(-dc, seq)

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	norm := floats.Sum(window.Hann(ones))
	if norm == 0 {
		norm = 1
	}
	window.Hann(seq)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	spec := Spectrum{
		Freqs:      make([]float64, len(coeffs)),
		Magnitudes: make([]float64, len(coeffs)),
	}
	for k, c := range coeffs {
		spec.Freqs[k] = fft.Freq(k) * sampleRate
		spec.Magnitudes[k] = cmplx.Abs(c) / norm
	}

	spec.PeakHz, spec.CentroidHz, spec.Flatness = summarize(spec.Freqs, spec.Magnitudes)
	return spec, nil
}

// summarize derives the peak, centroid and flatness, skipping the DC bin.
func summarize(freqs, mags []float64) (peak, centroid, flatness float64) {
	if len(mags) < 2 {
		return 0, 0, 0
	}
	ac := mags[1:]

	peak = freqs[1+floats.MaxIdx(ac)]

	total := floats.Sum(ac)
	if total == 0 {
		return peak, 0, 0
	}
	centroid = floats.Dot(freqs[1:], ac) / total

	power := make([]float64, len(ac))
	floats.MulTo(power, ac, ac)
	var logSum float64
	for _, p := range power {
		if p == 0 {
			return peak, centroid, 0
		}
		logSum += math.Log(p)
	}
	geo := math.Exp(logSum / float64(len(power)))
	flatness = geo / stat.Mean(power, nil)
	return peak, centroid, flatness
}

// Analyze computes the full report for samples at sampleRate Hz.
func Analyze(samples []float64, sampleRate float64) (Report, error) {
	st, err := ComputeStats(samples)
	if err != nil {
		return Report{}, err
	}
	sp, err := ComputeSpectrum(samples, sampleRate)
	if err != nil {
		return Report{}, err
	}
	return Report{Stats: st, Spectrum: sp}, nil
}

// String formats the report for terminal output.
func (r Report) String() string {
	s := r.Stats
	return fmt.Sprintf(
		"samples=%d mean=%.4f std=%.4f rms=%.4f min=%.4f max=%.4f skew=%.3f zc=%d lag1=%.4f peak=%.1fHz centroid=%.1fHz flatness=%.4f",
		s.N, s.Mean, s.StdDev, s.RMS, s.Min, s.Max, s.Skewness, s.ZeroCrossings, s.Lag1,
		r.Spectrum.PeakHz, r.Spectrum.CentroidHz, r.Spectrum.Flatness)
}
