// Package playback plays interleaved float32 PCM streams on the default
// audio device. Builds with the headless tag replace the device with a sink
// that drains the stream without output.
package playback

import (
	"errors"
	"fmt"
	"time"
)

// Playback limits
const (
	minSampleRate = 8000
	maxSampleRate = 384000
	maxChannels   = 8

	// DefaultBufferSize is the device buffer length.
	DefaultBufferSize = 50 * time.Millisecond

	// pollInterval is how often Play checks whether the device has drained.
	pollInterval = 10 * time.Millisecond
)

// ErrInvalidFormat indicates an unsupported sample rate or channel count.
var ErrInvalidFormat = errors.New("unsupported playback format")

// Format describes the stream handed to the device.
type Format struct {
	SampleRate int
	Channels   int
	BufferSize time.Duration
}

// Validate checks if the format is playable.
func (f *Format) Validate() error {
	if f.SampleRate < minSampleRate || f.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate %d (must be %d-%d)", ErrInvalidFormat, f.SampleRate, minSampleRate, maxSampleRate)
	}
	if f.Channels < 1 || f.Channels > maxChannels {
		return fmt.Errorf("%w: %d channels (must be 1-%d)", ErrInvalidFormat, f.Channels, maxChannels)
	}
	if f.BufferSize < 0 {
		return fmt.Errorf("%w: negative buffer size", ErrInvalidFormat)
	}
	return nil
}

// bufferSize returns the configured buffer size or the default.
func (f *Format) bufferSize() time.Duration {
	if f.BufferSize == 0 {
		return DefaultBufferSize
	}
	return f.BufferSize
}
