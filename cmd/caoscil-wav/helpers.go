package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-caoscil/internal/host"
	"github.com/tphakala/go-caoscil/internal/simdops"
)

// renderOptions collects the output settings for renderWAV.
type renderOptions struct {
	frames   int
	channels int
	seedStep float64
	bitDepth int
	gain     float64
	parallel bool
	collect  bool
	progress bool
}

// renderStats summarizes a finished render.
type renderStats struct {
	frames       int64
	clipped      int64
	firstChannel []float64
}

// createChannelVoices creates one voice per channel. Channel ch is seeded
// with patch.Seed + ch*seedStep.
func createChannelVoices(h *host.Host, patch host.Patch, channels int, seedStep float64) ([]*host.Voice, error) {
	voices := make([]*host.Voice, channels)
	for ch := range channels {
		p := patch
		p.Seed += float64(ch) * seedStep
		v, err := h.NewPatchVoice(p)
		if err != nil {
			return nil, fmt.Errorf("failed to create voice for channel %d: %w", ch, err)
		}
		voices[ch] = v
	}
	return voices, nil
}

// wavOutputWriter wraps the output file and the WAV encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavPCMFormat)
	return &wavOutputWriter{
		file:    outputFile,
		encoder: enc,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	enabled      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, enabled bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		enabled:     enabled,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.enabled || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// renderWAV renders opts.frames frames of patch into a WAV file at path.
func renderWAV(path string, h *host.Host, patch host.Patch, opts renderOptions) (*renderStats, error) {
	voices, err := createChannelVoices(h, patch, opts.channels, opts.seedStep)
	if err != nil {
		return nil, err
	}

	output, err := createWAVOutput(path, h.SampleRate, opts.bitDepth, opts.channels)
	if err != nil {
		return nil, err
	}

	stats, renderErr := renderVoices(voices, output, opts)
	if err := output.Close(); err != nil && renderErr == nil {
		renderErr = fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	if renderErr != nil {
		return nil, renderErr
	}
	return stats, nil
}

// sampleWriter receives interleaved integer samples.
type sampleWriter interface {
	WriteSamples(samples []int) error
}

// renderVoices renders chunks of every voice and writes them interleaved.
// Chunks are a whole number of blocks so control-rate voices see the same
// block boundaries as a single uninterrupted render.
func renderVoices(voices []*host.Voice, out sampleWriter, opts renderOptions) (*renderStats, error) {
	chunk := voices[0].BlockSize() * chunkBlocks
	channelBufs := make([][]float64, len(voices))
	for ch := range channelBufs {
		channelBufs[ch] = make([]float64, chunk)
	}
	intBuf := make([]int, chunk*len(voices))
	maxVal := getMaxValue(opts.bitDepth)
	progress := newProgressTracker(int64(opts.frames), opts.progress)

	stats := &renderStats{}
	if opts.collect {
		stats.firstChannel = make([]float64, 0, min(opts.frames, maxAnalysisFrames))
	}

	for done := 0; done < opts.frames; {
		n := min(chunk, opts.frames-done)

		views := make([][]float64, len(voices))
		for ch := range views {
			views[ch] = channelBufs[ch][:n]
		}
		if err := renderChannelData(voices, views, opts.parallel); err != nil {
			return nil, err
		}

		if opts.collect && len(stats.firstChannel) < maxAnalysisFrames {
			take := min(n, maxAnalysisFrames-len(stats.firstChannel))
			stats.firstChannel = append(stats.firstChannel, views[0][:take]...)
		}

		for _, v := range views {
			simdops.Gain(v, opts.gain)
		}
		written, clipped := interleaveInto(views, intBuf, maxVal)
		stats.clipped += int64(clipped)
		if err := out.WriteSamples(intBuf[:written]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		done += n
		stats.frames = int64(done)
		progress.reportIfNeeded(stats.frames)
	}

	return stats, nil
}

// renderChannelData renders len(bufs[0]) frames of every voice.
func renderChannelData(voices []*host.Voice, bufs [][]float64, parallel bool) error {
	if !parallel || len(voices) == 1 {
		for ch, v := range voices {
			if err := v.RenderInto(bufs[ch]); err != nil {
				return fmt.Errorf("rendering failed on channel %d: %w", ch, err)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var renderErr error
	var errMu sync.Mutex

	for ch, v := range voices {
		wg.Go(func() {
			if err := v.RenderInto(bufs[ch]); err != nil {
				errMu.Lock()
				if renderErr == nil {
					renderErr = fmt.Errorf("rendering failed on channel %d: %w", ch, err)
				}
				errMu.Unlock()
			}
		})
	}
	wg.Wait()

	return renderErr
}

// interleaveInto converts per-channel float buffers to interleaved integer
// samples in dst, clamping to [-1, 1]. It returns the number of samples
// written and how many were clamped.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) (written, clipped int) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0, 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0, 0
	}

	for ch, src := range channels {
		for i, sample := range src {
			if math.Abs(sample) > 1 {
				sample = math.Copysign(1, sample)
				clipped++
			}
			dst[i*numChannels+ch] = int(sample * maxVal)
		}
	}
	return totalLen, clipped
}
