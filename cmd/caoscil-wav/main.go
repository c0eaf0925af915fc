// Command caoscil-wav renders cellular-automaton oscillators to a WAV file.
//
// Usage:
//
//	caoscil-wav -speed 0.01 out.wav
//	caoscil-wav -rule 110 -order 5 -speed 0.5 -duration 10 out.wav
//	caoscil-wav -opcode caoscilr -speed 1 -reset-every 480 out.wav  # periodic waveform
//	caoscil-wav -channels 2 -seed 1 -seed-step 1 -bits 24 stereo.wav
//
// Channels render concurrently, one host voice per channel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	caoscil "github.com/tphakala/go-caoscil"
	"github.com/tphakala/go-caoscil/internal/analysis"
	"github.com/tphakala/go-caoscil/internal/host"
)

const (
	// Blocks rendered per channel before each WAV write
	chunkBlocks = 1024

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// WAV format constants
	wavPCMFormat = 1

	// Frames collected from channel 0 for -analyze
	maxAnalysisFrames = 1 << 20

	// CLI defaults
	defaultDuration = 5.0
	defaultSpeed    = 0.01
	defaultGain     = 0.5
	maxChannels     = 8
	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	opcode := flag.String("opcode", host.OpRamp, "Opcode: caoscil (ramp), caoscilr (resettable), caoscilk (one generation per block)")
	rule := flag.Uint64("rule", caoscil.Rule30, "Elementary CA rule number")
	order := flag.Uint("order", 3, "Neighbourhood size (1-6)")
	seed := flag.Float64("seed", 0, "Initial state; values near zero use the canonical seed")
	seedStep := flag.Float64("seed-step", 1, "Seed increment between channels")
	speed := flag.Float64("speed", defaultSpeed, "Generations per sample")
	sweepTo := flag.Float64("sweep-to", 0, "Sweep the speed linearly to this value over the duration (caoscil only)")
	resetEvery := flag.Int("reset-every", 0, "Reseed period in frames (caoscilr only, 0 never)")
	duration := flag.Float64("duration", defaultDuration, "Duration in seconds")
	rate := flag.Int("rate", host.DefaultSampleRate, "Sample rate in Hz")
	bits := flag.Int("bits", bitsPerSample16, "Bit depth: 16, 24 or 32")
	ksmps := flag.Int("ksmps", host.DefaultBlockSize, "Frames per block")
	gain := flag.Float64("gain", defaultGain, "Output gain")
	channels := flag.Int("channels", 1, "Number of channels")
	parallel := flag.Bool("parallel", true, "Render channels concurrently")
	analyze := flag.Bool("analyze", false, "Print signal statistics of the first channel")
	progress := flag.Bool("progress", term.IsTerminal(int(os.Stderr.Fd())), "Report progress on stderr")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -speed 0.01 drift.wav                         # Slow random ramp\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -speed 1 -rule 110 noise.wav                  # One generation per sample\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -opcode caoscilr -speed 1 -reset-every 480 tone.wav # 100 Hz periodic wave\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	outputPath := args[0]

	if err := validateFormat(*bits, *channels); err != nil {
		return err
	}

	h, err := host.New(*ksmps, *rate)
	if err != nil {
		return err
	}
	frames := h.Frames(*duration)
	if frames <= 0 {
		return fmt.Errorf("duration %.3fs renders no frames", *duration)
	}

	patch := host.Patch{
		Opcode:      *opcode,
		Rule:        *rule,
		Order:       *order,
		Seed:        *seed,
		Speed:       *speed,
		SweepTo:     *sweepTo,
		SweepFrames: frames,
		ResetEvery:  *resetEvery,
	}

	if *verbose {
		log.Printf("Output: %s", outputPath)
		log.Printf("Opcode: %s (rule %d, order %d, seed %g)", patch.Opcode, patch.Rule, patch.Order, patch.Seed)
		log.Printf("Speed: %g generations/sample", patch.Speed)
		if patch.SweepTo != 0 {
			log.Printf("Sweep: to %g over %d frames", patch.SweepTo, frames)
		}
		log.Printf("Format: %d Hz, %d channels, %d-bit, ksmps %d", *rate, *channels, *bits, *ksmps)
	}

	start := time.Now()
	stats, err := renderWAV(outputPath, h, patch, renderOptions{
		frames:   frames,
		channels: *channels,
		seedStep: *seedStep,
		bitDepth: *bits,
		gain:     *gain,
		parallel: *parallel,
		collect:  *analyze,
		progress: *progress,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Rendered %s\n", filepath.Base(outputPath))
	fmt.Printf("  %s rule %d order %d, %d Hz (%d channels, %d-bit)\n",
		patch.Opcode, patch.Rule, patch.Order, *rate, *channels, *bits)
	fmt.Printf("  %d frames, %d clipped samples\n", stats.frames, stats.clipped)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.frames)/float64(*rate)/elapsed.Seconds())

	if *analyze {
		report, err := analysis.Analyze(stats.firstChannel, float64(*rate))
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		fmt.Printf("  Analysis: %s\n", report)
	}

	return nil
}

// validateFormat checks the output bit depth and channel count.
func validateFormat(bitDepth, channels int) error {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("unsupported bit depth %d (use 16, 24 or 32)", bitDepth)
	}
	if channels < 1 || channels > maxChannels {
		return fmt.Errorf("channel count %d out of range 1-%d", channels, maxChannels)
	}
	return nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}
