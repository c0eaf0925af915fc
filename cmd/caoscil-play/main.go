// Command caoscil-play plays a cellular-automaton oscillator on the default
// audio device.
//
// Usage:
//
//	caoscil-play -speed 0.005                       # until interrupted
//	caoscil-play -rule 90 -speed 1 -duration 3
//	caoscil-play -channels 2 -seed 7 -speed 0.02 -sweep-to 2 -duration 20
//
// Build with -tags headless to drain the stream without an audio device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	caoscil "github.com/tphakala/go-caoscil"
	"github.com/tphakala/go-caoscil/internal/host"
	"github.com/tphakala/go-caoscil/internal/playback"
	"github.com/tphakala/go-caoscil/internal/stream"
)

const (
	defaultSpeed = 0.01
	defaultGain  = 0.25

	// statusInterval is how often the terminal status line refreshes.
	statusInterval = 250 * time.Millisecond
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	opcode := flag.String("opcode", host.OpRamp, "Opcode: caoscil, caoscilr or caoscilk")
	rule := flag.Uint64("rule", caoscil.Rule30, "Elementary CA rule number")
	order := flag.Uint("order", 3, "Neighbourhood size (1-6)")
	seed := flag.Float64("seed", 0, "Initial state; values near zero use the canonical seed")
	seedStep := flag.Float64("seed-step", 1, "Seed increment between channels")
	speed := flag.Float64("speed", defaultSpeed, "Generations per sample")
	sweepTo := flag.Float64("sweep-to", 0, "Sweep the speed linearly to this value over the duration (caoscil only)")
	resetEvery := flag.Int("reset-every", 0, "Reseed period in frames (caoscilr only, 0 never)")
	duration := flag.Float64("duration", 0, "Duration in seconds, 0 plays until interrupted")
	rate := flag.Int("rate", host.DefaultSampleRate, "Sample rate in Hz")
	ksmps := flag.Int("ksmps", host.DefaultBlockSize, "Frames per block")
	gain := flag.Float64("gain", defaultGain, "Output gain")
	channels := flag.Int("channels", 1, "Number of channels")
	buffer := flag.Duration("buffer", playback.DefaultBufferSize, "Device buffer length")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	h, err := host.New(*ksmps, *rate)
	if err != nil {
		return err
	}

	frames := -1
	if *duration > 0 {
		frames = h.Frames(*duration)
	}
	if *sweepTo != 0 && frames < 0 {
		return fmt.Errorf("-sweep-to requires -duration")
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

	sources := make([]stream.Source, *channels)
	for ch := range sources {
		p := patch
		p.Seed += float64(ch) * *seedStep
		v, err := h.NewPatchVoice(p)
		if err != nil {
			return fmt.Errorf("failed to create voice for channel %d: %w", ch, err)
		}
		sources[ch] = v
	}

	reader, err := stream.NewReader(sources, frames, *gain)
	if err != nil {
		return err
	}

	player, err := playback.New(playback.Format{
		SampleRate: *rate,
		Channels:   *channels,
		BufferSize: *buffer,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	defer func() { _ = player.Close() }()

	if *verbose {
		log.Printf("Opcode: %s (rule %d, order %d, seed %g)", patch.Opcode, patch.Rule, patch.Order, patch.Seed)
		log.Printf("Speed: %g generations/sample", patch.Speed)
		log.Printf("Format: %d Hz, %d channels, ksmps %d, buffer %s", *rate, *channels, *ksmps, *buffer)
		if playback.Headless() {
			log.Printf("Headless build: audio is discarded")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if term.IsTerminal(int(os.Stderr.Fd())) {
		go reportStatus(ctx, reader, *rate)
	}

	start := time.Now()
	err = player.Play(ctx, reader)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("playback failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\rPlayed %.2fs of audio in %.2fs\n",
		float64(reader.FramesRendered())/float64(*rate), time.Since(start).Seconds())
	return nil
}

// reportStatus rewrites a one-line status on stderr until ctx is done.
func reportStatus(ctx context.Context, r *stream.Reader, rate int) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\r%8.2fs rendered", float64(r.FramesRendered())/float64(rate))
		}
	}
}
