// Command caoscil inspects cellular-automaton oscillators.
//
// It prints the spacetime diagram of a rule from a seed, optionally writes it
// as a PNG and reports signal statistics of the oscillator output.
//
// Usage:
//
//	caoscil -rule 30 -generations 32
//	caoscil -rule 110 -order 3 -seed 12345 -png rule110.png -scale 8
//	caoscil -analyze -speed 0.5 -frames 48000
//	caoscil -opcodes
//	caoscil -info
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	caoscil "github.com/tphakala/go-caoscil"
	"github.com/tphakala/go-caoscil/internal/analysis"
	"github.com/tphakala/go-caoscil/internal/diagram"
	"github.com/tphakala/go-caoscil/internal/host"
)

const (
	defaultGenerations = 32
	defaultFrames      = 48000
	defaultSpeed       = 1.0
)

// inspectOptions selects what inspect prints.
type inspectOptions struct {
	config      caoscil.Config
	generations int
	quiet       bool

	pngPath string
	image   diagram.Options

	analyze    bool
	speed      float64
	frames     int
	sampleRate int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rule := flag.Uint64("rule", caoscil.Rule30, "Elementary CA rule number")
	order := flag.Uint("order", 3, "Neighbourhood size (1-6)")
	seed := flag.Float64("seed", 0, "Initial state; values near zero use the canonical seed")
	generations := flag.Int("generations", defaultGenerations, "Number of generations to show")
	quiet := flag.Bool("q", false, "Do not print the text diagram")
	pngPath := flag.String("png", "", "Write the diagram as PNG to this file")
	scale := flag.Int("scale", diagram.DefaultOptions().Scale, "PNG pixels per cell")
	strip := flag.Int("strip", diagram.DefaultOptions().StripWidth, "Width of the PNG amplitude strip in cells (0 disables)")
	analyze := flag.Bool("analyze", false, "Render the ramp oscillator and print signal statistics")
	speed := flag.Float64("speed", defaultSpeed, "Generations per sample for -analyze")
	frames := flag.Int("frames", defaultFrames, "Frames rendered for -analyze")
	rate := flag.Int("rate", host.DefaultSampleRate, "Sample rate in Hz for -analyze")
	opcodes := flag.Bool("opcodes", false, "List host opcodes and exit")
	info := flag.Bool("info", false, "Print library information and exit")
	flag.Parse()

	switch {
	case *info:
		printInfo(os.Stdout)
		return nil
	case *opcodes:
		printOpcodes(os.Stdout, host.DefaultRegistry())
		return nil
	}

	opts := inspectOptions{
		config:      caoscil.Config{Rule: *rule, Order: *order, Seed: *seed},
		generations: *generations,
		quiet:       *quiet,
		pngPath:     *pngPath,
		image:       diagram.DefaultOptions(),
		analyze:     *analyze,
		speed:       *speed,
		frames:      *frames,
		sampleRate:  *rate,
	}
	opts.image.Scale = *scale
	opts.image.StripWidth = *strip

	return inspect(os.Stdout, opts)
}

// inspect prints the diagram and optional analysis to w.
func inspect(w io.Writer, opts inspectOptions) error {
	if err := opts.config.Validate(); err != nil {
		return err
	}

	rows, err := diagram.History(opts.config.SeedState(), opts.config.Rule, opts.config.Order, opts.generations)
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintf(w, "rule %d, order %d, seed %g (state %#016x)\n",
			opts.config.Rule, opts.config.Order, opts.config.Seed, rows[0])
		fmt.Fprint(w, diagram.Text(rows))
	}

	if opts.pngPath != "" {
		if err := writePNG(opts.pngPath, rows, opts.image); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", opts.pngPath)
	}

	if opts.analyze {
		samples, err := caoscil.Render(opts.config, opts.speed, opts.frames)
		if err != nil {
			return err
		}
		report, err := analysis.Analyze(samples, float64(opts.sampleRate))
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		fmt.Fprintf(w, "speed %g: %s\n", opts.speed, report)
	}
	return nil
}

// writePNG writes the diagram of rows to path.
func writePNG(path string, rows []uint64, opts diagram.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	if err := diagram.WritePNG(f, rows, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	return f.Close()
}

// printInfo prints library build information.
func printInfo(w io.Writer) {
	info := caoscil.GetInfo()
	fmt.Fprintf(w, "cells:     %d\n", info.Cells)
	fmt.Fprintf(w, "max speed: %g generations/sample\n", info.MaxSpeed)
	fmt.Fprintf(w, "simd:      %s (enabled: %t)\n", info.SIMDType, info.SIMDEnabled)
}

// printOpcodes lists the registered opcodes with their signatures.
func printOpcodes(w io.Writer, reg *host.Registry) {
	for _, name := range reg.Names() {
		e, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%-10s out %-2s in %s\n", e.Name, e.Outputs, e.Inputs)
	}
}
