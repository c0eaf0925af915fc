package caoscil

import (
	"github.com/tphakala/go-caoscil/internal/automaton"
	"github.com/tphakala/go-caoscil/internal/engine"
)

// Elementary rule presets. Each is meant for Order 3.
const (
	// Rule30 produces chaotic, noise-like patterns.
	Rule30 uint64 = 30

	// Rule90 is the additive rule generating a Sierpinski triangle from a
	// single cell.
	Rule90 uint64 = 90

	// Rule110 is the Turing-complete rule with long-lived structures.
	Rule110 uint64 = 110

	// Rule184 is the traffic-flow rule; particles drift around the ring.
	Rule184 uint64 = 184
)

// Automaton limits
const (
	// Cells is the number of cells in the ring.
	Cells = automaton.Cells

	// MinOrder and MaxOrder bound the neighbourhood window width.
	MinOrder = automaton.MinOrder
	MaxOrder = automaton.MaxOrder

	// Epsilon is the threshold below which seed, speed and trigger values
	// count as zero.
	Epsilon = automaton.Epsilon

	// MaxSpeed is the largest speed magnitude used, in generations per sample.
	MaxSpeed = engine.MaxSpeed
)

// Defaults used by DefaultConfig.
const (
	defaultRule  = Rule30
	defaultOrder = 3
	defaultSeed  = 0.0
)

// ruleLimit is the first real value that no longer fits a rule word (2^64).
const ruleLimit = 0x1p64
