package engine

import (
	"github.com/tphakala/go-caoscil/internal/automaton"
	"github.com/tphakala/go-caoscil/internal/simdops"
)

// Block steps the automaton once per call and returns the raw mapped
// amplitude. It has no speed control and no interpolation; hosts call it
// once per output block.
type Block[F simdops.Float] struct {
	rule  uint64
	order uint
	seed  float64
	state uint64

	generations int64
}

// NewBlock creates a block-rate oscillator seeded per automaton.Seed.
func NewBlock[F simdops.Float](rule uint64, order uint, seed float64) *Block[F] {
	b := &Block[F]{
		rule:  rule,
		order: order,
		seed:  seed,
	}
	b.Reset()
	return b
}

// Reset restores the seeded state.
func (b *Block[F]) Reset() {
	b.state = automaton.Seed(b.seed, b.rule, b.order)
	b.generations = 0
}

// Next evolves one generation and returns its amplitude.
func (b *Block[F]) Next() F {
	b.state = automaton.Evolve(b.state, b.rule, b.order)
	b.generations++
	return F(automaton.ToAmplitude(b.state))
}

// State returns the current automaton state.
func (b *Block[F]) State() uint64 {
	return b.state
}

// GetStatistics returns processing statistics.
func (b *Block[F]) GetStatistics() map[string]int64 {
	return map[string]int64{
		statGenerations: b.generations,
	}
}
