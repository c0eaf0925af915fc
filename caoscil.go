package caoscil

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-caoscil/internal/automaton"
	"github.com/tphakala/go-caoscil/internal/engine"
	"github.com/tphakala/go-caoscil/internal/simdops"
)

// Config holds oscillator configuration. It is fixed for the lifetime of an
// oscillator; Reset returns to the state it describes.
type Config struct {
	// Rule is the 64-entry lookup table. Bit k gives the next value of a cell
	// whose neighbourhood window reads k. Bits at or above 2^Order are never
	// consulted.
	Rule uint64

	// Order is the neighbourhood window width in cells (1-6).
	Order uint

	// Seed selects the starting state. Values within Epsilon of zero select
	// a fixed canonical state; any other value is truncated toward zero and
	// used as the state word directly.
	Seed float64
}

// Common errors returned by the oscillators.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid oscillator configuration")

	// ErrBufferMismatch indicates a trigger block shorter than the output block.
	ErrBufferMismatch = engine.ErrBufferMismatch
)

// DefaultConfig returns rule 30 at order 3 with the canonical seed.
func DefaultConfig() Config {
	return Config{
		Rule:  defaultRule,
		Order: defaultOrder,
		Seed:  defaultSeed,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := automaton.ValidateOrder(c.Order); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if math.IsNaN(c.Seed) || math.IsInf(c.Seed, 0) {
		return fmt.Errorf("%w: seed must be finite", ErrInvalidConfig)
	}

	return nil
}

// ConfigFromParams builds a Config from real-valued parameters the way a
// synthesis host passes them: rule and order are truncated toward zero, seed
// is used as given. The result is validated.
func ConfigFromParams(rule, order, seed float64) (Config, error) {
	if math.IsNaN(rule) || rule < 0 || rule >= ruleLimit {
		return Config{}, fmt.Errorf("%w: rule %v outside [0, 2^64)", ErrInvalidConfig, rule)
	}
	if math.IsNaN(order) || order < 0 || order > math.MaxUint32 {
		return Config{}, fmt.Errorf("%w: order %v out of range", ErrInvalidConfig, order)
	}

	cfg := Config{
		Rule:  uint64(rule),
		Order: uint(order),
		Seed:  seed,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SeedState returns the automaton state the configuration starts from.
func (c *Config) SeedState() uint64 {
	return automaton.Seed(c.Seed, c.Rule, c.Order)
}

// Ramp is a variable-speed, linearly interpolating automaton oscillator
// producing float64 samples.
type Ramp struct {
	config Config
	osc    *engine.Ramp[float64]
}

// NewRamp creates a ramp oscillator with the specified configuration.
func NewRamp(config Config) (*Ramp, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Ramp{
		config: config,
		osc:    engine.NewRamp[float64](config.Rule, config.Order, config.Seed),
	}, nil
}

// Process fills out with consecutive samples at speed generations per sample.
func (r *Ramp) Process(out []float64, speed float64) {
	r.osc.Process(out, speed)
}

// Next produces a single sample.
func (r *Ramp) Next(speed float64) float64 {
	return r.osc.Next(speed)
}

// Reset restores the state produced by construction.
func (r *Ramp) Reset() { r.osc.Reset() }

// State returns the current automaton state.
func (r *Ramp) State() uint64 { return r.osc.State() }

// Value returns the most recently emitted sample.
func (r *Ramp) Value() float64 { return r.osc.Value() }

// Target returns the amplitude of the latest generation.
func (r *Ramp) Target() float64 { return r.osc.Target() }

// Phase returns the phase accumulator: generations still due before the
// next automaton step.
func (r *Ramp) Phase() float64 { return r.osc.Phase() }

// Config returns the oscillator configuration.
func (r *Ramp) Config() Config { return r.config }

// GetStatistics returns processing statistics.
func (r *Ramp) GetStatistics() map[string]int64 { return r.osc.GetStatistics() }

// RampFloat32 is the float32 counterpart of Ramp. Generation timing is
// identical; only the ramp arithmetic and output use single precision.
type RampFloat32 struct {
	config Config
	osc    *engine.Ramp[float32]
}

// NewRampFloat32 creates a float32 ramp oscillator.
func NewRampFloat32(config Config) (*RampFloat32, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &RampFloat32{
		config: config,
		osc:    engine.NewRamp[float32](config.Rule, config.Order, config.Seed),
	}, nil
}

// Process fills out with consecutive samples at speed generations per sample.
func (r *RampFloat32) Process(out []float32, speed float32) {
	r.osc.Process(out, speed)
}

// Next produces a single sample.
func (r *RampFloat32) Next(speed float32) float32 {
	return r.osc.Next(speed)
}

// Reset restores the state produced by construction.
func (r *RampFloat32) Reset() { r.osc.Reset() }

// State returns the current automaton state.
func (r *RampFloat32) State() uint64 { return r.osc.State() }

// Value returns the most recently emitted sample.
func (r *RampFloat32) Value() float32 { return r.osc.Value() }

// Config returns the oscillator configuration.
func (r *RampFloat32) Config() Config { return r.config }

// GetStatistics returns processing statistics.
func (r *RampFloat32) GetStatistics() map[string]int64 { return r.osc.GetStatistics() }

// Resettable is a Ramp with a per-sample reset trigger.
type Resettable struct {
	config Config
	osc    *engine.Resettable[float64]
}

// NewResettable creates a resettable ramp oscillator.
func NewResettable(config Config) (*Resettable, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Resettable{
		config: config,
		osc:    engine.NewResettable[float64](config.Rule, config.Order, config.Seed),
	}, nil
}

// Process fills out at the given speed. A reset[i] of magnitude at least
// Epsilon restarts the automaton from the configured seed at sample i; the
// output then ramps toward the restarted sequence. reset must be at least
// as long as out, otherwise ErrBufferMismatch is returned and nothing is
// processed.
func (r *Resettable) Process(out, reset []float64, speed float64) error {
	return r.osc.Process(out, reset, speed)
}

// Next produces a single sample with the given trigger value.
func (r *Resettable) Next(speed, trigger float64) float64 {
	return r.osc.NextWithReset(speed, trigger)
}

// Reset restores the state produced by construction.
func (r *Resettable) Reset() { r.osc.Reset() }

// State returns the current automaton state.
func (r *Resettable) State() uint64 { return r.osc.State() }

// Value returns the most recently emitted sample.
func (r *Resettable) Value() float64 { return r.osc.Value() }

// Target returns the amplitude of the latest generation.
func (r *Resettable) Target() float64 { return r.osc.Target() }

// Config returns the oscillator configuration.
func (r *Resettable) Config() Config { return r.config }

// GetStatistics returns processing statistics.
func (r *Resettable) GetStatistics() map[string]int64 { return r.osc.GetStatistics() }

// Block steps the automaton once per call and returns the raw amplitude.
type Block struct {
	config Config
	osc    *engine.Block[float64]
}

// NewBlock creates a block-rate oscillator.
func NewBlock(config Config) (*Block, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Block{
		config: config,
		osc:    engine.NewBlock[float64](config.Rule, config.Order, config.Seed),
	}, nil
}

// Next evolves one generation and returns its amplitude.
func (b *Block) Next() float64 { return b.osc.Next() }

// Reset restores the seeded state.
func (b *Block) Reset() { b.osc.Reset() }

// State returns the current automaton state.
func (b *Block) State() uint64 { return b.osc.State() }

// Config returns the oscillator configuration.
func (b *Block) Config() Config { return b.config }

// GetStatistics returns processing statistics.
func (b *Block) GetStatistics() map[string]int64 { return b.osc.GetStatistics() }

// Info describes the library build.
type Info struct {
	// Cells is the number of cells in the automaton ring.
	Cells int

	// MaxSpeed is the speed cap in generations per sample.
	MaxSpeed float64

	// SIMDEnabled indicates if SIMD post-processing is active.
	SIMDEnabled bool

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// GetInfo returns information about the library build.
func GetInfo() Info {
	info := Info{
		Cells:    Cells,
		MaxSpeed: MaxSpeed,
		SIMDType: "none",
	}
	if simd := simdops.Info(); simd != "" {
		info.SIMDEnabled = true
		info.SIMDType = simd
	}
	return info
}
