package host

import (
	"fmt"
	"math"

	caoscil "github.com/tphakala/go-caoscil"
)

// Patch describes one oscillator voice as command-line tools configure it.
type Patch struct {
	// Opcode is one of OpRamp, OpResettable or OpBlock.
	Opcode string

	Rule  uint64
	Order uint
	Seed  float64

	// Speed is the generation rate in generations per sample.
	Speed float64

	// SweepTo, when non-zero, moves the speed linearly from Speed to SweepTo
	// across SweepFrames frames. Only the ramp opcode sweeps.
	SweepTo     float64
	SweepFrames int

	// ResetEvery is the trigger period in frames for OpResettable.
	ResetEvery int
}

// Config returns the oscillator configuration of the patch.
func (p *Patch) Config() caoscil.Config {
	return caoscil.Config{Rule: p.Rule, Order: p.Order, Seed: p.Seed}
}

// Feed returns the input feeder matching the opcode.
func (p *Patch) Feed() InputFunc {
	switch p.Opcode {
	case OpResettable:
		return Triggered(p.Speed, p.ResetEvery)
	case OpBlock:
		return nil
	default:
		if p.SweepTo != 0 {
			return Sweep(p.Speed, p.SweepTo, p.SweepFrames)
		}
		return Constant(p.Speed)
	}
}

// Validate checks the fields the opcode consumes before instantiation.
func (p *Patch) Validate() error {
	if math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
		return fmt.Errorf("%w: speed must be finite", ErrInvalidHost)
	}
	if p.Opcode == OpResettable && p.ResetEvery < 0 {
		return fmt.Errorf("%w: negative reset period %d", ErrInvalidHost, p.ResetEvery)
	}
	if p.SweepTo != 0 && p.SweepFrames < 0 {
		return fmt.Errorf("%w: negative sweep length %d", ErrInvalidHost, p.SweepFrames)
	}
	return nil
}

// NewPatchVoice validates p and instantiates it with its typed
// configuration, so every rule bit reaches the automaton.
func (h *Host) NewPatchVoice(p Patch) (*Voice, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return h.NewConfigVoice(p.Opcode, p.Feed(), p.Config())
}
