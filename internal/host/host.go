package host

import (
	"errors"
	"fmt"

	caoscil "github.com/tphakala/go-caoscil"
)

// Host defaults
const (
	// DefaultBlockSize is the number of frames per Perform call (ksmps).
	DefaultBlockSize = 64

	// DefaultSampleRate is the audio rate in Hz.
	DefaultSampleRate = 48000

	// maxBlockSize bounds the per-voice scratch buffers.
	maxBlockSize = 1 << 16
)

// ErrInvalidHost indicates invalid host parameters.
var ErrInvalidHost = errors.New("invalid host configuration")

// InputFunc fills the per-call input buffers for the block starting at
// frame offset. Audio inputs hold one element per frame of the block,
// control inputs a single element. Buffers keep their previous contents
// when not overwritten.
type InputFunc func(offset int, inputs [][]float64)

// Host drives opcode instances block by block.
type Host struct {
	// BlockSize is the number of frames per block.
	BlockSize int

	// SampleRate is the audio rate in Hz. Oscillators do not depend on it;
	// it converts durations to frame counts.
	SampleRate int

	// Registry resolves opcode names. DefaultRegistry is used when nil.
	Registry *Registry
}

// New creates a host with the default registry.
func New(blockSize, sampleRate int) (*Host, error) {
	h := &Host{
		BlockSize:  blockSize,
		SampleRate: sampleRate,
		Registry:   DefaultRegistry(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks if the host parameters are valid.
func (h *Host) Validate() error {
	if h.BlockSize < 1 || h.BlockSize > maxBlockSize {
		return fmt.Errorf("%w: block size must be 1-%d", ErrInvalidHost, maxBlockSize)
	}
	if h.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidHost)
	}
	return nil
}

// Frames converts a duration in seconds to a frame count.
func (h *Host) Frames(seconds float64) int {
	return int(seconds * float64(h.SampleRate))
}

// Voice binds an opcode instance to its input buffers and a feeder.
type Voice struct {
	entry     Entry
	inst      Instance
	feed      InputFunc
	inputs    [][]float64
	views     [][]float64
	blockSize int
	frame     int
	ctl       [1]float64
}

// NewVoice instantiates the named opcode with init args. feed may be nil when
// the opcode takes no per-call inputs or the inputs stay zero.
func (h *Host) NewVoice(name string, feed InputFunc, args ...float64) (*Voice, error) {
	e, err := h.lookup(name)
	if err != nil {
		return nil, err
	}
	inst, err := e.Instantiate(args...)
	if err != nil {
		return nil, err
	}
	return h.bind(e, inst, feed), nil
}

// NewConfigVoice instantiates the named opcode from a typed configuration
// instead of real-valued init arguments.
func (h *Host) NewConfigVoice(name string, feed InputFunc, cfg caoscil.Config) (*Voice, error) {
	e, err := h.lookup(name)
	if err != nil {
		return nil, err
	}
	inst, err := e.InstantiateConfig(cfg)
	if err != nil {
		return nil, err
	}
	return h.bind(e, inst, feed), nil
}

// lookup validates the host and resolves name.
func (h *Host) lookup(name string) (Entry, error) {
	if err := h.Validate(); err != nil {
		return Entry{}, err
	}
	reg := h.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	return reg.Lookup(name)
}

// bind allocates the per-call input buffers for inst.
func (h *Host) bind(e Entry, inst Instance, feed InputFunc) *Voice {
	perf := e.PerfInputs()
	v := &Voice{
		entry:     e,
		inst:      inst,
		feed:      feed,
		inputs:    make([][]float64, len(perf)),
		views:     make([][]float64, len(perf)),
		blockSize: h.BlockSize,
	}
	for i, c := range perf {
		if c == ArgAudio {
			v.inputs[i] = make([]float64, h.BlockSize)
		} else {
			v.inputs[i] = make([]float64, 1)
		}
	}
	return v
}

// Entry returns the opcode description.
func (v *Voice) Entry() Entry { return v.entry }

// Frame returns the number of frames rendered so far.
func (v *Voice) Frame() int { return v.frame }

// BlockSize returns the largest block Next accepts.
func (v *Voice) BlockSize() int { return v.blockSize }

// Next renders one block into out, which may be shorter than the block size
// for a final partial block. Control-rate opcodes fill the whole block with
// the value computed for it.
func (v *Voice) Next(out []float64) error {
	n := len(out)
	if n == 0 {
		return nil
	}
	if n > v.blockSize {
		return fmt.Errorf("%w: block of %d exceeds block size %d", ErrArgCount, n, v.blockSize)
	}

	if v.feed != nil {
		v.feed(v.frame, v.inputs)
	}
	// Audio inputs are trimmed to the block; control inputs stay single.
	for i, in := range v.inputs {
		v.views[i] = in[:min(n, len(in))]
	}

	if v.entry.ControlRate() {
		if err := v.inst.Perform(v.ctl[:], v.views...); err != nil {
			return err
		}
		for i := range out {
			out[i] = v.ctl[0]
		}
	} else if err := v.inst.Perform(out, v.views...); err != nil {
		return err
	}

	v.frame += n
	return nil
}

// Reset restores the instance and rewinds the frame counter.
func (v *Voice) Reset() {
	v.inst.Reset()
	v.frame = 0
}

// Render instantiates the named opcode and renders n frames.
func (h *Host) Render(name string, n int, feed InputFunc, args ...float64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative frame count %d", ErrInvalidHost, n)
	}
	v, err := h.NewVoice(name, feed, args...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := v.RenderInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderInto fills out block by block.
func (v *Voice) RenderInto(out []float64) error {
	for start := 0; start < len(out); start += v.blockSize {
		end := min(start+v.blockSize, len(out))
		if err := v.Next(out[start:end]); err != nil {
			return fmt.Errorf("frame %d: %w", start, err)
		}
	}
	return nil
}
