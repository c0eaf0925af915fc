package host

import (
	"fmt"

	caoscil "github.com/tphakala/go-caoscil"
)

// Opcode names
const (
	OpRamp       = "caoscil"
	OpResettable = "caoscilr"
	OpBlock      = "caoscilk"
)

// Opcodes returns the oscillator opcode table.
func Opcodes() []Entry {
	return []Entry{
		{Name: OpRamp, Outputs: "a", Inputs: "kiio", Init: withArgs(newRamp), Configure: newRamp},
		{Name: OpResettable, Outputs: "a", Inputs: "aaiio", Init: withArgs(newResettable), Configure: newResettable},
		{Name: OpBlock, Outputs: "k", Inputs: "iio", Init: withArgs(newBlock), Configure: newBlock},
	}
}

// Init arguments are rule, order, seed in every opcode.
func configFromArgs(args []float64) (caoscil.Config, error) {
	const want = 3
	if len(args) != want {
		return caoscil.Config{}, fmt.Errorf("%w: want %d init arguments, got %d", ErrArgCount, want, len(args))
	}
	return caoscil.ConfigFromParams(args[0], args[1], args[2])
}

// withArgs adapts a typed constructor to real-valued init arguments.
func withArgs(fn ConfigFunc) InitFunc {
	return func(args []float64) (Instance, error) {
		cfg, err := configFromArgs(args)
		if err != nil {
			return nil, err
		}
		return fn(cfg)
	}
}

// checkInputs verifies the per-call input count and that every input holds
// at least min elements.
func checkInputs(inputs [][]float64, count, minLen int) error {
	if len(inputs) != count {
		return fmt.Errorf("%w: want %d inputs, got %d", ErrArgCount, count, len(inputs))
	}
	for i, in := range inputs {
		if len(in) < minLen {
			return fmt.Errorf("%w: input %d has %d samples, need %d", ErrArgCount, i, len(in), minLen)
		}
	}
	return nil
}

type rampInstance struct {
	osc *caoscil.Ramp
}

func newRamp(cfg caoscil.Config) (Instance, error) {
	osc, err := caoscil.NewRamp(cfg)
	if err != nil {
		return nil, err
	}
	return &rampInstance{osc: osc}, nil
}

// Perform takes one control input: speed.
func (r *rampInstance) Perform(out []float64, inputs ...[]float64) error {
	if err := checkInputs(inputs, 1, 1); err != nil {
		return err
	}
	r.osc.Process(out, inputs[0][0])
	return nil
}

func (r *rampInstance) Reset() { r.osc.Reset() }

type resettableInstance struct {
	osc *caoscil.Resettable
}

func newResettable(cfg caoscil.Config) (Instance, error) {
	osc, err := caoscil.NewResettable(cfg)
	if err != nil {
		return nil, err
	}
	return &resettableInstance{osc: osc}, nil
}

// Perform takes two audio inputs: speed and reset. Speed is read once per
// block from its first sample.
func (r *resettableInstance) Perform(out []float64, inputs ...[]float64) error {
	if err := checkInputs(inputs, 2, 1); err != nil {
		return err
	}
	return r.osc.Process(out, inputs[1], inputs[0][0])
}

func (r *resettableInstance) Reset() { r.osc.Reset() }

type blockInstance struct {
	osc *caoscil.Block
}

func newBlock(cfg caoscil.Config) (Instance, error) {
	osc, err := caoscil.NewBlock(cfg)
	if err != nil {
		return nil, err
	}
	return &blockInstance{osc: osc}, nil
}

// Perform takes no inputs and writes one value to out[0].
func (b *blockInstance) Perform(out []float64, inputs ...[]float64) error {
	if err := checkInputs(inputs, 0, 0); err != nil {
		return err
	}
	if len(out) == 0 {
		return fmt.Errorf("%w: empty output", ErrArgCount)
	}
	out[0] = b.osc.Next()
	return nil
}

func (b *blockInstance) Reset() { b.osc.Reset() }
