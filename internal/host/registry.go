// Package host adapts the oscillators to a block-based synthesis host.
//
// An opcode is described by an Entry: its name, the rate of its output and a
// signature string for its inputs. Init-time arguments ('i' required, 'o'
// optional, defaulting to 0) are consumed once by Instantiate; per-call
// inputs ('a' audio blocks, 'k' control values) are passed to
// Instance.Perform for every block.
package host

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	caoscil "github.com/tphakala/go-caoscil"
)

// Signature letters
const (
	ArgAudio    = 'a' // one sample per frame, passed as a block
	ArgControl  = 'k' // one value per block
	ArgInit     = 'i' // required init-time argument
	ArgOptional = 'o' // optional init-time argument, defaults to 0
)

// Common errors returned by the registry and instances.
var (
	// ErrDuplicateOpcode indicates an opcode name registered twice.
	ErrDuplicateOpcode = errors.New("opcode already registered")

	// ErrUnknownOpcode indicates a lookup for an unregistered name.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrArgCount indicates a wrong number of init arguments or per-call inputs.
	ErrArgCount = errors.New("wrong number of arguments")

	// ErrBadEntry indicates an entry with a malformed signature.
	ErrBadEntry = errors.New("malformed opcode entry")
)

// Instance is a live opcode: one oscillator plus its host-facing glue.
type Instance interface {
	// Perform computes one block. out receives the output (only out[0] for
	// control-rate opcodes); inputs carry one slice per per-call input in
	// signature order. Control inputs read element 0.
	Perform(out []float64, inputs ...[]float64) error

	// Reset restores the state produced by Init.
	Reset()
}

// InitFunc builds an Instance from init-time arguments. args always has one
// element per 'i' and 'o' letter; missing optional arguments are 0.
type InitFunc func(args []float64) (Instance, error)

// ConfigFunc builds an Instance from a typed configuration. It skips the
// real-valued init arguments, so rules keep all 64 bits.
type ConfigFunc func(cfg caoscil.Config) (Instance, error)

// Entry describes an opcode.
type Entry struct {
	Name    string
	Outputs string
	Inputs  string
	Init    InitFunc

	// Configure is optional.
	Configure ConfigFunc
}

// PerfInputs returns the per-call part of the input signature.
func (e Entry) PerfInputs() string {
	return strings.Map(func(r rune) rune {
		if r == ArgAudio || r == ArgControl {
			return r
		}
		return -1
	}, e.Inputs)
}

// ControlRate reports whether the opcode produces one value per block.
func (e Entry) ControlRate() bool {
	return e.Outputs == string(ArgControl)
}

// Instantiate validates args against the init signature and calls Init.
func (e Entry) Instantiate(args ...float64) (Instance, error) {
	var required, optional int
	for _, c := range e.Inputs {
		switch c {
		case ArgInit:
			required++
		case ArgOptional:
			optional++
		}
	}

	if len(args) < required || len(args) > required+optional {
		return nil, fmt.Errorf("%w: %s takes %d-%d init arguments, got %d",
			ErrArgCount, e.Name, required, required+optional, len(args))
	}

	full := make([]float64, required+optional)
	copy(full, args)
	inst, err := e.Init(full)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return inst, nil
}

// InstantiateConfig builds an instance from cfg through Configure.
func (e Entry) InstantiateConfig(cfg caoscil.Config) (Instance, error) {
	if e.Configure == nil {
		return nil, fmt.Errorf("%w: %s has no typed init", ErrBadEntry, e.Name)
	}
	inst, err := e.Configure(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return inst, nil
}

// validate checks the signature strings. Per-call inputs must precede init
// arguments, and optional arguments must trail required ones.
func (e Entry) validate() error {
	if e.Name == "" || e.Init == nil {
		return fmt.Errorf("%w: name and init function are required", ErrBadEntry)
	}
	if e.Outputs != string(ArgAudio) && e.Outputs != string(ArgControl) {
		return fmt.Errorf("%w: %s: output %q", ErrBadEntry, e.Name, e.Outputs)
	}

	stage := 0 // 0 per-call, 1 required init, 2 optional init
	for _, c := range e.Inputs {
		var next int
		switch c {
		case ArgAudio, ArgControl:
			next = 0
		case ArgInit:
			next = 1
		case ArgOptional:
			next = 2
		default:
			return fmt.Errorf("%w: %s: unknown input letter %q", ErrBadEntry, e.Name, c)
		}
		if next < stage {
			return fmt.Errorf("%w: %s: input %q out of order", ErrBadEntry, e.Name, e.Inputs)
		}
		stage = next
	}
	return nil
}

// Registry maps opcode names to entries. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds e to the registry.
func (r *Registry) Register(e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOpcode, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownOpcode, name)
	}
	return e, nil
}

// Names returns the registered opcode names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a new registry holding the oscillator opcodes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range Opcodes() {
		if err := r.Register(e); err != nil {
			panic(fmt.Sprintf("host: registering %s: %v", e.Name, err))
		}
	}
	return r
}
