package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	caoscil "github.com/tphakala/go-caoscil"
)

func TestDefaultRegistry_Names(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{OpRamp, OpBlock, OpResettable}, r.Names())
}

func TestDefaultRegistry_Signatures(t *testing.T) {
	tests := []struct {
		name        string
		outputs     string
		inputs      string
		perf        string
		controlRate bool
	}{
		{OpRamp, "a", "kiio", "k", false},
		{OpResettable, "a", "aaiio", "aa", false},
		{OpBlock, "k", "iio", "", true},
	}

	r := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := r.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.outputs, e.Outputs)
			assert.Equal(t, tt.inputs, e.Inputs)
			assert.Equal(t, tt.perf, e.PerfInputs())
			assert.Equal(t, tt.controlRate, e.ControlRate())
			assert.NotNil(t, e.Configure)
		})
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := DefaultRegistry().Lookup("oscil")
	require.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := DefaultRegistry()
	err := r.Register(Entry{Name: OpRamp, Outputs: "a", Inputs: "kiio", Init: withArgs(newRamp)})
	require.ErrorIs(t, err, ErrDuplicateOpcode)
}

func TestRegistry_RegisterValidates(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"no_name", Entry{Outputs: "a", Inputs: "k", Init: withArgs(newRamp)}},
		{"no_init", Entry{Name: "x", Outputs: "a", Inputs: "k"}},
		{"bad_output", Entry{Name: "x", Outputs: "s", Inputs: "k", Init: withArgs(newRamp)}},
		{"bad_letter", Entry{Name: "x", Outputs: "a", Inputs: "kSi", Init: withArgs(newRamp)}},
		{"init_before_perf", Entry{Name: "x", Outputs: "a", Inputs: "ik", Init: withArgs(newRamp)}},
		{"optional_before_required", Entry{Name: "x", Outputs: "a", Inputs: "koi", Init: withArgs(newRamp)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.entry)
			require.ErrorIs(t, err, ErrBadEntry)
		})
	}
}

func TestRegistry_CustomEntry(t *testing.T) {
	r := NewRegistry()
	e := Entry{Name: "ca2", Outputs: "k", Inputs: "ii", Init: func(args []float64) (Instance, error) {
		return withArgs(newBlock)(append(args, 0))
	}}
	require.NoError(t, r.Register(e))

	got, err := r.Lookup("ca2")
	require.NoError(t, err)
	inst, err := got.Instantiate(30, 3)
	require.NoError(t, err)

	out := make([]float64, 1)
	require.NoError(t, inst.Perform(out))
	assert.GreaterOrEqual(t, out[0], -1.0)
}

func TestEntry_Instantiate(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		args    []float64
		wantErr error
	}{
		{"ramp_with_seed", OpRamp, []float64{30, 3, 7}, nil},
		{"ramp_seed_defaults", OpRamp, []float64{30, 3}, nil},
		{"ramp_missing_order", OpRamp, []float64{30}, ErrArgCount},
		{"ramp_too_many", OpRamp, []float64{30, 3, 0, 1}, ErrArgCount},
		{"block_bad_order", OpBlock, []float64{30, 9}, caoscil.ErrInvalidConfig},
		{"resettable_negative_rule", OpResettable, []float64{-30, 3}, caoscil.ErrInvalidConfig},
	}

	r := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := r.Lookup(tt.op)
			require.NoError(t, err)

			inst, err := e.Instantiate(tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, inst)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, inst)
		})
	}
}

func TestInstance_PerformChecksInputs(t *testing.T) {
	r := DefaultRegistry()

	ramp, err := r.Lookup(OpRamp)
	require.NoError(t, err)
	inst, err := ramp.Instantiate(30, 3)
	require.NoError(t, err)
	out := make([]float64, 8)
	require.ErrorIs(t, inst.Perform(out), ErrArgCount)
	require.ErrorIs(t, inst.Perform(out, []float64{}), ErrArgCount)
	require.NoError(t, inst.Perform(out, []float64{0.5}))

	rs, err := r.Lookup(OpResettable)
	require.NoError(t, err)
	inst, err = rs.Instantiate(30, 3)
	require.NoError(t, err)
	require.ErrorIs(t, inst.Perform(out, []float64{0.5}), ErrArgCount)
	require.ErrorIs(t, inst.Perform(out, []float64{0.5}, make([]float64, 4)), caoscil.ErrBufferMismatch)
	require.NoError(t, inst.Perform(out, []float64{0.5}, make([]float64, 8)))

	blk, err := r.Lookup(OpBlock)
	require.NoError(t, err)
	inst, err = blk.Instantiate(30, 3)
	require.NoError(t, err)
	require.ErrorIs(t, inst.Perform(out, []float64{1}), ErrArgCount)
	require.ErrorIs(t, inst.Perform(nil), ErrArgCount)
	require.NoError(t, inst.Perform(out))
}
