package host

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	caoscil "github.com/tphakala/go-caoscil"
	"github.com/tphakala/go-caoscil/internal/testutil"
)

func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{"ramp", Patch{Opcode: OpRamp, Speed: 0.5}, false},
		{"nan speed", Patch{Opcode: OpRamp, Speed: math.NaN()}, true},
		{"inf speed", Patch{Opcode: OpRamp, Speed: math.Inf(1)}, true},
		{"negative reset", Patch{Opcode: OpResettable, Speed: 1, ResetEvery: -1}, true},
		{"negative reset ignored by ramp", Patch{Opcode: OpRamp, Speed: 1, ResetEvery: -1}, false},
		{"negative sweep", Patch{Opcode: OpRamp, SweepTo: 1, SweepFrames: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidHost)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPatch_RampMatchesLibrary(t *testing.T) {
	h := newTestHost(t, DefaultBlockSize)
	p := Patch{Opcode: OpRamp, Rule: caoscil.Rule90, Order: 3, Seed: 9, Speed: 0.25}

	v, err := h.NewPatchVoice(p)
	require.NoError(t, err)
	got := make([]float64, 700)
	require.NoError(t, v.RenderInto(got))

	want, err := caoscil.Render(caoscil.Config{Rule: caoscil.Rule90, Order: 3, Seed: 9}, 0.25, len(got))
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, want, got)
}

func TestPatch_ResettableMatchesLibrary(t *testing.T) {
	h := newTestHost(t, 32)
	p := Patch{Opcode: OpResettable, Rule: caoscil.Rule30, Order: 3, Speed: 0.4, ResetEvery: 50}

	v, err := h.NewPatchVoice(p)
	require.NoError(t, err)
	got := make([]float64, 333)
	require.NoError(t, v.RenderInto(got))

	want, err := caoscil.RenderResettable(caoscil.DefaultConfig(), 0.4, 50, len(got))
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, want, got)
}

func TestPatch_BlockIgnoresSpeed(t *testing.T) {
	h := newTestHost(t, 16)
	v, err := h.NewPatchVoice(Patch{Opcode: OpBlock, Rule: caoscil.Rule30, Order: 3, Speed: 99})
	require.NoError(t, err)
	assert.True(t, v.Entry().ControlRate())

	got := make([]float64, 64)
	require.NoError(t, v.RenderInto(got))
	for b := range 4 {
		testutil.AssertConstant(t, got[b*16:(b+1)*16], got[b*16], "block %d", b)
	}
}

func TestPatch_SweepStartsFrozen(t *testing.T) {
	h := newTestHost(t, DefaultBlockSize)
	p := Patch{Opcode: OpRamp, Rule: caoscil.Rule30, Order: 3, Speed: 0, SweepTo: 1, SweepFrames: 1 << 20}

	v, err := h.NewPatchVoice(p)
	require.NoError(t, err)
	out := make([]float64, DefaultBlockSize)
	require.NoError(t, v.Next(out))

	// The first block of the sweep runs at speed 0.
	frozen, err := caoscil.Render(caoscil.DefaultConfig(), 0, DefaultBlockSize)
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, frozen, out)
}

func TestPatch_FullWidthRuleReachesAutomaton(t *testing.T) {
	const blockSize = 16
	for _, rule := range []uint64{0x9E3779B97F4A7C15, math.MaxUint64, 1<<53 + 1} {
		h := newTestHost(t, blockSize)
		v, err := h.NewPatchVoice(Patch{Opcode: OpBlock, Rule: rule, Order: 6, Seed: 12345})
		require.NoError(t, err, "rule %#x", rule)

		ref, err := caoscil.NewBlock(caoscil.Config{Rule: rule, Order: 6, Seed: 12345})
		require.NoError(t, err)

		out := make([]float64, blockSize)
		for b := range 32 {
			require.NoError(t, v.Next(out))
			testutil.AssertConstant(t, out, ref.Next(), "rule %#x block %d", rule, b)
		}
	}
}

func TestPatch_FullWidthRuleRamp(t *testing.T) {
	const rule = 0x9E3779B97F4A7C15
	h := newTestHost(t, DefaultBlockSize)
	v, err := h.NewPatchVoice(Patch{Opcode: OpRamp, Rule: rule, Order: 6, Seed: 7, Speed: 0.5})
	require.NoError(t, err)

	got := make([]float64, 500)
	require.NoError(t, v.RenderInto(got))
	want, err := caoscil.Render(caoscil.Config{Rule: rule, Order: 6, Seed: 7}, 0.5, len(got))
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, want, got)
}

func TestNewConfigVoice_RequiresTypedInit(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Entry{Name: "argsonly", Outputs: "k", Inputs: "iio", Init: withArgs(newBlock)}))
	h := &Host{BlockSize: 8, SampleRate: DefaultSampleRate, Registry: r}

	_, err := h.NewConfigVoice("argsonly", nil, caoscil.DefaultConfig())
	require.ErrorIs(t, err, ErrBadEntry)

	_, err = h.NewConfigVoice("missing", nil, caoscil.DefaultConfig())
	require.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestNewConfigVoice_RejectsInvalidConfig(t *testing.T) {
	h := newTestHost(t, 8)
	_, err := h.NewConfigVoice(OpRamp, nil, caoscil.Config{Rule: 30, Order: 0})
	require.ErrorIs(t, err, caoscil.ErrInvalidConfig)
}
