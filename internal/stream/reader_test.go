package stream

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	caoscil "github.com/tphakala/go-caoscil"
	"github.com/tphakala/go-caoscil/internal/host"
)

func newVoice(t *testing.T, blockSize int, seed float64) *host.Voice {
	t.Helper()
	h, err := host.New(blockSize, host.DefaultSampleRate)
	require.NoError(t, err)
	v, err := h.NewVoice(host.OpRamp, host.Constant(0.1), float64(caoscil.Rule30), 3, seed)
	require.NoError(t, err)
	return v
}

func decode(t *testing.T, b []byte) []float32 {
	t.Helper()
	require.Zero(t, len(b)%BytesPerSample)
	out := make([]float32, len(b)/BytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*BytesPerSample:]))
	}
	return out
}

func TestNewReader_Validates(t *testing.T) {
	_, err := NewReader(nil, 10, 1)
	require.ErrorIs(t, err, ErrNoSources)

	_, err = NewReader([]Source{newVoice(t, 32, 0), newVoice(t, 64, 0)}, 10, 1)
	require.Error(t, err)
}

func TestReader_MonoMatchesRender(t *testing.T) {
	const frames = 1000
	r, err := NewReader([]Source{newVoice(t, 64, 5)}, frames, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Channels())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	got := decode(t, data)
	require.Len(t, got, frames)
	assert.Equal(t, int64(frames), r.FramesRendered())

	want, err := caoscil.Render(caoscil.Config{Rule: caoscil.Rule30, Order: 3, Seed: 5}, 0.1, frames)
	require.NoError(t, err)
	for i := range want {
		require.InDelta(t, float32(want[i]), got[i], 0, "frame %d", i)
	}
}

func TestReader_StereoInterleavesAndScales(t *testing.T) {
	const frames = 300
	left, right := newVoice(t, 64, 1), newVoice(t, 64, 2)
	r, err := NewReader([]Source{left, right}, frames, 0.5)
	require.NoError(t, err)

	got := make([]float32, frames*2)
	n, err := r.ReadFrames(got)
	require.NoError(t, err)
	require.Equal(t, frames*2, n)

	l, rr, err := caoscil.RenderStereo(
		caoscil.Config{Rule: caoscil.Rule30, Order: 3, Seed: 1},
		caoscil.Config{Rule: caoscil.Rule30, Order: 3, Seed: 2},
		0.1, frames)
	require.NoError(t, err)
	for i := range frames {
		require.InDelta(t, float32(l[i])*0.5, got[2*i], 1e-7, "left %d", i)
		require.InDelta(t, float32(rr[i])*0.5, got[2*i+1], 1e-7, "right %d", i)
	}

	_, err = r.ReadFrames(got)
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_ThreeChannels(t *testing.T) {
	r, err := NewReader([]Source{newVoice(t, 16, 1), newVoice(t, 16, 2), newVoice(t, 16, 3)}, 40, 1)
	require.NoError(t, err)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, decode(t, data), 120)
}

func TestReader_SmallReads(t *testing.T) {
	r, err := NewReader([]Source{newVoice(t, 64, 0)}, 10, 1)
	require.NoError(t, err)

	n, err := r.Read(make([]byte, 3))
	require.NoError(t, err)
	assert.Zero(t, n)

	total := 0
	buf := make([]byte, 12) // three samples per read
	for {
		n, err := r.Read(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, 10*BytesPerSample, total)
}

func TestReader_Unbounded(t *testing.T) {
	r, err := NewReader([]Source{newVoice(t, 64, 0)}, -1, 1)
	require.NoError(t, err)

	buf := make([]byte, 4096)
	for range 10 {
		n, err := r.Read(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
	}
	assert.GreaterOrEqual(t, r.FramesRendered(), int64(10*1024))
}

type failingSource struct{}

func (failingSource) Next([]float64) error { return errors.New("boom") }
func (failingSource) BlockSize() int       { return 8 }

func TestReader_PropagatesSourceError(t *testing.T) {
	r, err := NewReader([]Source{failingSource{}}, 100, 1)
	require.NoError(t, err)
	_, err = r.Read(make([]byte, 64))
	require.ErrorContains(t, err, "boom")
}
