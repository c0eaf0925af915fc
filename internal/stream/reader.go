package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/tphakala/go-caoscil/internal/simdops"
)

// BytesPerSample is the size of one encoded float32 sample.
const BytesPerSample = 4

// ErrNoSources indicates a Reader created without channels.
var ErrNoSources = errors.New("stream: at least one source is required")

// Source renders consecutive blocks of one channel. host.Voice implements it.
type Source interface {
	// Next fills out, which is at most BlockSize samples long.
	Next(out []float64) error

	// BlockSize returns the largest block Next accepts.
	BlockSize() int
}

// Reader serves interleaved little-endian float32 PCM rendered from one
// Source per channel. It renders lazily, one block per channel at a time,
// as the consumer reads.
type Reader struct {
	sources []Source
	ring    *RingBuffer[float32]
	gain    float32

	// remaining is the number of frames still to render; -1 renders forever.
	remaining int

	block    []float64
	planar   [][]float32
	frame    []float32
	pending  []float32
	rendered atomic.Int64
}

// NewReader creates a reader over sources, one per channel. frames limits
// the stream length; a negative value streams until the reader is dropped.
// Every sample is multiplied by gain.
func NewReader(sources []Source, frames int, gain float64) (*Reader, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	blockSize := sources[0].BlockSize()
	for i, s := range sources {
		if s.BlockSize() != blockSize {
			return nil, fmt.Errorf("stream: source %d block size %d differs from %d", i, s.BlockSize(), blockSize)
		}
	}

	channels := len(sources)
	r := &Reader{
		sources:   sources,
		ring:      NewRingBuffer[float32](blockSize * channels * bufferGrowthFactor),
		gain:      float32(gain),
		remaining: frames,
		block:     make([]float64, blockSize),
		planar:    make([][]float32, channels),
		frame:     make([]float32, blockSize*channels),
	}
	for ch := range r.planar {
		r.planar[ch] = make([]float32, blockSize)
	}
	if frames < 0 {
		r.remaining = -1
	}
	return r, nil
}

// Channels returns the number of interleaved channels.
func (r *Reader) Channels() int { return len(r.sources) }

// FramesRendered returns the number of frames rendered so far. It may be
// called while another goroutine reads.
func (r *Reader) FramesRendered() int64 { return r.rendered.Load() }

// Read implements io.Reader. Samples arrive in order; a read may end in the
// middle of a frame.
func (r *Reader) Read(p []byte) (int, error) {
	want := len(p) / BytesPerSample
	if want == 0 {
		return 0, nil
	}

	for r.ring.Available() < want && r.remaining != 0 {
		if err := r.renderBlock(); err != nil {
			return 0, err
		}
	}

	if cap(r.pending) < want {
		r.pending = make([]float32, want)
	}
	n := r.ring.ReadInto(r.pending[:want])
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range r.pending[:n] {
		binary.LittleEndian.PutUint32(p[i*BytesPerSample:], math.Float32bits(v))
	}
	return n * BytesPerSample, nil
}

// ReadFrames renders up to len(dst)/Channels() frames into dst as
// interleaved float32 and returns the number of samples written.
func (r *Reader) ReadFrames(dst []float32) (int, error) {
	want := len(dst) - len(dst)%len(r.sources)
	for r.ring.Available() < want && r.remaining != 0 {
		if err := r.renderBlock(); err != nil {
			return 0, err
		}
	}
	n := r.ring.ReadInto(dst[:want])
	if n == 0 && want > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// renderBlock renders the next block of every channel, applies the gain and
// queues the interleaved frames.
func (r *Reader) renderBlock() error {
	n := len(r.block)
	if r.remaining >= 0 {
		n = min(n, r.remaining)
	}

	for ch, src := range r.sources {
		out := r.block[:n]
		if err := src.Next(out); err != nil {
			return fmt.Errorf("stream: channel %d: %w", ch, err)
		}
		dst := r.planar[ch][:n]
		for i, v := range out {
			dst[i] = float32(v)
		}
		simdops.Gain(dst, r.gain)
	}

	frame := r.frame[:n*len(r.sources)]
	interleave(frame, r.planar, n)
	r.ring.Write(frame)

	r.rendered.Add(int64(n))
	if r.remaining > 0 {
		r.remaining -= n
	}
	return nil
}

// interleave writes n frames from planar channels into dst.
func interleave(dst []float32, planar [][]float32, n int) {
	switch len(planar) {
	case 1:
		copy(dst, planar[0][:n])
	case 2:
		simdops.Float32Ops().Interleave2(dst, planar[0][:n], planar[1][:n])
	default:
		channels := len(planar)
		for ch, src := range planar {
			for i := range n {
				dst[i*channels+ch] = src[i]
			}
		}
	}
}
