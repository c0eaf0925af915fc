//go:build !headless

package playback

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns the process-wide oto context. Only one Player may exist per
// process.
type Player struct {
	ctx    *oto.Context
	format Format

	mu     sync.Mutex
	player *oto.Player
}

// New opens the default audio device with format.
func New(format Format) (*Player, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   format.bufferSize(),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{ctx: ctx, format: format}, nil
}

// Play streams r to the device and blocks until r is exhausted and the
// device buffer has drained, or ctx is cancelled.
func (p *Player) Play(ctx context.Context, r io.Reader) error {
	p.mu.Lock()
	p.player = p.ctx.NewPlayer(r)
	player := p.player
	p.mu.Unlock()

	defer p.stop()
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Err()
}

// stop closes the active oto player.
func (p *Player) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		_ = p.player.Close()
		p.player = nil
	}
}

// Close stops playback. The oto context itself lives until process exit.
func (p *Player) Close() error {
	p.stop()
	return nil
}

// Headless reports whether this build discards audio.
func Headless() bool { return false }
