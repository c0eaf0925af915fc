package diagram

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-caoscil/internal/automaton"
)

func TestHistory(t *testing.T) {
	rows, err := History(1<<15, 90, 3, 5)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, uint64(1<<15), rows[0])
	assert.Equal(t, uint64(1<<14|1<<16), rows[1])
	for i := 1; i < len(rows); i++ {
		assert.Equal(t, automaton.Evolve(rows[i-1], 90, 3), rows[i])
	}

	_, err = History(1, 90, 3, 0)
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestText(t *testing.T) {
	out := Text([]uint64{0, 1})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "|"+strings.Repeat(" ", 64)+"| -1.000000", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "|*"+strings.Repeat(" ", 63)+"|"))
}

func TestImage_Pixels(t *testing.T) {
	opts := DefaultOptions()
	rows := []uint64{1, ^uint64(0), 0}
	img := Image(rows, opts)

	assert.Equal(t, 64+opts.StripWidth, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	assert.Equal(t, opts.On, img.RGBAAt(0, 0))
	assert.Equal(t, opts.Off, img.RGBAAt(1, 0))
	assert.Equal(t, opts.On, img.RGBAAt(63, 1))
	assert.Equal(t, opts.Off, img.RGBAAt(63, 2))

	// Amplitude strip: full state is white, empty state black.
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(64, 1))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(64, 2))
}

func TestRender_Scales(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 3
	opts.StripWidth = 0

	img, err := Render([]uint64{1, 2}, opts)
	require.NoError(t, err)
	assert.Equal(t, 64*3, img.Bounds().Dx())
	assert.Equal(t, 2*3, img.Bounds().Dy())

	// Cell 0 of row 0 covers a 3x3 block.
	for y := range 3 {
		for x := range 3 {
			assert.Equal(t, opts.On, img.RGBAAt(x, y))
		}
	}
	assert.Equal(t, opts.Off, img.RGBAAt(3, 0))
	assert.Equal(t, opts.On, img.RGBAAt(4, 4))
}

func TestRender_Validates(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 0
	_, err := Render([]uint64{1}, opts)
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Render(nil, DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidOptions)

	opts = DefaultOptions()
	opts.StripWidth = 65
	require.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
}

func TestWritePNG_RoundTrip(t *testing.T) {
	rows, err := History(automaton.Seed(0, 30, 3), 30, 3, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := DefaultOptions()
	require.NoError(t, WritePNG(&buf, rows, opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, (64+opts.StripWidth)*opts.Scale, img.Bounds().Dx())
	assert.Equal(t, 32*opts.Scale, img.Bounds().Dy())
}
