// Package diagram renders automaton histories as spacetime diagrams: one row
// per generation, one column per cell, time running downwards.
package diagram

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/tphakala/go-caoscil/internal/automaton"
	"golang.org/x/image/draw"
)

// Diagram limits
const (
	maxGenerations = 1 << 16
	maxScale       = 64
)

// ErrInvalidOptions indicates invalid diagram options.
var ErrInvalidOptions = errors.New("invalid diagram options")

// Options controls image rendering.
type Options struct {
	// Scale is the pixel size of one cell.
	Scale int

	// StripWidth adds a grayscale column of this many cells to the right of
	// the cells, showing each generation's amplitude. 0 disables it.
	StripWidth int

	On  color.RGBA
	Off color.RGBA
}

// DefaultOptions returns black live cells on white at 4x scale with an
// amplitude strip.
func DefaultOptions() Options {
	return Options{
		Scale:      4,
		StripWidth: 8,
		On:         color.RGBA{A: 0xff},
		Off:        color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Validate checks if the options are usable.
func (o *Options) Validate() error {
	if o.Scale < 1 || o.Scale > maxScale {
		return fmt.Errorf("%w: scale must be 1-%d", ErrInvalidOptions, maxScale)
	}
	if o.StripWidth < 0 || o.StripWidth > automaton.Cells {
		return fmt.Errorf("%w: strip width must be 0-%d", ErrInvalidOptions, automaton.Cells)
	}
	return nil
}

// History returns state followed by the next n-1 generations.
func History(state, rule uint64, order uint, n int) ([]uint64, error) {
	if n < 1 || n > maxGenerations {
		return nil, fmt.Errorf("%w: generations must be 1-%d", ErrInvalidOptions, maxGenerations)
	}
	rows := make([]uint64, n)
	rows[0] = state
	for i := 1; i < n; i++ {
		rows[i] = automaton.Evolve(rows[i-1], rule, order)
	}
	return rows, nil
}

// Text renders rows as lines of automaton.Format, each followed by its
// amplitude.
func Text(rows []uint64) string {
	var sb strings.Builder
	for _, s := range rows {
		fmt.Fprintf(&sb, "|%s| %+.6f\n", automaton.Format(s), automaton.ToAmplitude(s))
	}
	return sb.String()
}

// Image renders rows at one pixel per cell, plus the amplitude strip.
func Image(rows []uint64, opts Options) *image.RGBA {
	width := automaton.Cells + opts.StripWidth
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))

	for y, s := range rows {
		for x := range automaton.Cells {
			c := opts.Off
			if automaton.Alive(s, x) {
				c = opts.On
			}
			img.SetRGBA(x, y, c)
		}

		level := uint8((automaton.ToAmplitude(s) + 1) / 2 * 0xff)
		gray := color.RGBA{R: level, G: level, B: level, A: 0xff}
		for x := automaton.Cells; x < width; x++ {
			img.SetRGBA(x, y, gray)
		}
	}
	return img
}

// Scale enlarges img by factor with nearest-neighbour sampling so cells stay
// crisp.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Render draws rows scaled per opts.
func Render(rows []uint64, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no generations", ErrInvalidOptions)
	}

	img := Image(rows, opts)
	if opts.Scale == 1 {
		return img, nil
	}
	return Scale(img, opts.Scale), nil
}

// WritePNG encodes the diagram of rows to w.
func WritePNG(w io.Writer, rows []uint64, opts Options) error {
	img, err := Render(rows, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
