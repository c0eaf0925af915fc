package automaton

// Ring geometry
const (
	// Cells is the number of cells in the ring. One cell per bit of the state word.
	Cells = 64

	// prevOffset selects the cell immediately before i in ring order ((i + 63) mod 64).
	prevOffset = Cells - 1
)

// Neighbourhood window limits
const (
	// MinOrder is the smallest usable window width in bits.
	MinOrder = 1

	// MaxOrder is the largest window width whose values still address the
	// 64-entry rule table (2^6 = 64).
	MaxOrder = 6
)

// Seeding constants
const (
	// CanonicalSeed is the starting state used for near-zero seed values.
	CanonicalSeed uint64 = 1 << 15

	// DecorrelationSteps is the number of generations applied to the
	// canonical seed before first use.
	DecorrelationSteps = 32
)

// Epsilon is the single-precision machine epsilon (2^-23). Seed, speed and
// reset values are compared against it.
const Epsilon = 0x1p-23

// Amplitude mapping constants
const (
	// maxState is the divisor used to normalize a state into [0, 1].
	// float64(math.MaxUint64) rounds to exactly 2^64.
	maxState = float64(^uint64(0))

	amplitudeScale  = 2.0 // [0, 1] -> [0, 2]
	amplitudeOffset = 1.0 // [0, 2] -> [-1, 1]
)

// maxSeed is the first float value that no longer fits a uint64 (2^64).
const maxSeed = 0x1p64

// Glyphs used by Format.
const (
	glyphAlive = '*'
	glyphDead  = ' '
)
