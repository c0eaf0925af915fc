package engine

// Speed limits
const (
	// MaxSpeed caps the speed magnitude in generations per sample. It bounds
	// the per-sample catch-up loop at MaxSpeed+1 generations; speeds below the
	// cap are used unchanged.
	MaxSpeed = 4096.0

	// generationPeriod is the phase credited for each consumed generation.
	generationPeriod = 1.0
)

// Statistics keys reported by GetStatistics.
const (
	statSamples     = "samples"
	statGenerations = "generations"
	statResets      = "resets"
)
