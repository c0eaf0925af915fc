package host

// Constant returns a feeder that holds input i at values[i]. Inputs beyond
// len(values) are left untouched.
func Constant(values ...float64) InputFunc {
	return func(_ int, inputs [][]float64) {
		for i, in := range inputs {
			if i >= len(values) {
				return
			}
			for j := range in {
				in[j] = values[i]
			}
		}
	}
}

// Triggered returns a feeder for the resettable opcode: input 0 holds speed
// and input 1 carries a unit trigger on every frame that is a multiple of
// every. every <= 0 never triggers.
func Triggered(speed float64, every int) InputFunc {
	return func(offset int, inputs [][]float64) {
		if len(inputs) < 2 {
			return
		}
		for j := range inputs[0] {
			inputs[0][j] = speed
		}
		reset := inputs[1]
		for j := range reset {
			reset[j] = 0
			if every > 0 && (offset+j)%every == 0 {
				reset[j] = 1
			}
		}
	}
}

// Sweep returns a feeder for a speed control that moves linearly from
// from to to across frames frames, then holds to.
func Sweep(from, to float64, frames int) InputFunc {
	return func(offset int, inputs [][]float64) {
		if len(inputs) == 0 {
			return
		}
		speed := to
		if frames > 0 && offset < frames {
			speed = from + (to-from)*float64(offset)/float64(frames)
		}
		for j := range inputs[0] {
			inputs[0][j] = speed
		}
	}
}
