package gotiles

func IntAbs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// clip3 clamps val to [low, high].
func clip3(low, high, val int) int {
	switch {
	case val < low:
		return low
	case val > high:
		return high
	default:
		return val
	}
}

// clipPixel clamps val to the legal pixel range [0, 255].
func clipPixel(val int) int {
	return clip3(0, 255, val)
}
