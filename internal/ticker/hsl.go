package ticker

// HSL is a display color. Every color field in State always holds a valid
// triple; there is no "unset" color.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// clampHSL forces a triple into the valid domain. Out-of-range components
// are clamped, never rejected.
func clampHSL(c HSL) HSL {
	return HSL{
		H: clampInt(c.H, 0, 360),
		S: clampInt(c.S, 0, 100),
		L: clampInt(c.L, 0, 100),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
