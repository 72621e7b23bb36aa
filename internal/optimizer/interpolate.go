package optimizer

import (
	"math"

	"github.com/iwvelando/startup-forecast/pkg/mathutil"
)

// Mode selects how knot values are interpolated into a monthly series.
type Mode string

const (
	// ModeGeometric ramps multiplicatively between knots, falling back to
	// linear when an endpoint is zero or negative.
	ModeGeometric Mode = "geometric"
	// ModeLinear ramps additively between knots.
	ModeLinear Mode = "linear"
)

// Valid reports whether the mode is a recognized option.
func (m Mode) Valid() bool {
	return m == ModeGeometric || m == ModeLinear
}

// Interpolate returns the ramp value at month t for a lever running from
// start (t=0) to end (t=horizon). Geometric interpolation
// start*(end/start)^(t/horizon) applies when both endpoints are strictly
// positive; otherwise the logarithm is undefined and the ramp degrades to
// linear.
func Interpolate(start, end float64, t, horizon int, mode Mode) float64 {
	if horizon <= 0 {
		return start
	}
	frac := mathutil.Clamp01(float64(t) / float64(horizon))
	return interpolateFrac(start, end, frac, mode)
}

func interpolateFrac(start, end, frac float64, mode Mode) float64 {
	if mode == ModeGeometric && start > 0 && end > 0 {
		return start * math.Pow(end/start, frac)
	}
	return start + (end-start)*frac
}

// ExpandKnots expands knot values into a per-month series. Knot positions
// are evenly spaced across [0, months-1]; months between adjacent knots are
// interpolated per mode.
func ExpandKnots(knots []float64, months int, mode Mode) []float64 {
	series := make([]float64, months)
	if months == 0 || len(knots) == 0 {
		return series
	}
	if len(knots) == 1 || months == 1 {
		for m := range series {
			series[m] = knots[0]
		}
		return series
	}

	span := float64(months-1) / float64(len(knots)-1)
	for m := 0; m < months; m++ {
		pos := float64(m) / span
		seg := int(pos)
		if seg > len(knots)-2 {
			seg = len(knots) - 2
		}
		series[m] = interpolateFrac(knots[seg], knots[seg+1], pos-float64(seg), mode)
	}
	return series
}
