package optimizer

import (
	"math"
	"testing"
)

func TestModeValid(t *testing.T) {
	if !ModeGeometric.Valid() || !ModeLinear.Valid() {
		t.Error("built-in modes must be valid")
	}
	if Mode("cubic").Valid() {
		t.Error("unknown mode must be invalid")
	}
}

func TestInterpolateGeometric(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		t        int
		horizon  int
		expected float64
	}{
		{"start point", 100, 1000, 0, 12, 100},
		{"end point", 100, 1000, 12, 12, 1000},
		{"geometric midpoint", 100, 1000, 6, 12, 100 * math.Sqrt(10)},
		{"flat ramp", 500, 500, 7, 12, 500},
		{"decreasing ramp", 1000, 100, 12, 12, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.start, tt.end, tt.t, tt.horizon, ModeGeometric)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Interpolate(%v, %v, %d/%d) = %v, expected %v",
					tt.start, tt.end, tt.t, tt.horizon, got, tt.expected)
			}
		})
	}
}

func TestInterpolateLinearFallback(t *testing.T) {
	// A zero endpoint makes the geometric form undefined; the ramp must
	// degrade to linear instead of NaN.
	got := Interpolate(0, 1000, 6, 12, ModeGeometric)
	if math.IsNaN(got) || math.Abs(got-500) > 1e-9 {
		t.Errorf("Interpolate(0, 1000, 6/12) = %v, expected linear fallback 500", got)
	}

	got = Interpolate(800, 0, 3, 12, ModeGeometric)
	if math.IsNaN(got) || math.Abs(got-600) > 1e-9 {
		t.Errorf("Interpolate(800, 0, 3/12) = %v, expected linear fallback 600", got)
	}
}

func TestInterpolateLinear(t *testing.T) {
	got := Interpolate(100, 1000, 6, 12, ModeLinear)
	if math.Abs(got-550) > 1e-9 {
		t.Errorf("Interpolate(100, 1000, 6/12) = %v, expected 550", got)
	}
}

func TestInterpolateDegenerateHorizon(t *testing.T) {
	if got := Interpolate(250, 1000, 0, 0, ModeGeometric); got != 250 {
		t.Errorf("Interpolate with zero horizon = %v, expected start value", got)
	}
}

func TestExpandKnots(t *testing.T) {
	// Two knots spread across the horizon hit both endpoints exactly.
	series := ExpandKnots([]float64{100, 1000}, 13, ModeGeometric)
	if len(series) != 13 {
		t.Fatalf("len(series) = %d, expected 13", len(series))
	}
	if math.Abs(series[0]-100) > 1e-9 {
		t.Errorf("series[0] = %v, expected 100", series[0])
	}
	if math.Abs(series[12]-1000) > 1e-9 {
		t.Errorf("series[12] = %v, expected 1000", series[12])
	}
	if math.Abs(series[6]-100*math.Sqrt(10)) > 1e-6 {
		t.Errorf("series[6] = %v, expected %v", series[6], 100*math.Sqrt(10))
	}

	// Every month between positive knots stays within the knot envelope.
	for i, v := range series {
		if v < 100-1e-9 || v > 1000+1e-9 {
			t.Errorf("series[%d] = %v outside [100, 1000]", i, v)
		}
	}
}

func TestExpandKnotsInteriorKnots(t *testing.T) {
	// Three knots on a 5-month horizon: positions 0, 2, 4.
	series := ExpandKnots([]float64{10, 100, 10}, 5, ModeLinear)
	want := []float64{10, 55, 100, 55, 10}
	for i, w := range want {
		if math.Abs(series[i]-w) > 1e-9 {
			t.Errorf("series[%d] = %v, expected %v", i, series[i], w)
		}
	}
}

func TestExpandKnotsDegenerate(t *testing.T) {
	if got := ExpandKnots(nil, 4, ModeLinear); len(got) != 4 {
		t.Errorf("len = %d, expected month count even without knots", len(got))
	}

	series := ExpandKnots([]float64{700}, 4, ModeGeometric)
	for i, v := range series {
		if v != 700 {
			t.Errorf("series[%d] = %v, expected constant 700", i, v)
		}
	}

	series = ExpandKnots([]float64{300, 900}, 1, ModeLinear)
	if len(series) != 1 || series[0] != 300 {
		t.Errorf("single-month series = %v, expected [300]", series)
	}
}
