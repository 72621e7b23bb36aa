package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		lo       float64
		hi       float64
		expected float64
	}{
		{"Below range", -1.0, 0.0, 1.0, 0.0},
		{"Above range", 2.0, 0.0, 1.0, 1.0},
		{"Within range", 0.5, 0.0, 1.0, 0.5},
		{"At lower bound", 0.0, 0.0, 1.0, 0.0},
		{"At upper bound", 1.0, 0.0, 1.0, 1.0},
		{"Asymmetric range", 0.3, 0.5, 1.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.val, tt.lo, tt.hi)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, result, tt.expected)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(1.5); got != 1.0 {
		t.Errorf("Clamp01(1.5) = %v, expected 1.0", got)
	}
	if got := Clamp01(-0.5); got != 0.0 {
		t.Errorf("Clamp01(-0.5) = %v, expected 0.0", got)
	}
	if got := Clamp01(0.25); got != 0.25 {
		t.Errorf("Clamp01(0.25) = %v, expected 0.25", got)
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(1.0, 2.0); got != 1.0 {
		t.Errorf("Min(1, 2) = %v, expected 1", got)
	}
	if got := Min(2.0, 1.0); got != 1.0 {
		t.Errorf("Min(2, 1) = %v, expected 1", got)
	}
	if got := Max(1.0, 2.0); got != 2.0 {
		t.Errorf("Max(1, 2) = %v, expected 2", got)
	}
	if got := Max(-1.0, -2.0); got != -1.0 {
		t.Errorf("Max(-1, -2) = %v, expected -1", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.001, 1.002, 0.01) {
		t.Error("expected values within tolerance")
	}
	if WithinTolerance(1.0, 1.1, 0.01) {
		t.Error("expected values outside tolerance")
	}
}
