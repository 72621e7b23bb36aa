package model

import "github.com/iwvelando/startup-forecast/pkg/constants"

// State is the snapshot of business condition at the start of a month. The
// engine never mutates a State in place; each step derives a fresh value.
//
// Cash is unbounded below: negative cash is a signal for the optimizer's
// solvency constraint, not something the engine clamps.
type State struct {
	Month int

	Cash float64
	Debt float64

	DomainRating float64
	SEOTraffic   float64
	ProductValue float64

	FreeActive float64
	ProActive  float64
	EntActive  float64

	QualifiedPool float64

	// revenueWindow holds up to the trailing twelve monthly revenue totals,
	// most recent last. Path-dependent, so it lives on State.
	revenueWindow []float64
}

// InitialState derives month-0 state from the assumptions' initial values.
func InitialState(a Assumptions) State {
	return State{
		Month:         0,
		Cash:          a.StartingCash,
		Debt:          0,
		DomainRating:  a.Organic.DomainRatingInit,
		SEOTraffic:    a.Organic.TrafficInit,
		ProductValue:  a.Product.InitialValue,
		FreeActive:    0,
		ProActive:     0,
		EntActive:     0,
		QualifiedPool: a.Outreach.PoolSize,
	}
}

// ActiveUsers sums the active counts across tiers.
func (s State) ActiveUsers() float64 {
	return s.FreeActive + s.ProActive + s.EntActive
}

// TTMRevenue returns the rolling sum over the trailing revenue window
// (full-horizon sum while fewer than twelve months have elapsed).
func (s State) TTMRevenue() float64 {
	var sum float64
	for _, r := range s.revenueWindow {
		sum += r
	}
	return sum
}

// PushRevenue returns a copy of the window with revenue appended, trimmed to
// the TTM length. The receiver's slice is never aliased.
func (s State) PushRevenue(revenue float64) []float64 {
	window := make([]float64, 0, constants.TTMWindow)
	start := 0
	if len(s.revenueWindow) >= constants.TTMWindow {
		start = len(s.revenueWindow) - constants.TTMWindow + 1
	}
	window = append(window, s.revenueWindow[start:]...)
	return append(window, revenue)
}

// WithRevenueWindow returns a copy of s carrying the provided window.
func (s State) WithRevenueWindow(window []float64) State {
	s.revenueWindow = window
	return s
}
