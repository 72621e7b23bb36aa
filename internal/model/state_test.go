package model

import (
	"testing"

	"github.com/iwvelando/startup-forecast/pkg/constants"
)

func TestInitialState(t *testing.T) {
	a := validAssumptions()
	s := InitialState(a)

	if s.Month != 0 {
		t.Errorf("Month = %d, expected 0", s.Month)
	}
	if s.Cash != a.StartingCash {
		t.Errorf("Cash = %v, expected %v", s.Cash, a.StartingCash)
	}
	if s.Debt != 0 {
		t.Errorf("Debt = %v, expected 0", s.Debt)
	}
	if s.DomainRating != a.Organic.DomainRatingInit {
		t.Errorf("DomainRating = %v, expected %v", s.DomainRating, a.Organic.DomainRatingInit)
	}
	if s.SEOTraffic != a.Organic.TrafficInit {
		t.Errorf("SEOTraffic = %v, expected %v", s.SEOTraffic, a.Organic.TrafficInit)
	}
	if s.ProductValue != a.Product.InitialValue {
		t.Errorf("ProductValue = %v, expected %v", s.ProductValue, a.Product.InitialValue)
	}
	if s.QualifiedPool != a.Outreach.PoolSize {
		t.Errorf("QualifiedPool = %v, expected %v", s.QualifiedPool, a.Outreach.PoolSize)
	}
	if s.ActiveUsers() != 0 {
		t.Errorf("ActiveUsers() = %v, expected 0", s.ActiveUsers())
	}
	if s.TTMRevenue() != 0 {
		t.Errorf("TTMRevenue() = %v, expected 0 before any revenue", s.TTMRevenue())
	}
}

func TestPushRevenueWindow(t *testing.T) {
	s := State{}

	// Partial window sums everything seen so far.
	for i := 1; i <= 5; i++ {
		s = s.WithRevenueWindow(s.PushRevenue(float64(i * 100)))
	}
	if got := s.TTMRevenue(); got != 1500 {
		t.Errorf("TTMRevenue after 5 months = %v, expected 1500", got)
	}

	// Fill past the window; the oldest entries fall off.
	for i := 6; i <= 15; i++ {
		s = s.WithRevenueWindow(s.PushRevenue(float64(i * 100)))
	}
	// Months 4..15 remain: sum = 100*(4+...+15) = 11400.
	if got := s.TTMRevenue(); got != 11400 {
		t.Errorf("TTMRevenue after 15 months = %v, expected 11400", got)
	}
}

func TestPushRevenueDoesNotAliasReceiver(t *testing.T) {
	s := State{}
	for i := 0; i < constants.TTMWindow; i++ {
		s = s.WithRevenueWindow(s.PushRevenue(100))
	}
	before := s.TTMRevenue()

	// Deriving a new window must not disturb the receiver's history.
	_ = s.PushRevenue(999999)
	if got := s.TTMRevenue(); got != before {
		t.Errorf("TTMRevenue changed from %v to %v after PushRevenue on a copy", before, got)
	}
}

func TestPushRevenueCapsAtWindow(t *testing.T) {
	s := State{}
	for i := 0; i < 30; i++ {
		window := s.PushRevenue(1)
		if len(window) > constants.TTMWindow {
			t.Fatalf("window length = %d, expected at most %d", len(window), constants.TTMWindow)
		}
		s = s.WithRevenueWindow(window)
	}
	if got := s.TTMRevenue(); got != float64(constants.TTMWindow) {
		t.Errorf("TTMRevenue = %v, expected %v", got, float64(constants.TTMWindow))
	}
}
