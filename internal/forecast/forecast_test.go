package forecast

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/iwvelando/startup-forecast/pkg/testutil"
)

func TestRunZeroSpendBurnsBaseline(t *testing.T) {
	a := testutil.Assumptions()
	a.Organic.TrafficInit = 0
	a.Credit.DrawAmount = 0
	a.Months = 6

	rows, err := Run(nil, a, model.ConstantPlan(testutil.ZeroDecision(), a.Months))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rows) != a.Months {
		t.Fatalf("len(rows) = %d, expected %d", len(rows), a.Months)
	}

	for i, row := range rows {
		if row.Month != i {
			t.Errorf("rows[%d].Month = %d, expected %d", i, row.Month, i)
		}
		if row.RevenueTotal != 0 {
			t.Errorf("month %d: RevenueTotal = %v, expected 0 with no acquisition", i, row.RevenueTotal)
		}
		wantCash := a.StartingCash - float64(i+1)*a.Costs.OperatingBaseline
		if math.Abs(row.Cash-wantCash) > constants.CurrencyTolerance {
			t.Errorf("month %d: Cash = %v, expected %v", i, row.Cash, wantCash)
		}
	}
}

func TestRunSEOStockDecaysWithoutSpend(t *testing.T) {
	a := testutil.Assumptions()
	a.Months = 6

	rows, err := Run(nil, a, model.ConstantPlan(testutil.ZeroDecision(), a.Months))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	prev := a.Organic.TrafficInit
	for i, row := range rows {
		want := prev * (1 - a.Organic.TrafficDecay)
		if math.Abs(row.SEOTraffic-want) > 1e-9 {
			t.Errorf("month %d: SEOTraffic = %v, expected pure decay %v", i, row.SEOTraffic, want)
		}
		prev = row.SEOTraffic
	}
}

func TestRunDeterministic(t *testing.T) {
	a := testutil.Assumptions()
	plan := model.ConstantPlan(testutil.Decision(), a.Months)

	rows1, err := Run(nil, a, plan)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	rows2, err := Run(nil, a, plan)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(rows1, rows2) {
		t.Error("identical inputs produced different trajectories")
	}
}

func TestRunSpendGrowsBusiness(t *testing.T) {
	a := testutil.Assumptions()
	a.Months = 24
	d := model.Decision{AdsSpend: 2000, SEOSpend: 1000, DevSpend: 6000}

	rows, err := Run(nil, a, model.ConstantPlan(d, a.Months))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last := rows[len(rows)-1]
	if last.ProActive <= 0 {
		t.Error("expected paying users after sustained acquisition spend")
	}
	if last.RevenueTTM <= rows[5].RevenueTTM {
		t.Errorf("RevenueTTM = %v at end vs %v at month 5, expected growth", last.RevenueTTM, rows[5].RevenueTTM)
	}
	if last.DomainRating <= a.Organic.DomainRatingInit {
		t.Errorf("DomainRating = %v, expected growth above %v", last.DomainRating, a.Organic.DomainRatingInit)
	}
}

func TestRunTTMWindowBounded(t *testing.T) {
	a := testutil.Assumptions()
	a.Months = 30
	d := model.Decision{AdsSpend: 1000, SEOSpend: 500, DevSpend: 4000}

	rows, err := Run(nil, a, model.ConstantPlan(d, a.Months))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, row := range rows {
		// TTM can never exceed the sum of the last twelve monthly revenues.
		lo := i - constants.TTMWindow + 1
		if lo < 0 {
			lo = 0
		}
		var want float64
		for j := lo; j <= i; j++ {
			want += rows[j].RevenueTotal
		}
		if math.Abs(row.RevenueTTM-want) > 0.01 {
			t.Errorf("month %d: RevenueTTM = %v, expected trailing sum %v", i, row.RevenueTTM, want)
		}
	}
}

func TestRunRejectsInvalidInputs(t *testing.T) {
	a := testutil.Assumptions()

	if _, err := Run(nil, a, model.ConstantPlan(testutil.Decision(), a.Months-1)); err == nil {
		t.Error("expected error for short plan")
	} else if !strings.Contains(err.Error(), "decision plan") {
		t.Errorf("error = %v, expected plan validation failure", err)
	}

	a.Months = 0
	if _, err := Run(nil, a, model.Plan{}); err == nil {
		t.Error("expected error for zero-month horizon")
	}
}

func TestMinCash(t *testing.T) {
	if _, ok := MinCash(nil); ok {
		t.Error("MinCash(nil) reported ok")
	}

	rows := []model.Row{{Cash: 100}, {Cash: -40}, {Cash: 60}}
	min, ok := MinCash(rows)
	if !ok || min != -40 {
		t.Errorf("MinCash = (%v, %v), expected (-40, true)", min, ok)
	}
}
