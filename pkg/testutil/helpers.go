// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/startup-forecast/internal/model"
)

// Assumptions returns a small but fully valid set of business assumptions
// suitable as a starting point for tests. Callers mutate the fields under
// test.
func Assumptions() model.Assumptions {
	return model.Assumptions{
		Months:       12,
		StartingCash: 100000,
		TaxRate:      0.20,
		Acquisition: model.AcquisitionParams{
			CPCBase:        2.0,
			ReferenceSpend: 500,
			Sensitivity:    0.35,
		},
		Organic: model.OrganicParams{
			DomainRatingInit:  10,
			DomainRatingMax:   90,
			DomainRatingDecay: 0.01,
			ReferenceSpend:    500,
			SpendSensitivity:  0.6,
			TrafficInit:       200,
			TrafficDecay:      0.05,
			TrafficPerSpend:   0.8,
		},
		Outreach: model.OutreachParams{
			PoolSize:       5000,
			ReferenceSpend: 1000,
			Saturation:     0.5,
			CostPerContact: 5,
			ContactToLead:  0.08,
		},
		Funnel: model.FunnelParams{
			VisitorToLead: 0.04,
			LeadToFree:    0.25,
			FreeToPro:     0.10,
			ProToEnt:      0.02,
			ChurnFree:     0.15,
			ChurnPro:      0.03,
			ChurnEnt:      0.01,
		},
		Product: model.ProductParams{
			InitialValue:     50,
			Floor:            20,
			DepreciationRate: 0.02,
			MaintenanceCost:  2000,
			CostPerPoint:     3000,
			ReferenceValue:   50,
			FactorMin:        0.5,
			FactorMax:        1.5,
			Milestones: []model.PricingMilestone{
				{Threshold: 0, ProPrice: 3500, EntPrice: 20000},
				{Threshold: 75, ProPrice: 4200, EntPrice: 24000},
				{Threshold: 110, ProPrice: 5000, EntPrice: 30000},
			},
		},
		Partner: model.PartnerParams{
			ReferenceSpend: 2000,
			ProDealRate:    2.0,
			EntDealRate:    0.2,
			CommissionRate: 0.20,
		},
		Costs: model.CostParams{
			OperatingBaseline: 5000,
			OperatingPerUser:  0.5,
			SupportPerPro:     15,
			SupportPerEnt:     150,
			SalesPerNewPro:    50,
			SalesPerNewEnt:    2000,
		},
		Credit: model.CreditParams{
			CashThreshold:   50000,
			DrawAmount:      100000,
			AnnualRateBase:  0.10,
			RateSensitivity: 0.25,
			DebtReference:   100000,
			RepayFactor:     0.10,
		},
		Valuation: model.ValuationPolicy{
			Multiple:    10,
			CashWeight:  0.1,
			DebtPenalty: 0.5,
		},
	}
}

// Decision returns a moderate spend decision with milestone pricing.
func Decision() model.Decision {
	return model.Decision{
		AdsSpend:      500,
		SEOSpend:      500,
		DevSpend:      3000,
		OutreachSpend: 0,
		PartnerSpend:  0,
	}
}

// ZeroDecision returns a decision with every lever at zero.
func ZeroDecision() model.Decision {
	return model.Decision{}
}
