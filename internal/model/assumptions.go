// Package model defines the immutable value types shared by the simulation
// engine and the optimizer: Assumptions, Decision, State, and Row.
package model

import (
	"fmt"
	"sort"
)

// Assumptions holds every business constant for one simulation run. All
// fields are required; construction-time validation rejects missing or
// out-of-domain values before any simulation step executes.
type Assumptions struct {
	Months       int     `json:"months"`
	StartingCash float64 `json:"starting_cash"`
	TaxRate      float64 `json:"tax_rate"`

	Acquisition AcquisitionParams `json:"acquisition"`
	Organic     OrganicParams     `json:"organic"`
	Outreach    OutreachParams    `json:"outreach"`
	Funnel      FunnelParams      `json:"funnel"`
	Product     ProductParams     `json:"product"`
	Partner     PartnerParams     `json:"partner"`
	Costs       CostParams        `json:"costs"`
	Credit      CreditParams      `json:"credit"`
	Valuation   ValuationPolicy   `json:"valuation"`
}

// AcquisitionParams describe the paid-ads channel. Effective cost per click
// rises logarithmically with spend relative to ReferenceSpend.
type AcquisitionParams struct {
	CPCBase        float64 `json:"cpc_base"`
	ReferenceSpend float64 `json:"reference_spend"`
	Sensitivity    float64 `json:"sensitivity"`
}

// OrganicParams describe the compounding SEO stocks: domain rating (bounded
// authority proxy) and the organic traffic stock it feeds.
type OrganicParams struct {
	DomainRatingInit  float64 `json:"domain_rating_init"`
	DomainRatingMax   float64 `json:"domain_rating_max"`
	DomainRatingDecay float64 `json:"domain_rating_decay"`
	ReferenceSpend    float64 `json:"reference_spend"`
	SpendSensitivity  float64 `json:"spend_sensitivity"`
	TrafficInit       float64 `json:"traffic_init"`
	TrafficDecay      float64 `json:"traffic_decay"`
	TrafficPerSpend   float64 `json:"traffic_per_spend"`
}

// OutreachParams describe direct outreach against a finite qualified pool.
type OutreachParams struct {
	PoolSize       float64 `json:"pool_size"`
	ReferenceSpend float64 `json:"reference_spend"`
	Saturation     float64 `json:"saturation"`
	CostPerContact float64 `json:"cost_per_contact"`
	ContactToLead  float64 `json:"contact_to_lead"`
}

// FunnelParams hold the base per-stage conversion and churn rates. The
// engine modulates these by the normalized product-value factor.
type FunnelParams struct {
	VisitorToLead float64 `json:"visitor_to_lead"`
	LeadToFree    float64 `json:"lead_to_free"`
	FreeToPro     float64 `json:"free_to_pro"`
	ProToEnt      float64 `json:"pro_to_ent"`
	ChurnFree     float64 `json:"churn_free"`
	ChurnPro      float64 `json:"churn_pro"`
	ChurnEnt      float64 `json:"churn_ent"`
}

// PricingMilestone unlocks a price tier once product value reaches Threshold.
type PricingMilestone struct {
	Threshold float64 `json:"threshold"`
	ProPrice  float64 `json:"pro_price"`
	EntPrice  float64 `json:"ent_price"`
}

// ProductParams describe product-value dynamics and the milestone table.
type ProductParams struct {
	InitialValue     float64            `json:"initial_value"`
	Floor            float64            `json:"floor"`
	DepreciationRate float64            `json:"depreciation_rate"`
	MaintenanceCost  float64            `json:"maintenance_cost"`
	CostPerPoint     float64            `json:"cost_per_point"`
	ReferenceValue   float64            `json:"reference_value"`
	FactorMin        float64            `json:"factor_min"`
	FactorMax        float64            `json:"factor_max"`
	Milestones       []PricingMilestone `json:"milestones"`
}

// PartnerParams describe the optional partner channel: spend saturates into
// direct pro/enterprise deals, with a commission charged on deal revenue.
type PartnerParams struct {
	ReferenceSpend float64 `json:"reference_spend"`
	ProDealRate    float64 `json:"pro_deal_rate"`
	EntDealRate    float64 `json:"ent_deal_rate"`
	CommissionRate float64 `json:"commission_rate"`
}

// CostParams hold the operating cost structure.
type CostParams struct {
	OperatingBaseline float64 `json:"operating_baseline"`
	OperatingPerUser  float64 `json:"operating_per_user"`
	SupportPerPro     float64 `json:"support_per_pro"`
	SupportPerEnt     float64 `json:"support_per_ent"`
	SalesPerNewPro    float64 `json:"sales_per_new_pro"`
	SalesPerNewEnt    float64 `json:"sales_per_new_ent"`
}

// CreditParams describe the automatic credit line. RepayFactor is an
// explicit, independently toggleable policy: zero means debt accumulates
// with no automatic repayment.
type CreditParams struct {
	CashThreshold   float64 `json:"cash_threshold"`
	DrawAmount      float64 `json:"draw_amount"`
	AnnualRateBase  float64 `json:"annual_rate_base"`
	RateSensitivity float64 `json:"rate_sensitivity"`
	DebtReference   float64 `json:"debt_reference"`
	RepayFactor     float64 `json:"repay_factor"`
}

// ValuationPolicy configures the valuation metric:
// ttmRevenue*Multiple + CashWeight*cash - DebtPenalty*debt.
// Zero weights reduce this to the revenue-multiple-only form.
type ValuationPolicy struct {
	Multiple    float64 `json:"multiple"`
	CashWeight  float64 `json:"cash_weight"`
	DebtPenalty float64 `json:"debt_penalty"`
}

// Validate checks that all required fields are present and within domain.
// It is called by every run entry point before the first step.
func (a Assumptions) Validate() error {
	if a.Months <= 0 {
		return fmt.Errorf("assumptions: months must be positive, got %d", a.Months)
	}
	if a.TaxRate < 0 || a.TaxRate >= 1 {
		return fmt.Errorf("assumptions: tax rate must be in [0, 1), got %v", a.TaxRate)
	}

	if a.Acquisition.CPCBase <= 0 {
		return fmt.Errorf("assumptions: acquisition cpc base must be positive, got %v", a.Acquisition.CPCBase)
	}
	if a.Acquisition.ReferenceSpend <= 0 {
		return fmt.Errorf("assumptions: acquisition reference spend must be positive, got %v", a.Acquisition.ReferenceSpend)
	}
	if a.Acquisition.Sensitivity < 0 {
		return fmt.Errorf("assumptions: acquisition sensitivity must be non-negative, got %v", a.Acquisition.Sensitivity)
	}

	if a.Organic.DomainRatingMax <= 0 {
		return fmt.Errorf("assumptions: domain rating max must be positive, got %v", a.Organic.DomainRatingMax)
	}
	if a.Organic.DomainRatingInit < 0 || a.Organic.DomainRatingInit > a.Organic.DomainRatingMax {
		return fmt.Errorf("assumptions: domain rating init must be in [0, %v], got %v",
			a.Organic.DomainRatingMax, a.Organic.DomainRatingInit)
	}
	if err := validateRate("domain rating decay", a.Organic.DomainRatingDecay); err != nil {
		return err
	}
	if a.Organic.ReferenceSpend <= 0 {
		return fmt.Errorf("assumptions: organic reference spend must be positive, got %v", a.Organic.ReferenceSpend)
	}
	if a.Organic.SpendSensitivity < 0 {
		return fmt.Errorf("assumptions: organic spend sensitivity must be non-negative, got %v", a.Organic.SpendSensitivity)
	}
	if a.Organic.TrafficInit < 0 {
		return fmt.Errorf("assumptions: organic traffic init must be non-negative, got %v", a.Organic.TrafficInit)
	}
	if err := validateRate("organic traffic decay", a.Organic.TrafficDecay); err != nil {
		return err
	}
	if a.Organic.TrafficPerSpend < 0 {
		return fmt.Errorf("assumptions: organic traffic per spend must be non-negative, got %v", a.Organic.TrafficPerSpend)
	}

	if a.Outreach.PoolSize < 0 {
		return fmt.Errorf("assumptions: outreach pool size must be non-negative, got %v", a.Outreach.PoolSize)
	}
	if a.Outreach.ReferenceSpend <= 0 {
		return fmt.Errorf("assumptions: outreach reference spend must be positive, got %v", a.Outreach.ReferenceSpend)
	}
	if a.Outreach.Saturation < 0 {
		return fmt.Errorf("assumptions: outreach saturation must be non-negative, got %v", a.Outreach.Saturation)
	}
	if a.Outreach.CostPerContact < 0 {
		return fmt.Errorf("assumptions: outreach cost per contact must be non-negative, got %v", a.Outreach.CostPerContact)
	}
	if err := validateRate("outreach contact-to-lead", a.Outreach.ContactToLead); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		rate float64
	}{
		{"visitor-to-lead conversion", a.Funnel.VisitorToLead},
		{"lead-to-free conversion", a.Funnel.LeadToFree},
		{"free-to-pro conversion", a.Funnel.FreeToPro},
		{"pro-to-ent conversion", a.Funnel.ProToEnt},
		{"free churn", a.Funnel.ChurnFree},
		{"pro churn", a.Funnel.ChurnPro},
		{"ent churn", a.Funnel.ChurnEnt},
	} {
		if err := validateRate(f.name, f.rate); err != nil {
			return err
		}
	}

	if err := a.Product.validate(); err != nil {
		return err
	}

	if a.Partner.ReferenceSpend <= 0 {
		return fmt.Errorf("assumptions: partner reference spend must be positive, got %v", a.Partner.ReferenceSpend)
	}
	if a.Partner.ProDealRate < 0 || a.Partner.EntDealRate < 0 {
		return fmt.Errorf("assumptions: partner deal rates must be non-negative")
	}
	if err := validateRate("partner commission", a.Partner.CommissionRate); err != nil {
		return err
	}

	if a.Costs.OperatingBaseline < 0 || a.Costs.OperatingPerUser < 0 ||
		a.Costs.SupportPerPro < 0 || a.Costs.SupportPerEnt < 0 ||
		a.Costs.SalesPerNewPro < 0 || a.Costs.SalesPerNewEnt < 0 {
		return fmt.Errorf("assumptions: cost parameters must be non-negative")
	}

	if a.Credit.DrawAmount < 0 {
		return fmt.Errorf("assumptions: credit draw amount must be non-negative, got %v", a.Credit.DrawAmount)
	}
	if a.Credit.AnnualRateBase < 0 {
		return fmt.Errorf("assumptions: credit interest rate must be non-negative, got %v", a.Credit.AnnualRateBase)
	}
	if a.Credit.RateSensitivity < 0 {
		return fmt.Errorf("assumptions: credit rate sensitivity must be non-negative, got %v", a.Credit.RateSensitivity)
	}
	if a.Credit.DebtReference <= 0 {
		return fmt.Errorf("assumptions: credit debt reference must be positive, got %v", a.Credit.DebtReference)
	}
	if err := validateRate("credit repay factor", a.Credit.RepayFactor); err != nil {
		return err
	}

	if a.Valuation.Multiple < 0 || a.Valuation.CashWeight < 0 || a.Valuation.DebtPenalty < 0 {
		return fmt.Errorf("assumptions: valuation weights must be non-negative")
	}

	return nil
}

func (p ProductParams) validate() error {
	if p.Floor < 0 {
		return fmt.Errorf("assumptions: product value floor must be non-negative, got %v", p.Floor)
	}
	if p.InitialValue < p.Floor {
		return fmt.Errorf("assumptions: product value init %v is below floor %v", p.InitialValue, p.Floor)
	}
	if err := validateRate("product depreciation", p.DepreciationRate); err != nil {
		return err
	}
	if p.MaintenanceCost < 0 {
		return fmt.Errorf("assumptions: product maintenance cost must be non-negative, got %v", p.MaintenanceCost)
	}
	if p.CostPerPoint <= 0 {
		return fmt.Errorf("assumptions: product cost per point must be positive, got %v", p.CostPerPoint)
	}
	if p.ReferenceValue <= 0 {
		return fmt.Errorf("assumptions: product reference value must be positive, got %v", p.ReferenceValue)
	}
	if p.FactorMin <= 0 || p.FactorMax < p.FactorMin {
		return fmt.Errorf("assumptions: product factor bounds must satisfy 0 < min <= max, got [%v, %v]",
			p.FactorMin, p.FactorMax)
	}
	if len(p.Milestones) == 0 {
		return fmt.Errorf("assumptions: at least one pricing milestone is required")
	}
	if !sort.SliceIsSorted(p.Milestones, func(i, j int) bool {
		return p.Milestones[i].Threshold < p.Milestones[j].Threshold
	}) {
		return fmt.Errorf("assumptions: pricing milestones must be sorted by ascending threshold")
	}
	if p.Milestones[0].Threshold > p.InitialValue {
		return fmt.Errorf("assumptions: first pricing milestone threshold %v exceeds initial product value %v",
			p.Milestones[0].Threshold, p.InitialValue)
	}
	for i, m := range p.Milestones {
		if m.ProPrice < 0 || m.EntPrice < 0 {
			return fmt.Errorf("assumptions: milestone %d prices must be non-negative", i)
		}
	}
	return nil
}

func validateRate(name string, rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("assumptions: %s rate must be in [0, 1], got %v", name, rate)
	}
	return nil
}
