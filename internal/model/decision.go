package model

import "fmt"

// PriceOverride is a tagged variant: either UseDefault (the zero value,
// milestone pricing applies) or an explicit per-month override.
type PriceOverride struct {
	set   bool
	value float64
}

// OverridePrice returns a PriceOverride carrying an explicit price.
func OverridePrice(value float64) PriceOverride {
	return PriceOverride{set: true, value: value}
}

// UseDefaultPrice returns the variant that defers to milestone pricing.
func UseDefaultPrice() PriceOverride {
	return PriceOverride{}
}

// IsSet reports whether an explicit override is present.
func (p PriceOverride) IsSet() bool {
	return p.set
}

// Value returns the override price; only meaningful when IsSet is true.
func (p PriceOverride) Value() float64 {
	return p.value
}

// Resolve returns the override when set, otherwise the milestone default.
func (p PriceOverride) Resolve(milestonePrice float64) float64 {
	if p.set {
		return p.value
	}
	return milestonePrice
}

// Decision is the immutable control vector for one month: spend levers plus
// optional price overrides.
type Decision struct {
	AdsSpend      float64
	SEOSpend      float64
	DevSpend      float64
	OutreachSpend float64
	PartnerSpend  float64

	ProPrice PriceOverride
	EntPrice PriceOverride
}

// TotalSpend sums the month's spend levers.
func (d Decision) TotalSpend() float64 {
	return d.AdsSpend + d.SEOSpend + d.DevSpend + d.OutreachSpend + d.PartnerSpend
}

// Validate rejects out-of-domain lever values.
func (d Decision) Validate() error {
	for _, l := range []struct {
		name  string
		spend float64
	}{
		{"ads", d.AdsSpend},
		{"seo", d.SEOSpend},
		{"dev", d.DevSpend},
		{"outreach", d.OutreachSpend},
		{"partner", d.PartnerSpend},
	} {
		if l.spend < 0 {
			return fmt.Errorf("decision: %s spend must be non-negative, got %v", l.name, l.spend)
		}
	}
	if d.ProPrice.IsSet() && d.ProPrice.Value() < 0 {
		return fmt.Errorf("decision: pro price override must be non-negative, got %v", d.ProPrice.Value())
	}
	if d.EntPrice.IsSet() && d.EntPrice.Value() < 0 {
		return fmt.Errorf("decision: ent price override must be non-negative, got %v", d.EntPrice.Value())
	}
	return nil
}

// Plan is an ordered decision sequence, one Decision per simulated month.
type Plan []Decision

// Validate checks the plan length against the horizon and every month's
// levers. It fails fast, before any simulation step.
func (p Plan) Validate(months int) error {
	if len(p) != months {
		return fmt.Errorf("decision plan: expected %d months, got %d", months, len(p))
	}
	for t, d := range p {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("decision plan month %d: %w", t, err)
		}
	}
	return nil
}

// ConstantPlan returns a plan that repeats the same decision every month.
func ConstantPlan(d Decision, months int) Plan {
	plan := make(Plan, months)
	for t := range plan {
		plan[t] = d
	}
	return plan
}
