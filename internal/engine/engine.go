// Package engine implements the monthly step function: a pure transition
// from (State, Assumptions, Decision) to the month's calculated Row and the
// next State. No randomness, no I/O, no hidden state across calls.
package engine

import (
	"math"

	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/iwvelando/startup-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine computes monthly transitions. It carries no mutable state; the
// logger is the only dependency, so one Engine is safe to share across
// concurrent simulations.
type Engine struct {
	logger *zap.Logger
}

// New constructs an Engine with the provided logger.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Step deterministically produces the Row for the state's month and the
// state for the following month. Ordinary business edge cases (zero spend,
// empty pool, saturated stocks) are normalized with guards, never errors.
func (e *Engine) Step(state model.State, a model.Assumptions, d model.Decision) (model.Row, model.State) {
	// Product value accumulates dev spend net of maintenance, depreciates,
	// and never falls below the floor.
	pvNext := nextProductValue(state.ProductValue, a.Product, d.DevSpend)
	milestone := milestoneFor(pvNext, a.Product.Milestones)
	proPrice := d.ProPrice.Resolve(a.Product.Milestones[milestone].ProPrice)
	entPrice := d.EntPrice.Resolve(a.Product.Milestones[milestone].EntPrice)

	// Normalized product-value factor: boosts downstream conversion and its
	// mirror dampens churn, both within the configured bounds.
	pvNorm := mathutil.Clamp(pvNext/a.Product.ReferenceValue, a.Product.FactorMin, a.Product.FactorMax)
	churnNorm := mathutil.Clamp(2.0-pvNorm, a.Product.FactorMin, a.Product.FactorMax)

	domainRatingNext := nextDomainRating(state.DomainRating, a.Organic, d.SEOSpend)
	seoTrafficNext := nextSEOTraffic(state.SEOTraffic, domainRatingNext, a.Organic, d.SEOSpend)

	cpcEff := effectiveCPC(d.AdsSpend, a.Acquisition)
	adsClicks := 0.0
	if d.AdsSpend > 0 {
		adsClicks = d.AdsSpend / cpcEff
	}

	websiteVisitors := adsClicks + seoTrafficNext
	websiteLeads := websiteVisitors * mathutil.Clamp01(a.Funnel.VisitorToLead*pvNorm)

	// Qualified-pool outreach: contact volume saturates in spend and the
	// pool depletes as prospects are contacted.
	contacted := 0.0
	if d.OutreachSpend > 0 && state.QualifiedPool > 0 {
		saturation := 1.0 - math.Exp(-a.Outreach.Saturation*math.Log1p(d.OutreachSpend/a.Outreach.ReferenceSpend))
		contacted = state.QualifiedPool * saturation
	}
	outreachLeads := contacted * a.Outreach.ContactToLead
	contactCost := contacted * a.Outreach.CostPerContact
	poolNext := mathutil.Max(0, state.QualifiedPool-contacted)

	leadsTotal := websiteLeads + outreachLeads
	newFree := leadsTotal * mathutil.Clamp01(a.Funnel.LeadToFree*pvNorm)

	churnedFree := state.FreeActive * mathutil.Clamp01(a.Funnel.ChurnFree*churnNorm)
	churnedPro := state.ProActive * mathutil.Clamp01(a.Funnel.ChurnPro*churnNorm)
	churnedEnt := state.EntActive * mathutil.Clamp01(a.Funnel.ChurnEnt*churnNorm)

	freeAfterChurn := mathutil.Max(0, state.FreeActive-churnedFree)
	proAfterChurn := mathutil.Max(0, state.ProActive-churnedPro)
	entAfterChurn := mathutil.Max(0, state.EntActive-churnedEnt)

	upgradedToPro := freeAfterChurn * mathutil.Clamp01(a.Funnel.FreeToPro*pvNorm)
	upgradedToEnt := proAfterChurn * mathutil.Clamp01(a.Funnel.ProToEnt*pvNorm)

	partnerProDeals, partnerEntDeals := partnerDeals(d.PartnerSpend, a.Partner)

	freeNext := mathutil.Max(0, freeAfterChurn+newFree-upgradedToPro)
	proNext := mathutil.Max(0, proAfterChurn+upgradedToPro+partnerProDeals-upgradedToEnt)
	entNext := mathutil.Max(0, entAfterChurn+upgradedToEnt+partnerEntDeals)

	newPro := upgradedToPro + partnerProDeals
	newEnt := upgradedToEnt + partnerEntDeals

	revenue := proNext*proPrice + entNext*entPrice

	acquisitionCost := d.AdsSpend + d.SEOSpend + d.OutreachSpend + d.PartnerSpend + contactCost
	salesCost := newPro*a.Costs.SalesPerNewPro + newEnt*a.Costs.SalesPerNewEnt
	supportCost := proNext*a.Costs.SupportPerPro + entNext*a.Costs.SupportPerEnt
	operatingCost := a.Costs.OperatingBaseline + a.Costs.OperatingPerUser*(freeNext+proNext+entNext)
	partnerCommission := a.Partner.CommissionRate * (partnerProDeals*proPrice + partnerEntDeals*entPrice)

	// Interest is charged on start-of-month debt; a draw made this month
	// starts accruing next month.
	interestRate := effectiveInterestRate(state.Debt, a.Credit)
	interestPayment := state.Debt * interestRate / constants.MonthsPerYear

	costsExTax := acquisitionCost + d.DevSpend + salesCost + supportCost + operatingCost + partnerCommission + interestPayment
	profitBT := revenue - costsExTax
	tax := mathutil.Max(0, profitBT) * a.TaxRate
	netCashflow := profitBT - tax

	cashNext := state.Cash + netCashflow
	debtNext := state.Debt

	creditDraw := 0.0
	if cashNext < a.Credit.CashThreshold && a.Credit.DrawAmount > 0 {
		creditDraw = a.Credit.DrawAmount
		cashNext += creditDraw
		debtNext += creditDraw
		e.logger.Debug("credit line drawn",
			zap.String("op", "engine.Step"),
			zap.Int("month", state.Month),
			zap.Float64("draw", creditDraw),
			zap.Float64("cash", cashNext),
		)
	}

	// Automatic repayment is a toggleable policy; it never pulls cash below
	// the credit threshold.
	debtRepayment := 0.0
	if a.Credit.RepayFactor > 0 && debtNext > 0 {
		capacity := mathutil.Max(0, cashNext-a.Credit.CashThreshold)
		debtRepayment = mathutil.Min(debtNext*a.Credit.RepayFactor, capacity)
		cashNext -= debtRepayment
		debtNext -= debtRepayment
	}

	window := state.PushRevenue(revenue)
	var ttm float64
	for _, r := range window {
		ttm += r
	}
	valuation := Valuation(ttm, cashNext, debtNext, a.Valuation)

	row := model.Row{
		Month: state.Month,

		AdsSpend:      d.AdsSpend,
		SEOSpend:      d.SEOSpend,
		DevSpend:      d.DevSpend,
		OutreachSpend: d.OutreachSpend,
		PartnerSpend:  d.PartnerSpend,

		AdsClicks:         adsClicks,
		EffectiveCPC:      cpcEff,
		SEOTraffic:        seoTrafficNext,
		WebsiteVisitors:   websiteVisitors,
		WebsiteLeads:      websiteLeads,
		OutreachContacted: contacted,
		OutreachLeads:     outreachLeads,
		LeadsTotal:        leadsTotal,

		NewFree:       newFree,
		NewPro:        newPro,
		NewEnt:        newEnt,
		UpgradedToPro: upgradedToPro,
		UpgradedToEnt: upgradedToEnt,
		ChurnedFree:   churnedFree,
		ChurnedPro:    churnedPro,
		ChurnedEnt:    churnedEnt,

		PartnerProDeals: partnerProDeals,
		PartnerEntDeals: partnerEntDeals,

		Milestone: milestone,
		ProPrice:  proPrice,
		EntPrice:  entPrice,

		RevenueTotal:      revenue,
		RevenueTTM:        ttm,
		AcquisitionCost:   acquisitionCost,
		SalesCost:         salesCost,
		SupportCost:       supportCost,
		OperatingCost:     operatingCost,
		PartnerCommission: partnerCommission,
		InterestRate:      interestRate,
		InterestPayment:   interestPayment,
		CostsTotal:        costsExTax + tax,
		ProfitBeforeTax:   profitBT,
		Tax:               tax,
		NetCashflow:       netCashflow,
		CreditDraw:        creditDraw,
		DebtRepayment:     debtRepayment,
		Valuation:         valuation,

		Cash:          cashNext,
		Debt:          debtNext,
		DomainRating:  domainRatingNext,
		ProductValue:  pvNext,
		FreeActive:    freeNext,
		ProActive:     proNext,
		EntActive:     entNext,
		QualifiedPool: poolNext,
	}

	next := model.State{
		Month:         state.Month + 1,
		Cash:          cashNext,
		Debt:          debtNext,
		DomainRating:  domainRatingNext,
		SEOTraffic:    seoTrafficNext,
		ProductValue:  pvNext,
		FreeActive:    freeNext,
		ProActive:     proNext,
		EntActive:     entNext,
		QualifiedPool: poolNext,
	}.WithRevenueWindow(window)

	return row, next
}

// effectiveCPC models diminishing returns on paid acquisition: the cost per
// click rises logarithmically with spend relative to the reference spend.
func effectiveCPC(adsSpend float64, p model.AcquisitionParams) float64 {
	if adsSpend <= 0 {
		return p.CPCBase
	}
	return p.CPCBase * (1.0 + p.Sensitivity*math.Log1p(adsSpend/p.ReferenceSpend))
}

// nextDomainRating applies monthly decay and spend-driven growth toward the
// rating ceiling. Decay applies regardless of spend.
func nextDomainRating(rating float64, p model.OrganicParams, seoSpend float64) float64 {
	spendFactor := math.Log1p(seoSpend / p.ReferenceSpend)
	growthRate := 1.0 - math.Exp(-p.SpendSensitivity*spendFactor)
	growth := (p.DomainRatingMax - rating) * growthRate
	next := rating - rating*p.DomainRatingDecay + growth
	return mathutil.Clamp(next, 0, p.DomainRatingMax)
}

// nextSEOTraffic updates the organic traffic stock: monthly decay plus a
// log-saturating growth term amplified by current domain authority.
func nextSEOTraffic(traffic, domainRating float64, p model.OrganicParams, seoSpend float64) float64 {
	authority := mathutil.Clamp01(domainRating / p.DomainRatingMax)
	growth := p.ReferenceSpend * math.Log1p(seoSpend/p.ReferenceSpend) * p.TrafficPerSpend *
		(0.4 + 1.2*math.Pow(authority, 1.2))
	return mathutil.Max(0, traffic*(1.0-p.TrafficDecay)+growth)
}

// nextProductValue depreciates the stock, credits dev spend net of the
// maintenance requirement, and floors the result.
func nextProductValue(pv float64, p model.ProductParams, devSpend float64) float64 {
	gain := mathutil.Max(0, devSpend-p.MaintenanceCost) / p.CostPerPoint
	return mathutil.Max(p.Floor, pv*(1.0-p.DepreciationRate)+gain)
}

// milestoneFor selects the highest milestone whose threshold is met.
// Milestones are validated sorted ascending at construction.
func milestoneFor(pv float64, milestones []model.PricingMilestone) int {
	idx := 0
	for i, m := range milestones {
		if pv >= m.Threshold {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// partnerDeals converts partner spend into direct deals with logarithmic
// saturation. Zero spend yields zero deals.
func partnerDeals(spend float64, p model.PartnerParams) (proDeals, entDeals float64) {
	if spend <= 0 {
		return 0, 0
	}
	factor := math.Log1p(spend / p.ReferenceSpend)
	return p.ProDealRate * factor, p.EntDealRate * factor
}

// effectiveInterestRate rises logarithmically with outstanding debt and is
// floored so serviced debt is never free.
func effectiveInterestRate(debt float64, p model.CreditParams) float64 {
	if debt <= 0 {
		return 0
	}
	rate := p.AnnualRateBase * (1.0 + p.RateSensitivity*math.Log1p(debt/p.DebtReference))
	return mathutil.Max(rate, constants.MinAnnualInterestRate)
}
