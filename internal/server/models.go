package server

import (
	"time"

	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/iwvelando/startup-forecast/internal/optimizer"
)

// Error codes returned in ErrorResponse bodies.
const (
	codeInvalidRequest     = "INVALID_REQUEST"
	codeInvalidPlan        = "INVALID_PLAN"
	codeInvalidAssumptions = "INVALID_ASSUMPTIONS"
	codeInvalidSearch      = "INVALID_SEARCH"
	codeNoFeasiblePlan     = "NO_FEASIBLE_PLAN"
	codeSearchFailed       = "SEARCH_FAILED"
	codeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecisionPayload is one month's levers on the wire; nil prices defer to
// milestone pricing.
type DecisionPayload struct {
	AdsSpend      float64  `json:"ads_spend"`
	SEOSpend      float64  `json:"seo_spend"`
	DevSpend      float64  `json:"dev_spend"`
	OutreachSpend float64  `json:"outreach_spend"`
	PartnerSpend  float64  `json:"partner_spend"`
	ProPrice      *float64 `json:"pro_price,omitempty"`
	EntPrice      *float64 `json:"ent_price,omitempty"`
}

// SimulateRequest represents the request body for running a simulation.
// Decisions may carry a single entry, applied to every month, or one entry
// per month of the horizon.
type SimulateRequest struct {
	Assumptions model.Assumptions `json:"assumptions" binding:"required"`
	Decisions   []DecisionPayload `json:"decisions" binding:"required"`
}

// SimulateResponse returns the full monthly trajectory plus summary figures.
type SimulateResponse struct {
	Rows     []model.Row `json:"rows"`
	MinCash  float64     `json:"min_cash"`
	EndCash  float64     `json:"end_cash"`
	EndValue float64     `json:"end_valuation"`
	Duration string      `json:"duration"`
}

// BoundPayload is the knot search interval for one lever.
type BoundPayload struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BoundsPayload holds the per-lever knot bounds for an optimization request.
type BoundsPayload struct {
	Ads      BoundPayload `json:"ads"`
	SEO      BoundPayload `json:"seo"`
	Dev      BoundPayload `json:"dev"`
	Outreach BoundPayload `json:"outreach"`
	Partner  BoundPayload `json:"partner"`
}

// OptionsPayload tunes the search; zero values use server defaults.
type OptionsPayload struct {
	Knots         int    `json:"knots,omitempty"`
	Trials        int    `json:"trials,omitempty"`
	Workers       int    `json:"workers,omitempty"`
	Seed          int64  `json:"seed,omitempty"`
	Interpolation string `json:"interpolation,omitempty"`
	Sampler       string `json:"sampler,omitempty"`
}

// OptimizeRequest represents the request body for a decision search.
type OptimizeRequest struct {
	Assumptions model.Assumptions `json:"assumptions" binding:"required"`
	Bounds      BoundsPayload     `json:"bounds" binding:"required"`
	Options     OptionsPayload    `json:"options,omitempty"`
}

// OptimizeResponse returns the winning plan and its trajectory.
type OptimizeResponse struct {
	Plan           []DecisionPayload `json:"plan"`
	Rows           []model.Row       `json:"rows"`
	Score          float64           `json:"score"`
	Trial          int               `json:"trial"`
	TrialsRun      int               `json:"trials_run"`
	FeasibleTrials int               `json:"feasible_trials"`
	Saved          bool              `json:"saved"`
	Duration       string            `json:"duration"`
}

// plan expands the request decisions into a per-month plan. A single entry
// repeats for the whole horizon.
func (r *SimulateRequest) plan() (model.Plan, error) {
	if len(r.Decisions) == 1 {
		return model.ConstantPlan(toDecision(r.Decisions[0]), r.Assumptions.Months), nil
	}
	plan := make(model.Plan, len(r.Decisions))
	for i, d := range r.Decisions {
		plan[i] = toDecision(d)
	}
	if err := plan.Validate(r.Assumptions.Months); err != nil {
		return nil, err
	}
	return plan, nil
}

func (b BoundsPayload) toLeverBounds() optimizer.LeverBounds {
	return optimizer.LeverBounds{
		Ads:      optimizer.Bounds(b.Ads),
		SEO:      optimizer.Bounds(b.SEO),
		Dev:      optimizer.Bounds(b.Dev),
		Outreach: optimizer.Bounds(b.Outreach),
		Partner:  optimizer.Bounds(b.Partner),
	}
}

func (o OptionsPayload) toOptions() optimizer.Options {
	return optimizer.Options{
		Knots:         o.Knots,
		Trials:        o.Trials,
		Workers:       o.Workers,
		Seed:          o.Seed,
		Interpolation: optimizer.Mode(o.Interpolation),
		Sampler:       o.Sampler,
	}
}

func toDecision(p DecisionPayload) model.Decision {
	d := model.Decision{
		AdsSpend:      p.AdsSpend,
		SEOSpend:      p.SEOSpend,
		DevSpend:      p.DevSpend,
		OutreachSpend: p.OutreachSpend,
		PartnerSpend:  p.PartnerSpend,
	}
	if p.ProPrice != nil {
		d.ProPrice = model.OverridePrice(*p.ProPrice)
	}
	if p.EntPrice != nil {
		d.EntPrice = model.OverridePrice(*p.EntPrice)
	}
	return d
}

func toPayload(d model.Decision) DecisionPayload {
	p := DecisionPayload{
		AdsSpend:      d.AdsSpend,
		SEOSpend:      d.SEOSpend,
		DevSpend:      d.DevSpend,
		OutreachSpend: d.OutreachSpend,
		PartnerSpend:  d.PartnerSpend,
	}
	if d.ProPrice.IsSet() {
		v := d.ProPrice.Value()
		p.ProPrice = &v
	}
	if d.EntPrice.IsSet() {
		v := d.EntPrice.Value()
		p.EntPrice = &v
	}
	return p
}

func buildSimulateResponse(rows []model.Row, elapsed time.Duration) SimulateResponse {
	resp := SimulateResponse{Rows: rows, Duration: elapsed.String()}
	if n := len(rows); n > 0 {
		min := rows[0].Cash
		for _, row := range rows[1:] {
			if row.Cash < min {
				min = row.Cash
			}
		}
		resp.MinCash = min
		resp.EndCash = rows[n-1].Cash
		resp.EndValue = rows[n-1].Valuation
	}
	return resp
}

func buildOptimizeResponse(result *optimizer.Result, saved bool, elapsed time.Duration) OptimizeResponse {
	plan := make([]DecisionPayload, len(result.Plan))
	for i, d := range result.Plan {
		plan[i] = toPayload(d)
	}
	return OptimizeResponse{
		Plan:           plan,
		Rows:           result.Rows,
		Score:          result.Score,
		Trial:          result.Trial,
		TrialsRun:      result.TrialsRun,
		FeasibleTrials: result.FeasibleTrials,
		Saved:          saved,
		Duration:       elapsed.String(),
	}
}
