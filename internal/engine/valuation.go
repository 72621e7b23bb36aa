package engine

import "github.com/iwvelando/startup-forecast/internal/model"

// Valuation computes the terminal valuation metric: trailing-twelve-month
// revenue times the configured multiple, adjusted by current cash and
// penalized by outstanding debt. The weights are policy, not constants;
// zero weights give the revenue-multiple-only form.
func Valuation(ttmRevenue, cash, debt float64, p model.ValuationPolicy) float64 {
	return ttmRevenue*p.Multiple + p.CashWeight*cash - p.DebtPenalty*debt
}
