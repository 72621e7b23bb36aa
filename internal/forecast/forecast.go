// Package forecast drives the step function across a fixed horizon and
// accumulates the ordered monthly row history.
package forecast

import (
	"fmt"

	"github.com/iwvelando/startup-forecast/internal/engine"
	"github.com/iwvelando/startup-forecast/internal/model"
	"go.uber.org/zap"
)

// Run simulates the full horizon for one assumptions/plan pair and returns
// the ordered row history, one row per month. It is a pure function of its
// inputs: no state is shared between invocations, so concurrent callers may
// run freely against the same Assumptions.
//
// Run does not early-terminate on negative cash; it records the full
// trajectory and leaves feasibility judgment to the caller.
func Run(logger *zap.Logger, a model.Assumptions, plan model.Plan) ([]model.Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("forecast: invalid assumptions: %w", err)
	}
	if err := plan.Validate(a.Months); err != nil {
		return nil, fmt.Errorf("forecast: invalid decision plan: %w", err)
	}

	eng := engine.New(logger)
	state := model.InitialState(a)
	rows := make([]model.Row, 0, a.Months)

	for t := 0; t < a.Months; t++ {
		row, next := eng.Step(state, a, plan[t])
		rows = append(rows, row)
		state = next
	}

	logger.Debug("forecast complete",
		zap.String("op", "forecast.Run"),
		zap.Int("months", a.Months),
		zap.Float64("endCash", state.Cash),
		zap.Float64("endDebt", state.Debt),
	)

	return rows, nil
}

// MinCash returns the minimum end-of-month cash across a row history. An
// empty history reports ok=false.
func MinCash(rows []model.Row) (min float64, ok bool) {
	if len(rows) == 0 {
		return 0, false
	}
	min = rows[0].Cash
	for _, row := range rows[1:] {
		if row.Cash < min {
			min = row.Cash
		}
	}
	return min, true
}
