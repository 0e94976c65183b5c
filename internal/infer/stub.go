package infer

import (
	"context"

	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
)

// #region stub

// StubEngine is a trivial planner: it recommends zero action at every
// offset and predicts the current state belief repeated across the horizon.
// Useful for wiring checks and as the degraded-mode plan.
type StubEngine struct{}

// Plan implements Engine.
func (StubEngine) Plan(_ context.Context, req PlanRequest) (Plan, error) {
	return NeutralPlan(req), nil
}

// NeutralPlan builds the do-nothing plan for a request: zero controls and
// the previous-state prior carried forward unchanged.
func NeutralPlan(req PlanRequest) Plan {
	states := make([]belief.StateGaussian, req.Horizon)
	for i := range states {
		states[i] = req.Prev
	}
	return Plan{
		Controls: make([]float64, req.Horizon),
		States:   states,
		NextPrev: req.Prev,
	}
}

// #endregion stub
