package infer

import (
	"context"
	"fmt"
	"math"

	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region request

// PlanRequest is the full prior state handed to the inference engine:
// the generative-model structure constants plus the current numeric values
// of every prior in the receding-horizon window.
type PlanRequest struct {
	Horizon  int
	Prev     belief.StateGaussian
	Controls []belief.Gaussian
	Goals    []belief.StateGaussian
	Physics  physics.Params
}

// NewPlanRequest snapshots a belief window into an engine request.
func NewPlanRequest(w *belief.Window, params physics.Params) PlanRequest {
	return PlanRequest{
		Horizon:  w.Horizon(),
		Prev:     w.Prev(),
		Controls: w.Controls(),
		Goals:    w.Goals(),
		Physics:  params,
	}
}

// #endregion request

// #region plan

// Plan is the posterior result returned by the engine: point summaries over
// the horizon plus the statistic used to reseed the next cycle's
// previous-state prior.
type Plan struct {
	Controls []float64              // most-likely control per horizon offset
	States   []belief.StateGaussian // posterior state belief per horizon offset
	NextPrev belief.StateGaussian
}

// Validate rejects plans whose shape or values cannot have come from a
// converged engine run over the requested horizon.
func (p Plan) Validate(horizon int) error {
	if len(p.Controls) != horizon {
		return fmt.Errorf("plan has %d controls, want %d", len(p.Controls), horizon)
	}
	if len(p.States) != horizon {
		return fmt.Errorf("plan has %d state beliefs, want %d", len(p.States), horizon)
	}
	for i, c := range p.Controls {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("control %d is non-finite: %v", i, c)
		}
	}
	for i, s := range p.States {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("state belief %d: %w", i, err)
		}
	}
	if err := p.NextPrev.Validate(); err != nil {
		return fmt.Errorf("next-prev statistic: %w", err)
	}
	return nil
}

// #endregion plan

// #region engine

// Engine is the external inference collaborator: priors in, posteriors out.
// Implementations are synchronous; latency is bounded only by ctx.
type Engine interface {
	Plan(ctx context.Context, req PlanRequest) (Plan, error)
}

// #endregion engine
