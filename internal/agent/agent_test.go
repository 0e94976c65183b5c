package agent

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/infer"
)

// scriptedEngine returns a fixed plan and records the last request.
type scriptedEngine struct {
	plan    infer.Plan
	err     error
	lastReq infer.PlanRequest
	calls   int
}

func (s *scriptedEngine) Plan(_ context.Context, req infer.PlanRequest) (infer.Plan, error) {
	s.lastReq = req
	s.calls++
	if s.err != nil {
		return infer.Plan{}, s.err
	}
	return s.plan, nil
}

func makePlan(horizon int, controls []float64) infer.Plan {
	states := make([]belief.StateGaussian, horizon)
	for i := range states {
		states[i] = belief.FixedState(-0.5+0.01*float64(i), 0.01)
	}
	return infer.Plan{
		Controls: controls,
		States:   states,
		NextPrev: states[0],
	}
}

func testConfig(horizon int) Config {
	c := DefaultConfig()
	c.Horizon = horizon
	return c
}

func TestNewRejectsMisconfiguration(t *testing.T) {
	if _, err := New(testConfig(20), nil, -0.5, 0); err == nil {
		t.Fatal("expected error for nil engine")
	}
	if _, err := New(testConfig(0), infer.StubEngine{}, -0.5, 0); err == nil {
		t.Fatal("expected error for zero horizon")
	}
}

func TestActDefaultsToZeroBeforeAnyPlan(t *testing.T) {
	a, err := New(testConfig(20), infer.StubEngine{}, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Act(); got != 0 {
		t.Fatalf("first Act() = %v, want 0", got)
	}
}

func TestActUsesOffsetOneControl(t *testing.T) {
	eng := &scriptedEngine{plan: makePlan(4, []float64{9.9, 1.7, 0.3, 0.1})}
	a, err := New(testConfig(4), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e := env.New(a.Config().Physics, -0.5, 0)
	if _, err := a.Step(context.Background(), e); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := a.Act(); got != 1.7 {
		t.Fatalf("Act() = %v, want offset-1 control 1.7", got)
	}
}

func TestInferClampsActionAndObservation(t *testing.T) {
	eng := &scriptedEngine{plan: makePlan(5, []float64{0, 0.5, 0, 0, 0})}
	a, err := New(testConfig(5), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e := env.New(a.Config().Physics, -0.5, 0)
	if _, err := a.Step(context.Background(), e); err != nil {
		t.Fatalf("Step: %v", err)
	}

	obs := e.Observe()
	req := eng.lastReq
	if req.Controls[0].Variance != belief.Certain || req.Controls[0].Mean != 0 {
		t.Fatalf("executed action not clamped: %+v", req.Controls[0])
	}
	if req.Goals[0].Mean != [2]float64{obs.Position, obs.Velocity} {
		t.Fatalf("observation not clamped into goal slot 0: %+v vs %+v", req.Goals[0].Mean, obs)
	}
	if req.Goals[0].Cov[0][0] != belief.Certain {
		t.Fatalf("observation variance not tight: %v", req.Goals[0].Cov)
	}
}

func TestSlideReseedsPrevFromPlanStatistic(t *testing.T) {
	plan := makePlan(5, []float64{0, 0, 0, 0, 0})
	plan.NextPrev = belief.FixedState(-0.33, 0.04)
	eng := &scriptedEngine{plan: plan}

	a, err := New(testConfig(5), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e := env.New(a.Config().Physics, -0.5, 0)
	if _, err := a.Step(context.Background(), e); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if got := a.Window().Prev(); got.Mean != [2]float64{-0.33, 0.04} {
		t.Fatalf("prev prior not reseeded: %+v", got)
	}
}

func TestStepPropagatesEngineFailure(t *testing.T) {
	eng := &scriptedEngine{err: errors.New("no convergence")}
	a, err := New(testConfig(5), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e := env.New(a.Config().Physics, -0.5, 0)
	if _, err := a.Step(context.Background(), e); err == nil {
		t.Fatal("expected engine failure to propagate")
	}
}

func TestStepRejectsMalformedPlan(t *testing.T) {
	// engine answers with too few controls for the horizon
	eng := &scriptedEngine{plan: makePlan(3, []float64{0, 0, 0})}
	a, err := New(testConfig(5), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e := env.New(a.Config().Physics, -0.5, 0)
	if _, err := a.Step(context.Background(), e); err == nil {
		t.Fatal("expected malformed-plan error")
	}
}

func TestHundredStepStubRunStaysBounded(t *testing.T) {
	a, err := New(DefaultConfig(), infer.StubEngine{}, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e := env.New(a.Config().Physics, -0.5, 0)

	for i := 0; i < 100; i++ {
		res, err := a.Step(context.Background(), e)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if math.Abs(res.Observation.Position) > 2 || math.Abs(res.Observation.Velocity) > 1 {
			t.Fatalf("step %d diverged: %+v", i, res.Observation)
		}
		if len(res.PredictedPositions) != 20 {
			t.Fatalf("step %d predicted positions = %d, want 20", i, len(res.PredictedPositions))
		}
	}

	// Window invariants still hold after 100 slides.
	goals := a.Window().Goals()
	if len(goals) != 20 {
		t.Fatalf("horizon length changed: %d", len(goals))
	}
	if last := goals[19]; last.Mean != [2]float64{0.5, 0.0} || last.Cov[0][0] != belief.Certain {
		t.Fatalf("terminal goal pin lost: %+v", last)
	}
}

func TestDegradedModeKeepsLoopRunning(t *testing.T) {
	failing := &scriptedEngine{err: errors.New("engine down")}
	eng := infer.NewRetryingEngine(failing, infer.RetryPolicy{MaxRetries: 1, Fallback: infer.FallbackZeroAction})

	a, err := New(testConfig(5), eng, -0.5, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e := env.New(a.Config().Physics, -0.5, 0)
	for i := 0; i < 10; i++ {
		if _, err := a.Step(context.Background(), e); err != nil {
			t.Fatalf("step %d: degraded mode should not fail: %v", i, err)
		}
	}
	if got := a.Act(); got != 0 {
		t.Fatalf("degraded plan should recommend zero action, got %v", got)
	}
}
