package agent

import (
	"context"
	"fmt"

	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/infer"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region config

// Config holds the fixed parameters of an agent instance.
type Config struct {
	Horizon        int // look-ahead length T, fixed for the agent's lifetime
	TargetPosition float64
	TargetVelocity float64
	Physics        physics.Params
}

// DefaultConfig returns the standard parking-on-the-hill task: target
// (0.5, 0) with a 20-step look-ahead.
func DefaultConfig() Config {
	return Config{
		Horizon:        20,
		TargetPosition: 0.5,
		TargetVelocity: 0.0,
		Physics:        physics.DefaultParams(),
	}
}

// #endregion config

// #region agent

// Agent owns the receding-horizon belief window and the most recent
// posterior plan, and drives the five-phase cycle
// Act -> Execute -> Observe -> Infer -> Slide once per timestep.
type Agent struct {
	config  Config
	window  *belief.Window
	engine  infer.Engine
	plan    *infer.Plan
	lastObs env.Observation
}

// New creates an agent whose previous-state prior is anchored at the given
// initial state. Misconfiguration fails here, not mid-run.
func New(config Config, engine infer.Engine, initialPosition, initialVelocity float64) (*Agent, error) {
	if engine == nil {
		return nil, fmt.Errorf("nil inference engine")
	}
	window, err := belief.NewWindow(config.Horizon, config.TargetPosition, config.TargetVelocity,
		belief.FixedState(initialPosition, initialVelocity))
	if err != nil {
		return nil, fmt.Errorf("belief window: %w", err)
	}
	return &Agent{
		config:  config,
		window:  window,
		engine:  engine,
		lastObs: env.Observation{Position: initialPosition, Velocity: initialVelocity},
	}, nil
}

// Config returns the agent's fixed parameters.
func (a *Agent) Config() Config { return a.config }

// Window exposes the belief window for inspection.
func (a *Agent) Window() *belief.Window { return a.window }

// #endregion agent

// #region phases

// Act returns the action to execute this timestep: the most-likely control
// at horizon-offset 1 of the last plan, or zero force before any plan
// exists.
func (a *Agent) Act() float64 {
	if a.plan == nil || len(a.plan.Controls) < 2 {
		return 0
	}
	return a.plan.Controls[1]
}

// Observe feeds the new environment state back into the window: the
// offset-0 goal prior is pinned to the observation.
func (a *Agent) Observe(obs env.Observation) {
	a.lastObs = obs
	a.window.ClampObservation(obs.Position, obs.Velocity)
}

// Infer pins the executed action into the offset-0 control prior, calls
// the inference engine with the full window, and stores the returned plan.
// Engine failure propagates; wrap the engine in a RetryingEngine to change
// that.
func (a *Agent) Infer(ctx context.Context, action float64) error {
	a.window.ClampAction(action)

	req := infer.NewPlanRequest(a.window, a.config.Physics)
	plan, err := a.engine.Plan(ctx, req)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	// Engines outside this package may not validate their own output.
	if err := plan.Validate(a.config.Horizon); err != nil {
		return fmt.Errorf("infer: malformed plan: %w", err)
	}
	a.plan = &plan
	return nil
}

// Slide advances the horizon window one step and re-centers the
// previous-state prior on the engine's reseed statistic (the state belief
// one step ahead of the consumed slot). Before any plan exists the prior
// re-anchors on the last observation.
func (a *Agent) Slide() error {
	next := belief.FixedState(a.lastObs.Position, a.lastObs.Velocity)
	if a.plan != nil {
		next = a.plan.NextPrev
	}
	if err := a.window.Slide(next); err != nil {
		return fmt.Errorf("slide: %w", err)
	}
	return nil
}

// #endregion phases

// #region step

// StepResult is the per-timestep output handed to downstream consumers:
// the executed action, the resulting observation, and the predicted future
// positions over the remaining horizon.
type StepResult struct {
	Action             float64
	Observation        env.Observation
	PredictedPositions []float64
}

// Step runs one full cycle against the environment.
func (a *Agent) Step(ctx context.Context, e *env.Environment) (StepResult, error) {
	action := a.Act()
	e.Step(action)
	obs := e.Observe()
	a.Observe(obs)

	if err := a.Infer(ctx, action); err != nil {
		return StepResult{Action: action, Observation: obs}, err
	}
	if err := a.Slide(); err != nil {
		return StepResult{Action: action, Observation: obs}, err
	}

	return StepResult{
		Action:             action,
		Observation:        obs,
		PredictedPositions: a.predictedPositions(),
	}, nil
}

func (a *Agent) predictedPositions() []float64 {
	if a.plan == nil {
		return nil
	}
	out := make([]float64, len(a.plan.States))
	for i, s := range a.plan.States {
		out[i] = s.Mean[0]
	}
	return out
}

// #endregion step
