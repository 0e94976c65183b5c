package replay

import (
	"math"

	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region types

// StepOutcome captures one replayed step and its comparison against the
// expected trajectory, when one exists.
type StepOutcome struct {
	Step        int
	Action      float64
	Observation env.Observation
	Expected    *FixtureState // nil when the fixture carries no expectation
	Match       bool          // true when Expected is nil or within tolerance
}

// Summary aggregates a replay run.
type Summary struct {
	TotalSteps int
	Matches    int
	Mismatches int
	Final      env.Observation
	Passed     bool
}

// #endregion types

// #region replay

// Replay re-executes a fixture's action sequence through a fresh
// environment. The physics are deterministic, so any mismatch against the
// expected trajectory means the dynamics changed.
func Replay(f Fixture) ([]StepOutcome, Summary) {
	return run(f.Physics.Params(), f.Initial, f.Actions, f.Expected, tolerance(f.Tolerance))
}

// ReplayRun re-executes a recorded run's actions and compares against the
// observations recorded at the time.
func ReplayRun(run0 trajectory.RunRecord, steps []trajectory.StepRecord, params physics.Params, tol float64) ([]StepOutcome, Summary) {
	actions := make([]float64, len(steps))
	expected := make([]FixtureState, len(steps))
	for i, s := range steps {
		actions[i] = s.Action
		expected[i] = FixtureState{Position: s.Position, Velocity: s.Velocity}
	}
	initial := FixtureState{Position: run0.InitialPosition, Velocity: run0.InitialVelocity}
	return run(params, initial, actions, expected, tolerance(tol))
}

func run(params physics.Params, initial FixtureState, actions []float64, expected []FixtureState, tol float64) ([]StepOutcome, Summary) {
	e := env.New(params, initial.Position, initial.Velocity)
	outcomes := make([]StepOutcome, 0, len(actions))

	summary := Summary{TotalSteps: len(actions)}
	for i, action := range actions {
		e.Step(action)
		obs := e.Observe()

		out := StepOutcome{Step: i + 1, Action: action, Observation: obs, Match: true}
		if len(expected) > 0 {
			want := expected[i]
			out.Expected = &want
			out.Match = math.Abs(obs.Position-want.Position) <= tol &&
				math.Abs(obs.Velocity-want.Velocity) <= tol
		}
		if out.Match {
			summary.Matches++
		} else {
			summary.Mismatches++
		}
		outcomes = append(outcomes, out)
	}

	summary.Final = e.Observe()
	summary.Passed = summary.Mismatches == 0
	return outcomes, summary
}

func tolerance(tol float64) float64 {
	if tol <= 0 {
		return DefaultTolerance
	}
	return tol
}

// #endregion replay
