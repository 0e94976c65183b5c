package eval

import (
	"fmt"
	"math"

	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region config
// Config holds the tolerances for calling a run successful.
type Config struct {
	PositionTolerance float64 // |position - target| to count as parked
	VelocityTolerance float64 // |velocity| to count as parked
}

// DefaultConfig returns the standard parking tolerances.
func DefaultConfig() Config {
	return Config{
		PositionTolerance: 0.1,
		VelocityTolerance: 0.05,
	}
}

// #endregion config

// #region result
// Metric captures a single check over a completed run.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// Result is the outcome of evaluating a recorded trajectory.
type Result struct {
	Reached          bool
	FirstReachedStep int // 0 if never reached
	FinalPosition    float64
	FinalHeight      float64
	TargetHeight     float64
	PeakHeight       float64
	Aborted          bool
	Passed           bool
	Metrics          []Metric
	Reason           string
}

// #endregion result

// #region harness
// Harness evaluates completed runs against their target.
type Harness struct {
	config Config
}

// NewHarness creates an eval harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Run scores a recorded trajectory. A run passes when the car parks at the
// target within tolerances and the guard never aborted.
func (h *Harness) Run(run trajectory.RunRecord, steps []trajectory.StepRecord) Result {
	res := Result{TargetHeight: physics.Height(run.TargetPosition)}
	if len(steps) == 0 {
		res.Reason = "no steps recorded"
		return res
	}

	res.PeakHeight = math.Inf(-1)
	for _, rec := range steps {
		h0 := physics.Height(rec.Position)
		if h0 > res.PeakHeight {
			res.PeakHeight = h0
		}
		if rec.Decision == "abort" {
			res.Aborted = true
		}
		if !res.Reached &&
			math.Abs(rec.Position-run.TargetPosition) <= h.config.PositionTolerance &&
			math.Abs(rec.Velocity) <= h.config.VelocityTolerance {
			res.Reached = true
			res.FirstReachedStep = rec.Step
		}
	}

	last := steps[len(steps)-1]
	res.FinalPosition = last.Position
	res.FinalHeight = physics.Height(last.Position)

	res.Metrics = []Metric{
		{Name: "reached_target", Value: boolValue(res.Reached), Pass: res.Reached},
		// informational: did the car end up at target altitude
		{Name: "final_height", Value: res.FinalHeight, Pass: res.FinalHeight >= res.TargetHeight},
		{Name: "no_abort", Value: boolValue(!res.Aborted), Pass: !res.Aborted},
	}

	res.Passed = res.Reached && !res.Aborted
	switch {
	case res.Aborted:
		res.Reason = "guard aborted the run"
	case res.Reached:
		res.Reason = fmt.Sprintf("parked at target by step %d", res.FirstReachedStep)
	default:
		res.Reason = fmt.Sprintf("never reached target: final height %.4f below target height %.4f",
			res.FinalHeight, res.TargetHeight)
	}
	return res
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion harness
