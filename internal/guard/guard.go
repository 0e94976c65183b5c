package guard

import (
	"fmt"
	"math"

	"github.com/parcae-systems/active-inference/go-agent/internal/env"
)

// #region veto-type
// VetoType enumerates hard abort categories.
type VetoType string

const (
	VetoNonFinite       VetoType = "non_finite_state"
	VetoPositionRunaway VetoType = "position_runaway"
	VetoVelocityRunaway VetoType = "velocity_runaway"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal represents a detected abort condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region config
// Config holds the bounds a healthy run never leaves. The landscape's
// interesting region is roughly [-1.5, 1.5]; anything far outside it means
// the loop is mis-wired, not that the car is exploring.
type Config struct {
	MaxAbsPosition float64
	MaxAbsVelocity float64
}

// DefaultConfig returns bounds generous enough for any sane trajectory.
func DefaultConfig() Config {
	return Config{
		MaxAbsPosition: 2.0,
		MaxAbsVelocity: 1.0,
	}
}

// #endregion config

// #region decision
// Decision is the output of a guard evaluation.
type Decision struct {
	Action      string // "continue" | "abort"
	Reason      string
	Vetoed      bool
	VetoSignals []VetoSignal // non-empty if vetoed
}

// #endregion decision

// #region guard
// Guard checks each observation against divergence bounds.
type Guard struct {
	config Config
}

// NewGuard creates a guard with the given bounds.
func NewGuard(config Config) *Guard {
	return &Guard{config: config}
}

// Evaluate inspects an observation and decides whether the run may
// continue. Any veto is hard: a diverged loop produces garbage from then
// on, so the run aborts rather than records it.
func (g *Guard) Evaluate(obs env.Observation) Decision {
	var vetoes []VetoSignal

	if !isFinite(obs.Position) || !isFinite(obs.Velocity) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNonFinite,
			Reason: fmt.Sprintf("state (%v, %v) is not finite", obs.Position, obs.Velocity),
		})
	} else {
		if math.Abs(obs.Position) > g.config.MaxAbsPosition {
			vetoes = append(vetoes, VetoSignal{
				Type:   VetoPositionRunaway,
				Reason: fmt.Sprintf("position %v outside +-%v", obs.Position, g.config.MaxAbsPosition),
			})
		}
		if math.Abs(obs.Velocity) > g.config.MaxAbsVelocity {
			vetoes = append(vetoes, VetoSignal{
				Type:   VetoVelocityRunaway,
				Reason: fmt.Sprintf("velocity %v outside +-%v", obs.Velocity, g.config.MaxAbsVelocity),
			})
		}
	}

	if len(vetoes) > 0 {
		return Decision{
			Action:      "abort",
			Reason:      vetoes[0].Reason,
			Vetoed:      true,
			VetoSignals: vetoes,
		}
	}
	return Decision{Action: "continue", Reason: "within bounds"}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// #endregion guard
