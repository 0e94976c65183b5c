package signals

import (
	"math"

	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region diagnostics

// Diagnostics are derived per-step scalars, stored with each step record
// and shown by the inspect tool. Unit car mass is assumed throughout.
type Diagnostics struct {
	Height           float64 `json:"height"`
	PotentialEnergy  float64 `json:"potential_energy"`
	KineticEnergy    float64 `json:"kinetic_energy"`
	TotalEnergy      float64 `json:"total_energy"`
	DistanceToTarget float64 `json:"distance_to_target"`
	Speed            float64 `json:"speed"`
}

// #endregion diagnostics

// #region producer

// Producer computes diagnostics from raw observations.
type Producer struct {
	targetPosition float64
}

// NewProducer creates a producer for the given target position.
func NewProducer(targetPosition float64) *Producer {
	return &Producer{targetPosition: targetPosition}
}

// Produce computes all diagnostics for one observation.
func (p *Producer) Produce(obs env.Observation) Diagnostics {
	h := physics.Height(obs.Position)
	ke := obs.Velocity * obs.Velocity / 2
	return Diagnostics{
		Height:           h,
		PotentialEnergy:  h,
		KineticEnergy:    ke,
		TotalEnergy:      h + ke,
		DistanceToTarget: math.Abs(obs.Position - p.targetPosition),
		Speed:            math.Abs(obs.Velocity),
	}
}

// #endregion producer
