package signals

import (
	"math"
	"testing"

	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

func TestProduceAtRestAtValley(t *testing.T) {
	p := NewProducer(0.5)
	d := p.Produce(env.Observation{Position: -0.5, Velocity: 0})

	if d.KineticEnergy != 0 || d.Speed != 0 {
		t.Fatalf("expected zero kinetic energy at rest: %+v", d)
	}
	if math.Abs(d.Height-physics.Height(-0.5)) > 1e-15 {
		t.Fatalf("height = %v", d.Height)
	}
	if math.Abs(d.DistanceToTarget-1.0) > 1e-15 {
		t.Fatalf("distance = %v, want 1.0", d.DistanceToTarget)
	}
}

func TestTotalEnergyIsSum(t *testing.T) {
	p := NewProducer(0.5)
	d := p.Produce(env.Observation{Position: 0.2, Velocity: -0.3})

	if math.Abs(d.TotalEnergy-(d.PotentialEnergy+d.KineticEnergy)) > 1e-15 {
		t.Fatalf("total %v != pe %v + ke %v", d.TotalEnergy, d.PotentialEnergy, d.KineticEnergy)
	}
	if d.KineticEnergy != 0.045 {
		t.Fatalf("ke = %v, want 0.045", d.KineticEnergy)
	}
	if d.Speed != 0.3 {
		t.Fatalf("speed = %v", d.Speed)
	}
}
