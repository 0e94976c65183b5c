package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a recorded
// action sequence plus the trajectory it is expected to reproduce.
type Fixture struct {
	Description string         `json:"description"`
	Physics     FixturePhysics `json:"physics"`
	Initial     FixtureState   `json:"initial_state"`
	Actions     []float64      `json:"actions"`
	Expected    []FixtureState `json:"expected_trajectory,omitempty"`
	Tolerance   float64        `json:"tolerance,omitempty"`
}

// FixturePhysics mirrors physics.Params with JSON tags.
type FixturePhysics struct {
	EngineForceLimit    float64 `json:"engine_force_limit"`
	FrictionCoefficient float64 `json:"friction_coefficient"`
}

// Params converts to the physics parameter struct.
func (p FixturePhysics) Params() physics.Params {
	return physics.Params{
		EngineForceLimit:    p.EngineForceLimit,
		FrictionCoefficient: p.FrictionCoefficient,
	}
}

// FixtureState is a (position, velocity) pair.
type FixtureState struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

// #endregion fixture-types

// #region load

// DefaultTolerance is used when a fixture does not set one. Replay is
// bit-for-bit deterministic, so the tolerance only absorbs fixtures
// written with rounded literals.
const DefaultTolerance = 1e-9

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Validate checks the fixture's internal consistency.
func (f Fixture) Validate() error {
	if len(f.Actions) == 0 {
		return fmt.Errorf("no actions")
	}
	if f.Physics.EngineForceLimit <= 0 || f.Physics.FrictionCoefficient < 0 {
		return fmt.Errorf("bad physics params: %+v", f.Physics)
	}
	if len(f.Expected) > 0 && len(f.Expected) != len(f.Actions) {
		return fmt.Errorf("%d expected states for %d actions", len(f.Expected), len(f.Actions))
	}
	return nil
}

// #endregion load
