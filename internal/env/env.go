package env

import (
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region observation

// Observation is the full state emitted by the simulator. The environment
// is fully observable: no noise is added on read.
type Observation struct {
	Position float64
	Velocity float64
}

// #endregion observation

// #region environment

// Environment simulates the car on the landscape. It owns (position,
// velocity) exclusively; callers mutate it only through Step.
type Environment struct {
	params   physics.Params
	position float64
	velocity float64
}

// New creates an environment at the given initial state.
func New(params physics.Params, initialPosition, initialVelocity float64) *Environment {
	return &Environment{
		params:   params,
		position: initialPosition,
		velocity: initialVelocity,
	}
}

// #endregion environment

// #region step

// Step advances the simulation by one explicit-Euler step under the given
// action. The velocity update reads the pre-step position and velocity;
// the position update then uses the new velocity. That ordering is part of
// the dynamics, not an implementation detail.
func (e *Environment) Step(action float64) {
	e.velocity += physics.GravityForce(e.position) +
		e.params.FrictionForce(e.velocity) +
		e.params.EngineForce(action)
	e.position += e.velocity
}

// Observe returns the current state. No side effects.
func (e *Environment) Observe() Observation {
	return Observation{Position: e.position, Velocity: e.velocity}
}

// Reset places the environment back at the given state.
func (e *Environment) Reset(position, velocity float64) {
	e.position = position
	e.velocity = velocity
}

// Params returns the physics parameters the environment runs with.
func (e *Environment) Params() physics.Params {
	return e.params
}

// #endregion step
