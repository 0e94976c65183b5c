package physics

import "math"

// #region params

// Params holds the constants of the hand-written mountain landscape dynamics.
type Params struct {
	EngineForceLimit    float64 // saturation bound of the engine
	FrictionCoefficient float64 // linear friction against velocity
}

// DefaultParams returns the standard under-powered car parameters.
func DefaultParams() Params {
	return Params{
		EngineForceLimit:    0.004,
		FrictionCoefficient: 0.1,
	}
}

// #endregion params

// #region forces

// EngineForce maps an unbounded action to a saturated engine force.
// Strictly bounded in (-EngineForceLimit, +EngineForceLimit) and
// monotonically increasing in the action.
func (p Params) EngineForce(action float64) float64 {
	return p.EngineForceLimit * math.Tanh(action)
}

// FrictionForce opposes motion linearly; zero at rest.
func (p Params) FrictionForce(velocity float64) float64 {
	return -p.FrictionCoefficient * velocity
}

// GravityForce is the tangential gravity component along the landscape.
// Piecewise in position with both branches meeting at -0.05 at the origin.
// Zero at the valley equilibrium position -0.5.
func GravityForce(position float64) float64 {
	if position < 0 {
		return 0.05 * (-2*position - 1)
	}
	s := 1 + 5*position*position
	return 0.05 * (-math.Pow(s, -0.5) + 5*position*position*math.Pow(s, -1.5) - math.Pow(position, 4)/16)
}

// #endregion forces

// #region height

// Height is the landscape elevation, the antiderivative of the negated
// gravity force, continuous at the origin. Used for plotting and for
// comparing how far up the hill a trajectory got; the control loop itself
// never reads it.
func Height(position float64) float64 {
	if position < 0 {
		return 0.05 * (position*position + position)
	}
	return 0.05 * (position/math.Sqrt(1+5*position*position) + math.Pow(position, 4)/16)
}

// #endregion height
