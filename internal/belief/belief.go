package belief

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// #region constants

// Variance magnitudes standing in for "known exactly" and "know nothing".
// Only their separation by many orders of magnitude matters; the exact
// values are a tuning choice.
const (
	Uninformative = 1e12
	Certain       = 1e-12
)

// #endregion constants

// #region gaussian

// Gaussian is a scalar belief.
type Gaussian struct {
	Mean     float64
	Variance float64
}

// Fixed returns a belief clamped to a known value.
func Fixed(mean float64) Gaussian {
	return Gaussian{Mean: mean, Variance: Certain}
}

// Vague returns a zero-mean uninformative belief.
func Vague() Gaussian {
	return Gaussian{Mean: 0, Variance: Uninformative}
}

// #endregion gaussian

// #region state-gaussian

// StateGaussian is a belief over the 2-d state (position, velocity).
type StateGaussian struct {
	Mean [2]float64
	Cov  [2][2]float64
}

// FixedState returns a state belief clamped to a known (position, velocity).
func FixedState(position, velocity float64) StateGaussian {
	return StateGaussian{
		Mean: [2]float64{position, velocity},
		Cov:  [2][2]float64{{Certain, 0}, {0, Certain}},
	}
}

// VagueState returns a zero-mean uninformative state belief.
func VagueState() StateGaussian {
	return StateGaussian{
		Cov: [2][2]float64{{Uninformative, 0}, {0, Uninformative}},
	}
}

// Validate rejects non-finite or non-positive-definite covariances.
func (g StateGaussian) Validate() error {
	for _, m := range g.Mean {
		if !isFinite(m) {
			return fmt.Errorf("non-finite mean %v", g.Mean)
		}
	}
	for i := range g.Cov {
		for j := range g.Cov[i] {
			if !isFinite(g.Cov[i][j]) {
				return fmt.Errorf("non-finite covariance %v", g.Cov)
			}
		}
	}
	if d := math.Abs(g.Cov[0][1] - g.Cov[1][0]); d > 1e-9*(1+math.Abs(g.Cov[0][1])) {
		return fmt.Errorf("covariance not symmetric: %v", g.Cov)
	}
	sym := mat.NewSymDense(2, []float64{g.Cov[0][0], g.Cov[0][1], g.Cov[0][1], g.Cov[1][1]})
	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return fmt.Errorf("covariance not positive definite: %v", g.Cov)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// #endregion state-gaussian

// #region window

// Window is the agent's receding-horizon prior state: T control priors,
// T goal priors, and one previous-state prior. The horizon length is fixed
// for the lifetime of the window; the final goal slot always carries the
// target with Certain variance.
type Window struct {
	horizon  int
	target   [2]float64
	controls []Gaussian
	goals    []StateGaussian
	prev     StateGaussian
}

// NewWindow builds a fresh window: every control prior vague, every goal
// prior vague except the terminal slot pinned to the target.
func NewWindow(horizon int, targetPosition, targetVelocity float64, initial StateGaussian) (*Window, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be >= 1, got %d", horizon)
	}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial state prior: %w", err)
	}

	w := &Window{
		horizon:  horizon,
		target:   [2]float64{targetPosition, targetVelocity},
		controls: make([]Gaussian, horizon),
		goals:    make([]StateGaussian, horizon),
		prev:     initial,
	}
	for i := 0; i < horizon; i++ {
		w.controls[i] = Vague()
		w.goals[i] = VagueState()
	}
	w.goals[horizon-1] = FixedState(targetPosition, targetVelocity)
	return w, nil
}

// Horizon returns the fixed look-ahead length T.
func (w *Window) Horizon() int { return w.horizon }

// Target returns the fixed goal state (position, velocity).
func (w *Window) Target() [2]float64 { return w.target }

// Prev returns the previous-state prior.
func (w *Window) Prev() StateGaussian { return w.prev }

// Controls returns a copy of the control-prior sequence.
func (w *Window) Controls() []Gaussian {
	out := make([]Gaussian, len(w.controls))
	copy(out, w.controls)
	return out
}

// Goals returns a copy of the goal-prior sequence.
func (w *Window) Goals() []StateGaussian {
	out := make([]StateGaussian, len(w.goals))
	copy(out, w.goals)
	return out
}

// #endregion window

// #region clamps

// ClampObservation pins the offset-0 goal prior to the observed state.
// Once observed, the state is treated as certain.
func (w *Window) ClampObservation(position, velocity float64) {
	w.goals[0] = FixedState(position, velocity)
}

// ClampAction pins the offset-0 control prior to the executed action.
// Once performed, the action is no longer a random variable.
func (w *Window) ClampAction(action float64) {
	w.controls[0] = Fixed(action)
}

// #endregion clamps

// #region slide

// Slide shifts both prior sequences left by one slot, dropping the consumed
// offset-0 entries. The fresh terminal control slot is vague; the fresh
// terminal goal slot is re-pinned to the target. The previous-state prior
// is replaced by next, the caller's re-centered belief about "where am I
// now".
func (w *Window) Slide(next StateGaussian) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("next previous-state prior: %w", err)
	}

	copy(w.controls, w.controls[1:])
	w.controls[w.horizon-1] = Vague()

	copy(w.goals, w.goals[1:])
	w.goals[w.horizon-1] = FixedState(w.target[0], w.target[1])

	w.prev = next
	return nil
}

// #endregion slide
