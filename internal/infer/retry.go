package infer

import (
	"context"
	"fmt"
	"log"
)

// #region policy

// FallbackMode selects what happens once retries are exhausted.
type FallbackMode string

const (
	// FallbackFail propagates the engine error to the caller.
	FallbackFail FallbackMode = "fail"
	// FallbackZeroAction degrades to the neutral do-nothing plan.
	FallbackZeroAction FallbackMode = "zero_action"
)

// RetryPolicy bounds how many times a failed Plan call is retried and what
// to do when every attempt fails.
type RetryPolicy struct {
	MaxRetries int
	Fallback   FallbackMode
}

// DefaultRetryPolicy retries twice and then fails hard.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, Fallback: FallbackFail}
}

// #endregion policy

// #region engine

// RetryingEngine wraps an Engine with a bounded retry policy. Engine
// failure handling is a configuration choice: fail fast or degrade to the
// neutral plan.
type RetryingEngine struct {
	inner  Engine
	policy RetryPolicy
}

// NewRetryingEngine wraps inner with the given policy.
func NewRetryingEngine(inner Engine, policy RetryPolicy) *RetryingEngine {
	return &RetryingEngine{inner: inner, policy: policy}
}

// Plan calls the inner engine, retrying on failure up to the policy bound.
func (r *RetryingEngine) Plan(ctx context.Context, req PlanRequest) (Plan, error) {
	var lastErr error
	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Plan{}, err
		}
		plan, err := r.inner.Plan(ctx, req)
		if err == nil {
			return plan, nil
		}
		lastErr = err
		log.Printf("[ENGINE] plan attempt %d/%d failed: %v", attempt+1, r.policy.MaxRetries+1, err)
	}

	if r.policy.Fallback == FallbackZeroAction {
		log.Printf("[ENGINE] retries exhausted, degrading to zero-action plan")
		return NeutralPlan(req), nil
	}
	return Plan{}, fmt.Errorf("plan failed after %d attempts: %w", r.policy.MaxRetries+1, lastErr)
}

// #endregion engine
