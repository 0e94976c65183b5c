package physics

import (
	"math"
	"testing"
)

func TestEngineForceBounded(t *testing.T) {
	p := DefaultParams()
	for _, a := range []float64{-1e6, -100, -3, -0.5, 0, 0.5, 3, 100, 1e6} {
		f := p.EngineForce(a)
		if math.Abs(f) > p.EngineForceLimit {
			t.Errorf("EngineForce(%v) = %v exceeds limit %v", a, f, p.EngineForceLimit)
		}
	}
	// strictly inside the open interval for finite moderate actions
	for _, a := range []float64{-10, -1, 0, 1, 10} {
		f := p.EngineForce(a)
		if f <= -p.EngineForceLimit || f >= p.EngineForceLimit {
			t.Errorf("EngineForce(%v) = %v not strictly inside (+-%v)", a, f, p.EngineForceLimit)
		}
	}
}

func TestEngineForceMonotone(t *testing.T) {
	p := DefaultParams()
	prev := math.Inf(-1)
	for a := -5.0; a <= 5.0; a += 0.25 {
		f := p.EngineForce(a)
		if f <= prev {
			t.Fatalf("EngineForce not increasing at a=%v: %v <= %v", a, f, prev)
		}
		prev = f
	}
}

func TestFrictionForceLinear(t *testing.T) {
	p := DefaultParams()
	if got := p.FrictionForce(0); got != 0 {
		t.Fatalf("FrictionForce(0) = %v, want 0", got)
	}
	// f(v1+v2) == f(v1)+f(v2) for a linear map
	f1 := p.FrictionForce(0.3)
	f2 := p.FrictionForce(-1.1)
	sum := p.FrictionForce(0.3 - 1.1)
	if math.Abs(sum-(f1+f2)) > 1e-12 {
		t.Fatalf("FrictionForce not linear: %v vs %v", sum, f1+f2)
	}
	if p.FrictionForce(1.0) >= 0 {
		t.Fatal("friction should oppose positive velocity")
	}
}

func TestGravityForceContinuousAtOrigin(t *testing.T) {
	left := GravityForce(-1e-9)
	right := GravityForce(0)
	if math.Abs(left-right) > 1e-6 {
		t.Fatalf("GravityForce discontinuous at 0: left=%v right=%v", left, right)
	}
	if math.Abs(right-(-0.05)) > 1e-9 {
		t.Fatalf("GravityForce(0) = %v, want -0.05", right)
	}
}

func TestGravityForceZeroAtValley(t *testing.T) {
	if got := GravityForce(-0.5); math.Abs(got) > 1e-12 {
		t.Fatalf("GravityForce(-0.5) = %v, want 0", got)
	}
}

func TestHeightContinuousAtOrigin(t *testing.T) {
	left := Height(-1e-9)
	right := Height(0)
	if math.Abs(left-right) > 1e-6 {
		t.Fatalf("Height discontinuous at 0: left=%v right=%v", left, right)
	}
}

func TestHeightValleyBelowTarget(t *testing.T) {
	valley := Height(-0.5)
	target := Height(0.5)
	if valley >= target {
		t.Fatalf("valley height %v should be below target height %v", valley, target)
	}
}
