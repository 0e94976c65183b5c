package trajectory

import (
	"math"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "trajectory.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBeginRunAssignsID(t *testing.T) {
	s := newTestStore(t)

	run, err := s.BeginRun(RunRecord{
		Engine: "stub", Horizon: 20,
		TargetPosition: 0.5, InitialPosition: -0.5,
	})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if run.StartedAt.IsZero() {
		t.Fatal("expected a start timestamp")
	}

	got, err := s.GetRun(run.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Engine != "stub" || got.Horizon != 20 || got.TargetPosition != 0.5 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRecordAndReadSteps(t *testing.T) {
	s := newTestStore(t)
	run, err := s.BeginRun(RunRecord{Engine: "stub", Horizon: 3, InitialPosition: -0.5})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	records := []StepRecord{
		{Step: 1, Action: 0, Position: -0.5, Velocity: 0, Predicted: []float64{-0.5, -0.49, -0.47}, Decision: "continue"},
		{Step: 2, Action: 0.8, Position: -0.46, Velocity: 0.04, Predicted: []float64{-0.46, -0.41, -0.35}, Decision: "continue"},
		{Step: 3, Action: -0.2, Position: -0.44, Velocity: 0.02, Decision: "abort", Reason: "velocity runaway"},
	}
	for _, rec := range records {
		if err := s.RecordStep(run.RunID, rec); err != nil {
			t.Fatalf("RecordStep %d: %v", rec.Step, err)
		}
	}

	got, err := s.Steps(run.RunID)
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d steps, want 3", len(got))
	}
	for i, rec := range got {
		want := records[i]
		if rec.Step != want.Step || rec.Action != want.Action || rec.Decision != want.Decision {
			t.Fatalf("step %d mismatch: %+v vs %+v", i, rec, want)
		}
		if len(rec.Predicted) != len(want.Predicted) {
			t.Fatalf("step %d predicted length %d, want %d", i, len(rec.Predicted), len(want.Predicted))
		}
		for j := range rec.Predicted {
			if math.Abs(rec.Predicted[j]-want.Predicted[j]) > 0 {
				t.Fatalf("step %d predicted[%d] = %v, want %v", i, j, rec.Predicted[j], want.Predicted[j])
			}
		}
	}
	if got[2].Reason != "velocity runaway" {
		t.Fatalf("reason = %q", got[2].Reason)
	}
}

func TestDuplicateStepRejected(t *testing.T) {
	s := newTestStore(t)
	run, _ := s.BeginRun(RunRecord{Engine: "stub", Horizon: 3})

	if err := s.RecordStep(run.RunID, StepRecord{Step: 1, Decision: "continue"}); err != nil {
		t.Fatalf("first RecordStep: %v", err)
	}
	if err := s.RecordStep(run.RunID, StepRecord{Step: 1, Decision: "continue"}); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestListRunsMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := s.BeginRun(RunRecord{Engine: "stub", Horizon: 5}); err != nil {
			t.Fatalf("BeginRun %d: %v", i, err)
		}
	}
	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
}
