package replay

import (
	"os"
	"path/filepath"
	"testing"
)

const fixtureJSON = `{
  "description": "three pushes right",
  "physics": {"engine_force_limit": 0.004, "friction_coefficient": 0.1},
  "initial_state": {"position": -0.5, "velocity": 0},
  "actions": [1.0, 1.0, 1.0],
  "tolerance": 1e-9
}`

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(fixtureJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if f.Description != "three pushes right" {
		t.Fatalf("description = %q", f.Description)
	}
	if len(f.Actions) != 3 {
		t.Fatalf("actions = %v", f.Actions)
	}
	if f.Physics.Params().EngineForceLimit != 0.004 {
		t.Fatalf("physics = %+v", f.Physics)
	}
}

func TestLoadFixtureRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}
