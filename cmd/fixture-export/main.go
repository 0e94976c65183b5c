package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
	"github.com/parcae-systems/active-inference/go-agent/internal/replay"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trajectory database")
	runID := flag.String("run", "", "run ID to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *runID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --run RUN_ID --out path/to/fixture.json")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, runID, outPath string) error {
	store, err := trajectory.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	rec, err := store.GetRun(runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	steps, err := store.Steps(runID)
	if err != nil {
		return fmt.Errorf("get steps: %w", err)
	}
	if len(steps) == 0 {
		return fmt.Errorf("run %s has no steps", runID)
	}

	params := physics.DefaultParams()
	fixture := replay.Fixture{
		Description: fmt.Sprintf("exported from run %s (engine %s)", rec.RunID, rec.Engine),
		Physics: replay.FixturePhysics{
			EngineForceLimit:    params.EngineForceLimit,
			FrictionCoefficient: params.FrictionCoefficient,
		},
		Initial:   replay.FixtureState{Position: rec.InitialPosition, Velocity: rec.InitialVelocity},
		Tolerance: replay.DefaultTolerance,
	}
	for _, s := range steps {
		fixture.Actions = append(fixture.Actions, s.Action)
		fixture.Expected = append(fixture.Expected, replay.FixtureState{
			Position: s.Position,
			Velocity: s.Velocity,
		})
	}

	if err := fixture.Validate(); err != nil {
		return fmt.Errorf("exported fixture invalid: %w", err)
	}

	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("exported %d steps from run %s to %s\n", len(steps), runID, outPath)
	return nil
}

// #endregion export
