package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
	"github.com/parcae-systems/active-inference/go-agent/internal/replay"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trajectory database (DB mode)")
	runID := flag.String("run", "", "run ID to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	tolerance := flag.Float64("tolerance", 0, "comparison tolerance (0 = default)")
	verbose := flag.Bool("v", false, "print every step, not just mismatches")
	flag.Parse()

	fixtureMode := *fixturePath != ""
	dbMode := *dbPath != "" && *runID != ""
	if fixtureMode == dbMode {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/mountaincar.db --run RUN_ID")
		os.Exit(2)
	}

	var exitCode int
	if fixtureMode {
		exitCode = runFixtureMode(*fixturePath, *verbose)
	} else {
		exitCode = runDBMode(*dbPath, *runID, *tolerance, *verbose)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string, verbose bool) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	outcomes, summary := replay.Replay(f)
	printOutcomes(outcomes, verbose)
	return printSummary(f.Description, summary)
}

// #endregion fixture-mode

// #region db-mode

func runDBMode(dbPath, runID string, tolerance float64, verbose bool) int {
	store, err := trajectory.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	run, err := store.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get run: %v\n", err)
		return 2
	}
	steps, err := store.Steps(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get steps: %v\n", err)
		return 2
	}
	if len(steps) == 0 {
		fmt.Fprintf(os.Stderr, "run %s has no steps\n", runID)
		return 2
	}

	outcomes, summary := replay.ReplayRun(run, steps, physics.DefaultParams(), tolerance)
	printOutcomes(outcomes, verbose)
	return printSummary(fmt.Sprintf("run %s", runID), summary)
}

// #endregion db-mode

// #region output

func printOutcomes(outcomes []replay.StepOutcome, verbose bool) {
	for _, o := range outcomes {
		if !verbose && o.Match {
			continue
		}
		status := "ok"
		if !o.Match {
			status = "MISMATCH"
		}
		fmt.Printf("step %4d  action=%+.4f  pos=%.6f vel=%.6f  [%s]\n",
			o.Step, o.Action, o.Observation.Position, o.Observation.Velocity, status)
		if o.Expected != nil && !o.Match {
			fmt.Printf("           expected pos=%.6f vel=%.6f\n", o.Expected.Position, o.Expected.Velocity)
		}
	}
}

func printSummary(label string, summary replay.Summary) int {
	fmt.Printf("\n%s: %d steps, %d matched, %d mismatched, final pos=%.6f vel=%.6f\n",
		label, summary.TotalSteps, summary.Matches, summary.Mismatches,
		summary.Final.Position, summary.Final.Velocity)
	if !summary.Passed {
		fmt.Println("REPLAY FAILED")
		return 1
	}
	fmt.Println("replay ok")
	return 0
}

// #endregion output
