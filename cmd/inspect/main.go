package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/parcae-systems/active-inference/go-agent/internal/eval"
	"github.com/parcae-systems/active-inference/go-agent/internal/signals"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trajectory database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/mountaincar.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := trajectory.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID     string  `json:"run_id"`
	Engine    string  `json:"engine"`
	Horizon   int     `json:"horizon"`
	Steps     int     `json:"steps"`
	Reached   bool    `json:"reached"`
	FinalPos  float64 `json:"final_position"`
	StartedAt string  `json:"started_at"`
}

func runListMode(store *trajectory.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}

	harness := eval.NewHarness(eval.DefaultConfig())
	rows := make([]listRow, 0, len(runs))
	for _, run := range runs {
		steps, err := store.Steps(run.RunID)
		if err != nil {
			return err
		}
		res := harness.Run(run, steps)
		rows = append(rows, listRow{
			RunID:     run.RunID,
			Engine:    run.Engine,
			Horizon:   run.Horizon,
			Steps:     len(steps),
			Reached:   res.Reached,
			FinalPos:  res.FinalPosition,
			StartedAt: run.StartedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s  %-18s  %7s  %5s  %7s  %10s  %s\n",
		"RUN", "ENGINE", "HORIZON", "STEPS", "REACHED", "FINAL_POS", "STARTED")
	for _, r := range rows {
		fmt.Printf("%-36s  %-18s  %7d  %5d  %7v  %10.4f  %s\n",
			r.RunID, r.Engine, r.Horizon, r.Steps, r.Reached, r.FinalPos, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailStep struct {
	Step        int                  `json:"step"`
	Action      float64              `json:"action"`
	Position    float64              `json:"position"`
	Velocity    float64              `json:"velocity"`
	Decision    string               `json:"decision"`
	Reason      string               `json:"reason,omitempty"`
	Diagnostics *signals.Diagnostics `json:"diagnostics,omitempty"`
}

type detailOut struct {
	Run    trajectory.RunRecord `json:"run"`
	Result eval.Result          `json:"result"`
	Steps  []detailStep         `json:"steps"`
}

func runDetailMode(store *trajectory.Store, runID string, jsonOut bool) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	steps, err := store.Steps(runID)
	if err != nil {
		return err
	}

	out := detailOut{
		Run:    run,
		Result: eval.NewHarness(eval.DefaultConfig()).Run(run, steps),
	}
	for _, s := range steps {
		d := detailStep{
			Step: s.Step, Action: s.Action,
			Position: s.Position, Velocity: s.Velocity,
			Decision: s.Decision, Reason: s.Reason,
		}
		if s.DiagnosticsJSON != "" {
			var diag signals.Diagnostics
			if err := json.Unmarshal([]byte(s.DiagnosticsJSON), &diag); err == nil {
				d.Diagnostics = &diag
			}
		}
		out.Steps = append(out.Steps, d)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("run %s\n", run.RunID)
	fmt.Printf("  engine=%s horizon=%d target=(%.3f, %.3f) start=(%.3f, %.3f)\n",
		run.Engine, run.Horizon, run.TargetPosition, run.TargetVelocity,
		run.InitialPosition, run.InitialVelocity)
	fmt.Printf("  %s\n\n", out.Result.Reason)

	fmt.Printf("%5s  %9s  %9s  %9s  %9s  %s\n", "STEP", "ACTION", "POS", "VEL", "HEIGHT", "DECISION")
	for _, s := range out.Steps {
		height := "-"
		if s.Diagnostics != nil {
			height = fmt.Sprintf("%9.4f", s.Diagnostics.Height)
		}
		fmt.Printf("%5d  %+9.4f  %9.4f  %9.4f  %9s  %s\n",
			s.Step, s.Action, s.Position, s.Velocity, height, s.Decision)
	}
	return nil
}

// #endregion detail-mode
