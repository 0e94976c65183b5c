package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trajectory database")
	runID := flag.String("run", "", "run ID to plot")
	outDir := flag.String("out", "plots", "output directory for PNGs")
	flag.Parse()

	if *dbPath == "" || *runID == "" {
		fmt.Fprintln(os.Stderr, "usage: plot --db path/to/mountaincar.db --run RUN_ID [--out dir]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region plots

func run(dbPath, runID, outDir string) error {
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

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ts := make([]float64, len(steps))
	positions := make([]float64, len(steps))
	velocities := make([]float64, len(steps))
	actions := make([]float64, len(steps))
	for i, s := range steps {
		ts[i] = float64(s.Step)
		positions[i] = s.Position
		velocities[i] = s.Velocity
		actions[i] = s.Action
	}

	if err := saveLandscapePlot(filepath.Join(outDir, "landscape.png"), rec, positions); err != nil {
		return err
	}
	if err := saveLinePlot(filepath.Join(outDir, "position.png"),
		"Car Position", "step", "position", ts, positions); err != nil {
		return err
	}
	if err := saveLinePlot(filepath.Join(outDir, "velocity.png"),
		"Car Velocity", "step", "velocity", ts, velocities); err != nil {
		return err
	}
	if err := saveLinePlot(filepath.Join(outDir, "action.png"),
		"Executed Action", "step", "action", ts, actions); err != nil {
		return err
	}

	fmt.Printf("wrote 4 plots for run %s to %s\n", runID, outDir)
	return nil
}

// saveLandscapePlot draws the hill profile with the trajectory overlaid at
// landscape height, plus the target marker.
func saveLandscapePlot(path string, rec trajectory.RunRecord, positions []float64) error {
	p := plot.New()
	p.Title.Text = "Mountain Landscape"
	p.X.Label.Text = "position"
	p.Y.Label.Text = "height"

	// hill profile
	const samples = 400
	lo, hi := -1.5, 1.5
	profile := make(plotter.XYs, samples)
	for i := range profile {
		x := lo + (hi-lo)*float64(i)/float64(samples-1)
		profile[i].X = x
		profile[i].Y = physics.Height(x)
	}
	hill, err := plotter.NewLine(profile)
	if err != nil {
		return fmt.Errorf("hill line: %w", err)
	}
	p.Add(hill)
	p.Legend.Add("landscape", hill)

	// trajectory projected onto the hill
	traj := make(plotter.XYs, len(positions))
	for i, x := range positions {
		traj[i].X = x
		traj[i].Y = physics.Height(x)
	}
	points, err := plotter.NewScatter(traj)
	if err != nil {
		return fmt.Errorf("trajectory scatter: %w", err)
	}
	p.Add(points)
	p.Legend.Add("trajectory", points)

	target := plotter.XYs{{X: rec.TargetPosition, Y: physics.Height(rec.TargetPosition)}}
	targetPt, err := plotter.NewScatter(target)
	if err != nil {
		return fmt.Errorf("target scatter: %w", err)
	}
	targetPt.Radius = vg.Points(4)
	p.Add(targetPt)
	p.Legend.Add("target", targetPt)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func saveLinePlot(path, title, xlabel, ylabel string, xs, ys []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// #endregion plots
