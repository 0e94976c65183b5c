package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/parcae-systems/active-inference/go-agent/internal/agent"
	"github.com/parcae-systems/active-inference/go-agent/internal/env"
	"github.com/parcae-systems/active-inference/go-agent/internal/eval"
	"github.com/parcae-systems/active-inference/go-agent/internal/guard"
	"github.com/parcae-systems/active-inference/go-agent/internal/infer"
	"github.com/parcae-systems/active-inference/go-agent/internal/signals"
	"github.com/parcae-systems/active-inference/go-agent/internal/trajectory"
)

// #region main

func main() {
	dbPath := flag.String("db", envOr("AGENT_DB", "mountaincar.db"), "path to trajectory database")
	engineAddr := flag.String("engine", envOr("PLANNER_ADDR", "localhost:50051"), "planner gRPC address, or 'stub'")
	steps := flag.Int("steps", 100, "number of control cycles to run")
	horizon := flag.Int("horizon", 20, "look-ahead horizon T")
	startPos := flag.Float64("start-pos", -0.5, "initial position")
	startVel := flag.Float64("start-vel", 0.0, "initial velocity")
	targetPos := flag.Float64("target-pos", 0.5, "target position")
	targetVel := flag.Float64("target-vel", 0.0, "target velocity")
	retries := flag.Int("retries", 2, "max plan retries per step")
	fallback := flag.String("fallback", string(infer.FallbackFail), "on exhausted retries: fail | zero_action")
	planTimeout := flag.Duration("plan-timeout", 30*time.Second, "per-step inference timeout")
	flag.Parse()

	store, err := trajectory.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	base, closeEngine, err := buildEngine(*engineAddr)
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}
	defer closeEngine()

	engine := infer.NewRetryingEngine(base, infer.RetryPolicy{
		MaxRetries: *retries,
		Fallback:   infer.FallbackMode(*fallback),
	})

	cfg := agent.DefaultConfig()
	cfg.Horizon = *horizon
	cfg.TargetPosition = *targetPos
	cfg.TargetVelocity = *targetVel

	a, err := agent.New(cfg, engine, *startPos, *startVel)
	if err != nil {
		log.Fatalf("failed to build agent: %v", err)
	}
	e := env.New(cfg.Physics, *startPos, *startVel)
	g := guard.NewGuard(guard.DefaultConfig())
	producer := signals.NewProducer(cfg.TargetPosition)

	run, err := store.BeginRun(trajectory.RunRecord{
		Engine:          *engineAddr,
		Horizon:         cfg.Horizon,
		TargetPosition:  cfg.TargetPosition,
		TargetVelocity:  cfg.TargetVelocity,
		InitialPosition: *startPos,
		InitialVelocity: *startVel,
	})
	if err != nil {
		log.Fatalf("failed to begin run: %v", err)
	}

	fmt.Printf("Mountain-car agent ready.\n")
	fmt.Printf("  DB: %s | Engine: %s | Run: %s\n", *dbPath, *engineAddr, run.RunID)

	for t := 1; t <= *steps; t++ {
		ctx, cancel := context.WithTimeout(context.Background(), *planTimeout)
		res, err := a.Step(ctx, e)
		cancel()
		if err != nil {
			log.Fatalf("[AGENT] step %d failed: %v", t, err)
		}

		decision := g.Evaluate(res.Observation)
		diag := producer.Produce(res.Observation)
		diagJSON, _ := json.Marshal(diag)

		if err := store.RecordStep(run.RunID, trajectory.StepRecord{
			Step:            t,
			Action:          res.Action,
			Position:        res.Observation.Position,
			Velocity:        res.Observation.Velocity,
			Predicted:       res.PredictedPositions,
			DiagnosticsJSON: string(diagJSON),
			Decision:        decision.Action,
			Reason:          decision.Reason,
		}); err != nil {
			log.Printf("[AGENT] record step %d: %v", t, err)
		}

		log.Printf("[AGENT] step %d action=%.4f pos=%.4f vel=%.4f height=%.4f decision=%s",
			t, res.Action, res.Observation.Position, res.Observation.Velocity, diag.Height, decision.Action)

		if decision.Vetoed {
			log.Printf("[AGENT] guard abort at step %d: %s", t, decision.Reason)
			break
		}
	}

	recorded, err := store.Steps(run.RunID)
	if err != nil {
		log.Fatalf("failed to read back steps: %v", err)
	}
	result := eval.NewHarness(eval.DefaultConfig()).Run(run, recorded)
	fmt.Printf("\nRun %s: passed=%v reached=%v final_pos=%.4f final_height=%.4f target_height=%.4f\n",
		run.RunID, result.Passed, result.Reached, result.FinalPosition, result.FinalHeight, result.TargetHeight)
	fmt.Printf("  %s\n", result.Reason)
}

// #endregion main

// #region engine

func buildEngine(addr string) (infer.Engine, func(), error) {
	if addr == "stub" {
		return infer.StubEngine{}, func() {}, nil
	}
	client, err := infer.NewClient(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connect planner at %s: %w", addr, err)
	}
	return client, func() { client.Close() }, nil
}

// #endregion engine

// #region helpers
func envOr(key, fallbackVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallbackVal
}

// #endregion helpers
