package infer

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/parcae-systems/active-inference/go-agent/gen/inference"
	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
)

// #region client-struct
// Client wraps the gRPC connection to the remote planner service.
type Client struct {
	conn   *grpc.ClientConn
	client pb.PlannerClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the planner gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewPlannerClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.PlannerClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region plan
// Plan sends the prior window to the remote planner and validates the
// returned posterior summaries against the requested horizon.
func (c *Client) Plan(ctx context.Context, req PlanRequest) (Plan, error) {
	controls := make([]*pb.Gaussian, len(req.Controls))
	for i, g := range req.Controls {
		controls[i] = &pb.Gaussian{Mean: g.Mean, Variance: g.Variance}
	}
	goals := make([]*pb.StateGaussian, len(req.Goals))
	for i, g := range req.Goals {
		goals[i] = toProtoState(g)
	}

	resp, err := c.client.Plan(ctx, &pb.PlanRequest{
		Horizon:   int32(req.Horizon),
		PrevState: toProtoState(req.Prev),
		Controls:  controls,
		Goals:     goals,
		Physics: &pb.PhysicsParams{
			EngineForceLimit:    req.Physics.EngineForceLimit,
			FrictionCoefficient: req.Physics.FrictionCoefficient,
		},
	})
	if err != nil {
		return Plan{}, fmt.Errorf("plan rpc: %w", err)
	}

	plan := Plan{Controls: resp.ControlModes}
	plan.States = make([]belief.StateGaussian, len(resp.StateBeliefs))
	for i, s := range resp.StateBeliefs {
		plan.States[i], err = fromProtoState(s)
		if err != nil {
			return Plan{}, fmt.Errorf("state belief %d: %w", i, err)
		}
	}
	plan.NextPrev, err = fromProtoState(resp.NextPrev)
	if err != nil {
		return Plan{}, fmt.Errorf("next-prev statistic: %w", err)
	}

	if err := plan.Validate(req.Horizon); err != nil {
		return Plan{}, fmt.Errorf("malformed plan: %w", err)
	}
	return plan, nil
}

// #endregion plan

// #region conversions
func toProtoState(g belief.StateGaussian) *pb.StateGaussian {
	return &pb.StateGaussian{
		Mean: []float64{g.Mean[0], g.Mean[1]},
		Covariance: []float64{
			g.Cov[0][0], g.Cov[0][1],
			g.Cov[1][0], g.Cov[1][1],
		},
	}
}

func fromProtoState(s *pb.StateGaussian) (belief.StateGaussian, error) {
	if s == nil {
		return belief.StateGaussian{}, fmt.Errorf("missing state gaussian")
	}
	if len(s.Mean) != 2 || len(s.Covariance) != 4 {
		return belief.StateGaussian{}, fmt.Errorf("bad shape: %d means, %d covariance entries", len(s.Mean), len(s.Covariance))
	}
	return belief.StateGaussian{
		Mean: [2]float64{s.Mean[0], s.Mean[1]},
		Cov: [2][2]float64{
			{s.Covariance[0], s.Covariance[1]},
			{s.Covariance[2], s.Covariance[3]},
		},
	}, nil
}

// #endregion conversions
