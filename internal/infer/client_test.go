package infer

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"

	pb "github.com/parcae-systems/active-inference/go-agent/gen/inference"
	"github.com/parcae-systems/active-inference/go-agent/internal/belief"
	"github.com/parcae-systems/active-inference/go-agent/internal/physics"
)

// #region mock
type mockPlannerService struct {
	pb.PlannerClient

	planResp *pb.PlanResponse
	planErr  error
	lastReq  *pb.PlanRequest
}

func (m *mockPlannerService) Plan(_ context.Context, req *pb.PlanRequest, _ ...grpc.CallOption) (*pb.PlanResponse, error) {
	m.lastReq = req
	return m.planResp, m.planErr
}

// #endregion mock

func testRequest(t *testing.T, horizon int) PlanRequest {
	t.Helper()
	w, err := belief.NewWindow(horizon, 0.5, 0.0, belief.FixedState(-0.5, 0))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return NewPlanRequest(w, physics.DefaultParams())
}

func protoState(pos, vel float64) *pb.StateGaussian {
	return &pb.StateGaussian{
		Mean:       []float64{pos, vel},
		Covariance: []float64{belief.Certain, 0, 0, belief.Certain},
	}
}

func TestClientPlanConvertsResponse(t *testing.T) {
	mock := &mockPlannerService{
		planResp: &pb.PlanResponse{
			ControlModes: []float64{0.1, 0.2, 0.3},
			StateBeliefs: []*pb.StateGaussian{
				protoState(-0.5, 0),
				protoState(-0.45, 0.05),
				protoState(-0.38, 0.07),
			},
			NextPrev: protoState(-0.45, 0.05),
		},
	}
	c := NewClientWithService(mock)

	plan, err := c.Plan(context.Background(), testRequest(t, 3))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Controls) != 3 || plan.Controls[1] != 0.2 {
		t.Fatalf("controls = %v", plan.Controls)
	}
	if plan.States[2].Mean != [2]float64{-0.38, 0.07} {
		t.Fatalf("state 2 mean = %v", plan.States[2].Mean)
	}
	if plan.NextPrev.Mean != [2]float64{-0.45, 0.05} {
		t.Fatalf("next-prev mean = %v", plan.NextPrev.Mean)
	}

	// request carried the full window and physics constants
	if mock.lastReq.Horizon != 3 {
		t.Fatalf("request horizon = %d", mock.lastReq.Horizon)
	}
	if len(mock.lastReq.Controls) != 3 || len(mock.lastReq.Goals) != 3 {
		t.Fatalf("request sequences %d/%d", len(mock.lastReq.Controls), len(mock.lastReq.Goals))
	}
	if mock.lastReq.Physics.GetEngineForceLimit() != 0.004 {
		t.Fatalf("physics params not forwarded: %+v", mock.lastReq.Physics)
	}
	if last := mock.lastReq.Goals[2]; last.Mean[0] != 0.5 || last.Covariance[0] != belief.Certain {
		t.Fatalf("terminal goal not pinned in request: %+v", last)
	}
}

func TestClientPlanPropagatesRPCError(t *testing.T) {
	mock := &mockPlannerService{planErr: errors.New("engine diverged")}
	c := NewClientWithService(mock)

	if _, err := c.Plan(context.Background(), testRequest(t, 3)); err == nil {
		t.Fatal("expected error")
	}
}

func TestClientPlanRejectsWrongHorizon(t *testing.T) {
	mock := &mockPlannerService{
		planResp: &pb.PlanResponse{
			ControlModes: []float64{0.1}, // engine answered for horizon 1
			StateBeliefs: []*pb.StateGaussian{protoState(-0.5, 0)},
			NextPrev:     protoState(-0.5, 0),
		},
	}
	c := NewClientWithService(mock)

	if _, err := c.Plan(context.Background(), testRequest(t, 3)); err == nil {
		t.Fatal("expected malformed-plan error")
	}
}

func TestClientPlanRejectsMissingNextPrev(t *testing.T) {
	mock := &mockPlannerService{
		planResp: &pb.PlanResponse{
			ControlModes: []float64{0, 0},
			StateBeliefs: []*pb.StateGaussian{protoState(-0.5, 0), protoState(-0.5, 0)},
		},
	}
	c := NewClientWithService(mock)

	if _, err := c.Plan(context.Background(), testRequest(t, 2)); err == nil {
		t.Fatal("expected error for missing next-prev")
	}
}

func TestClientPlanRejectsBadShape(t *testing.T) {
	mock := &mockPlannerService{
		planResp: &pb.PlanResponse{
			ControlModes: []float64{0, 0},
			StateBeliefs: []*pb.StateGaussian{
				{Mean: []float64{1}, Covariance: []float64{1}}, // not 2-d
				protoState(-0.5, 0),
			},
			NextPrev: protoState(-0.5, 0),
		},
	}
	c := NewClientWithService(mock)

	if _, err := c.Plan(context.Background(), testRequest(t, 2)); err == nil {
		t.Fatal("expected shape error")
	}
}
