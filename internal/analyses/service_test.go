package analyses

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/products"
	"carbonchain-backend/internal/supplychain"
)

type fakeEngine struct {
	result engine.Result
	err    error
	calls  int
}

func (f *fakeEngine) CalculateTotal(ctx context.Context, nodes []engine.NodePayload) (engine.Result, error) {
	f.calls++
	if f.err != nil {
		return engine.Result{}, f.err
	}
	return f.result, nil
}

type fakeOptimizer struct {
	done chan string
}

func (f *fakeOptimizer) GenerateForProduct(ctx context.Context, productID string, result engine.Result) error {
	f.done <- productID
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCarbonEfficiencyScore(t *testing.T) {
	// Baseline is 10 tCO2e per stage.
	if got := carbonEfficiencyScore(10, 2); !almostEqual(got, 50) {
		t.Errorf("got %v, want 50", got)
	}
	if got := carbonEfficiencyScore(0, 3); !almostEqual(got, 100) {
		t.Errorf("got %v, want 100", got)
	}
	if got := carbonEfficiencyScore(500, 2); got != 0 {
		t.Errorf("score should floor at 0, got %v", got)
	}
}

func TestCostEfficiencyScore(t *testing.T) {
	// 2.5 per km against a baseline of 5 per km.
	if got := costEfficiencyScore(250, 100); !almostEqual(got, 50) {
		t.Errorf("got %v, want 50", got)
	}
	if got := costEfficiencyScore(0, 0); !almostEqual(got, 100) {
		t.Errorf("zero distance should score 100, got %v", got)
	}
	if got := costEfficiencyScore(10000, 100); got != 0 {
		t.Errorf("score should floor at 0, got %v", got)
	}
}

func TestTimeEfficiencyScore(t *testing.T) {
	// 15 days average against a baseline of 30 days.
	if got := timeEfficiencyScore(30, 2); !almostEqual(got, 50) {
		t.Errorf("got %v, want 50", got)
	}
	if got := timeEfficiencyScore(0, 2); !almostEqual(got, 100) {
		t.Errorf("got %v, want 100", got)
	}
}

func TestNetZeroAlignment(t *testing.T) {
	if got := netZeroAlignment(25, 100); !almostEqual(got, 75) {
		t.Errorf("got %v, want 75", got)
	}
	if got := netZeroAlignment(200, 100); got != 0 {
		t.Errorf("overshoot should floor at 0, got %v", got)
	}
	if got := netZeroAlignment(10, 0); got != 0 {
		t.Errorf("missing target should score 0, got %v", got)
	}
}

func seedProductWithStages(t *testing.T, productRepo products.Repo, nodeRepo supplychain.Repo) string {
	t.Helper()
	now := time.Now().UTC()
	product := products.Product{
		ID:                  "p1",
		CompanyID:           "c1",
		Name:                "Steel Beams",
		YearlyNetZeroTarget: 100,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := productRepo.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	stages := []supplychain.Node{
		{ID: "n1", ProductID: "p1", StageName: "Raw Materials", TransportMode: supplychain.TransportTruck, DistanceKm: 100, TransportCost: 250, TransportTimeDays: 10, CreatedAt: now, UpdatedAt: now},
		{ID: "n2", ProductID: "p1", StageName: "Manufacturing", TransportMode: supplychain.TransportRail, DistanceKm: 0, TransportCost: 0, TransportTimeDays: 20, CreatedAt: now, UpdatedAt: now},
	}
	for _, node := range stages {
		if err := nodeRepo.Create(context.Background(), node); err != nil {
			t.Fatalf("seed node: %v", err)
		}
	}
	return product.ID
}

func TestRunPersistsResultAndUpdatesProduct(t *testing.T) {
	productRepo := products.NewMemoryRepo()
	nodeRepo := supplychain.NewMemoryRepo()
	productID := seedProductWithStages(t, productRepo, nodeRepo)

	eng := &fakeEngine{result: engine.Result{
		TotalEmission:        10,
		HighestEmissionStage: "Raw Materials",
		NodesBreakdown: []engine.StageBreakdown{
			{StageName: "Raw Materials", TotalEmission: 8, PercentageOfTotal: 80},
			{StageName: "Manufacturing", TotalEmission: 2, PercentageOfTotal: 20},
		},
	}}
	svc := &Service{Repo: NewMemoryRepo(), Nodes: nodeRepo, Products: productRepo, Engine: eng}

	out, err := svc.Run(context.Background(), productID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !almostEqual(out.TotalEmission, 10) {
		t.Errorf("total emission %v, want 10", out.TotalEmission)
	}
	if !almostEqual(out.CarbonEfficiencyScore, 50) {
		t.Errorf("carbon score %v, want 50", out.CarbonEfficiencyScore)
	}
	if !almostEqual(out.CostEfficiencyScore, 50) {
		t.Errorf("cost score %v, want 50", out.CostEfficiencyScore)
	}
	if !almostEqual(out.TimeEfficiencyScore, 50) {
		t.Errorf("time score %v, want 50", out.TimeEfficiencyScore)
	}
	if !almostEqual(out.NetZeroAlignmentPercentage, 90) {
		t.Errorf("alignment %v, want 90", out.NetZeroAlignmentPercentage)
	}
	if !almostEqual(out.TotalCost, 250) || !almostEqual(out.TotalTime, 30) {
		t.Errorf("aggregates cost=%v time=%v, want 250/30", out.TotalCost, out.TotalTime)
	}

	latest, err := svc.Latest(context.Background(), productID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != out.ID {
		t.Errorf("latest analysis %q, want %q", latest.ID, out.ID)
	}

	product, err := productRepo.GetByID(context.Background(), productID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !almostEqual(product.CurrentYearEmission, 10) {
		t.Errorf("current year emission %v, want 10", product.CurrentYearEmission)
	}
	if product.CarbonEfficiencyScore == nil || !almostEqual(*product.CarbonEfficiencyScore, 50) {
		t.Errorf("carbon efficiency score not stored on product: %+v", product.CarbonEfficiencyScore)
	}
}

func TestRunWithoutStages(t *testing.T) {
	productRepo := products.NewMemoryRepo()
	svc := &Service{Repo: NewMemoryRepo(), Nodes: supplychain.NewMemoryRepo(), Products: productRepo, Engine: &fakeEngine{}}

	_, err := svc.Run(context.Background(), "p-missing")
	if !errors.Is(err, ErrNoStages) {
		t.Fatalf("expected ErrNoStages, got %v", err)
	}
}

func TestRunSurfacesEngineFailure(t *testing.T) {
	productRepo := products.NewMemoryRepo()
	nodeRepo := supplychain.NewMemoryRepo()
	productID := seedProductWithStages(t, productRepo, nodeRepo)

	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Products: productRepo, Engine: &fakeEngine{err: engine.ErrUnavailable}}

	_, err := svc.Run(context.Background(), productID)
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Fatalf("expected engine.ErrUnavailable, got %v", err)
	}
	if _, err := repo.GetLatestByProduct(context.Background(), productID); !errors.Is(err, ErrNotFound) {
		t.Errorf("no result should be stored on engine failure, got %v", err)
	}
}

func TestRunTriggersOptimizer(t *testing.T) {
	productRepo := products.NewMemoryRepo()
	nodeRepo := supplychain.NewMemoryRepo()
	productID := seedProductWithStages(t, productRepo, nodeRepo)

	opt := &fakeOptimizer{done: make(chan string, 1)}
	svc := &Service{Repo: NewMemoryRepo(), Nodes: nodeRepo, Products: productRepo, Engine: &fakeEngine{result: engine.Result{TotalEmission: 5}}, Optimizer: opt}

	if _, err := svc.Run(context.Background(), productID); err != nil {
		t.Fatalf("Run: %v", err)
	}

	select {
	case got := <-opt.done:
		if got != productID {
			t.Errorf("optimizer called with %q, want %q", got, productID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("optimizer was not triggered")
	}
}

func TestLatestWithoutAnalyses(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if _, err := svc.Latest(context.Background(), "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
