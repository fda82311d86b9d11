package optimizations

import (
	"context"
	"errors"
	"testing"
	"time"

	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/supplychain"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const fencedTwoItemResponse = "```json\n" + `[
  {
    "stage": "Raw Materials",
    "recommendationType": "transport",
    "currentState": "diesel trucks from Nagpur",
    "suggestedImprovement": "shift long-haul legs to rail",
    "carbonReductionPercent": 22,
    "costImpactINR": -150000,
    "timeImpactDays": 2,
    "implementationDifficulty": "medium",
    "maharashtraSpecificNotes": "use the Nagpur-Mumbai rail corridor",
    "whyThisApproach": "rail emits far less per tonne-km"
  },
  {
    "stage": "Manufacturing",
    "recommendationType": "energy",
    "currentState": "grid electricity",
    "suggestedImprovement": "rooftop solar with net metering",
    "carbonReductionPercent": 35,
    "costImpactINR": 800000,
    "timeImpactDays": 0,
    "implementationDifficulty": "high",
    "maharashtraSpecificNotes": "MSEDCL net metering applies",
    "whyThisApproach": "manufacturing dominates the emission profile"
  }
]` + "\n```"

func seedStages(t *testing.T, nodeRepo supplychain.Repo, productID string) {
	t.Helper()
	now := time.Now().UTC()
	stages := []supplychain.Node{
		{ID: "n1", ProductID: productID, StageName: "Raw Materials", TransportMode: "truck", DistanceKm: 850, EnergySource: "diesel", CreatedAt: now, UpdatedAt: now},
		{ID: "n2", ProductID: productID, StageName: "Manufacturing", TransportMode: "rail", DistanceKm: 120, EnergySource: "grid", CreatedAt: now, UpdatedAt: now},
	}
	for _, node := range stages {
		if err := nodeRepo.Create(context.Background(), node); err != nil {
			t.Fatalf("seed node: %v", err)
		}
	}
}

func TestGetOrGenerateEndToEnd(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	svc := &Service{Repo: NewMemoryRepo(), Nodes: nodeRepo, Client: client}

	insights, err := svc.GetOrGenerate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}
	for _, insight := range insights {
		if insight.GeneratedBy != GeneratedByAI {
			t.Errorf("provenance %q, want %q", insight.GeneratedBy, GeneratedByAI)
		}
		if insight.ID == "" {
			t.Error("expected generated insight id")
		}
	}
	if insights[0].StageName != "Raw Materials" || insights[0].CarbonReductionPercent != 22 {
		t.Errorf("unexpected first insight: %+v", insights[0])
	}
	if insights[1].RecommendationType != RecommendationEnergy || insights[1].ImplementationDifficulty != DifficultyHigh {
		t.Errorf("unexpected second insight: %+v", insights[1])
	}
}

func TestGetOrGenerateIsIdempotent(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	svc := &Service{Repo: NewMemoryRepo(), Nodes: nodeRepo, Client: client}

	first, err := svc.GetOrGenerate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("first GetOrGenerate: %v", err)
	}
	second, err := svc.GetOrGenerate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("second GetOrGenerate: %v", err)
	}

	if client.calls != 1 {
		t.Errorf("provider called %d times, want 1", client.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("result sets differ: %d vs %d", len(first), len(second))
	}
	got := map[string]bool{}
	for _, insight := range second {
		got[insight.ID] = true
	}
	for _, insight := range first {
		if !got[insight.ID] {
			t.Errorf("insight %s missing from second fetch", insight.ID)
		}
	}
}

func TestGetOrGenerateWithoutStages(t *testing.T) {
	client := &fakeLLM{response: fencedTwoItemResponse}
	svc := &Service{Repo: NewMemoryRepo(), Nodes: supplychain.NewMemoryRepo(), Client: client}

	insights, err := svc.GetOrGenerate(context.Background(), "p-empty")
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("expected empty result, got %d", len(insights))
	}
	if client.calls != 0 {
		t.Errorf("provider should not be called without stages, got %d calls", client.calls)
	}
}

func TestRegenerateReplacesSet(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Client: client}

	first, err := svc.GetOrGenerate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	second, err := svc.Regenerate(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("provider called %d times, want 2", client.calls)
	}

	stored, err := repo.ListAIByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAIByProduct: %v", err)
	}
	if len(stored) != len(second) {
		t.Fatalf("stored %d insights, want %d", len(stored), len(second))
	}
	oldIDs := map[string]bool{}
	for _, insight := range first {
		oldIDs[insight.ID] = true
	}
	for _, insight := range stored {
		if oldIDs[insight.ID] {
			t.Errorf("old insight %s survived regeneration", insight.ID)
		}
	}
}

func TestProseResponseLeavesNoRecords(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: "As a language model, I recommend consulting a sustainability expert."}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Client: client}

	_, err := svc.GetOrGenerate(context.Background(), "p1")
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("expected ErrNoJSONArray, got %v", err)
	}

	stored, err := repo.ListAIByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAIByProduct: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("parse failure must leave zero AI records, got %d", len(stored))
	}
}

func TestRegenerateFailureLeavesZeroAIRecords(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Client: client}

	if _, err := svc.GetOrGenerate(context.Background(), "p1"); err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}

	client.err = errors.New("provider down")
	if _, err := svc.Regenerate(context.Background(), "p1"); err == nil {
		t.Fatal("expected regeneration failure")
	}

	stored, err := repo.ListAIByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAIByProduct: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("failed regeneration should leave zero AI records, got %d", len(stored))
	}
}

func TestGenerateDoesNotTouchManualInsights(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Client: client}

	manual, err := svc.Create(context.Background(), CreateInput{
		ProductID:          "p1",
		StageName:          "Packaging",
		RecommendationText: "switch to recycled cartons",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Regenerate(context.Background(), "p1"); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), manual.ID); err != nil {
		t.Errorf("manual insight must survive AI regeneration: %v", err)
	}
}

func TestGenerateForProductUsesSuppliedBreakdown(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	seedStages(t, nodeRepo, "p1")
	client := &fakeLLM{response: fencedTwoItemResponse}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo, Client: client}

	result := engine.Result{
		TotalEmission: 10,
		NodesBreakdown: []engine.StageBreakdown{
			{StageName: "Raw Materials", TotalEmission: 8, PercentageOfTotal: 80},
		},
	}
	if err := svc.GenerateForProduct(context.Background(), "p1", result); err != nil {
		t.Fatalf("GenerateForProduct: %v", err)
	}

	stored, err := repo.ListAIByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAIByProduct: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 stored insights, got %d", len(stored))
	}
}

func TestHeuristicGeneration(t *testing.T) {
	nodeRepo := supplychain.NewMemoryRepo()
	now := time.Now().UTC()
	nodes := []supplychain.Node{
		{ID: "n1", ProductID: "p1", StageName: "Distribution", TransportMode: "truck", DistanceKm: 500, TransportCost: 900, TransportTimeDays: 6, CreatedAt: now, UpdatedAt: now},
		{ID: "n2", ProductID: "p1", StageName: "Export", TransportMode: "ship", DistanceKm: 4000, CreatedAt: now, UpdatedAt: now},
	}
	for _, node := range nodes {
		if err := nodeRepo.Create(context.Background(), node); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Nodes: nodeRepo}

	insights, err := svc.GenerateHeuristic(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GenerateHeuristic: %v", err)
	}
	if len(insights) == 0 {
		t.Fatal("expected suggestions for the truck stage")
	}
	for _, insight := range insights {
		if insight.StageName != "Distribution" {
			t.Errorf("ship stage must be skipped, got suggestion for %q", insight.StageName)
		}
		if insight.RecommendationType != RecommendationTransport {
			t.Errorf("type %q, want transport", insight.RecommendationType)
		}
		if insight.GeneratedBy != GeneratedByManual {
			t.Errorf("heuristic insights are not AI-tagged, got %q", insight.GeneratedBy)
		}
	}

	// AI fetch must not see heuristic output.
	ai, err := repo.ListAIByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAIByProduct: %v", err)
	}
	if len(ai) != 0 {
		t.Errorf("heuristic insights leaked into the AI set: %d", len(ai))
	}
}
