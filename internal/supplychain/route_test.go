package supplychain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
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

func TestBuildRoutePromptIncludesInfrastructure(t *testing.T) {
	prompt := buildRoutePrompt("Mumbai", "Nashik", maharashtraCities["Mumbai"], maharashtraCities["Nashik"])

	for _, want := range []string{
		"From: Mumbai",
		"To: Nashik",
		"JNPT, Mumbai Port",
		"BOM",
		"- Ports: None",
		"Return ONLY valid JSON.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestStripObjectFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", "Here you go: {\"a\":1} done", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripObjectFences(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnalyzeMergesStaticInfrastructure(t *testing.T) {
	client := &fakeLLM{response: "```json\n" + `{
  "routeDescription": "Coastal highway via NH-66",
  "transportOptions": ["truck", "ship"],
  "recommendedMode": "ship",
  "selectedOptimalMode": "ship",
  "greenTransportOpportunities": ["electric trucks"]
}` + "\n```"}
	analyzer := &RouteAnalyzer{Client: client}

	analysis, err := analyzer.Analyze(context.Background(), "Mumbai", "Raigad")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !analysis.FromHasSeaway || !analysis.FromHasAirport {
		t.Errorf("Mumbai should have seaway and airport, got %+v", analysis)
	}
	if !analysis.ToHasSeaway || analysis.ToHasAirport {
		t.Errorf("Raigad should have seaway only, got %+v", analysis)
	}
	if analysis.RouteDetails != "Coastal highway via NH-66" {
		t.Errorf("unexpected route details %q", analysis.RouteDetails)
	}
	if analysis.OptimalMode != "ship" {
		t.Errorf("unexpected optimal mode %q", analysis.OptimalMode)
	}
}

func TestAnalyzeUnknownCityDefaultsToNoInfrastructure(t *testing.T) {
	client := &fakeLLM{response: `{"routeDescription":"inland route"}`}
	analyzer := &RouteAnalyzer{Client: client}

	analysis, err := analyzer.Analyze(context.Background(), "Atlantis", "Nashik")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.FromHasSeaway || analysis.FromHasAirport {
		t.Errorf("unknown city should have no infrastructure, got %+v", analysis)
	}
}

func TestAnalyzeRejectsNonJSONResponse(t *testing.T) {
	client := &fakeLLM{response: "I cannot produce JSON for that route."}
	analyzer := &RouteAnalyzer{Client: client}

	if _, err := analyzer.Analyze(context.Background(), "Mumbai", "Pune"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	_, err := svc.Create(context.Background(), CreateInput{ProductID: "p1", StageName: "", DistanceKm: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = svc.Create(context.Background(), CreateInput{ProductID: "p1", StageName: "Raw Materials", DistanceKm: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	node, err := svc.Create(context.Background(), CreateInput{
		ProductID:     "p1",
		StageName:     "Raw Materials",
		TransportMode: TransportTruck,
		DistanceKm:    120,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if node.ID == "" {
		t.Fatal("expected generated node id")
	}
}

func TestServiceAnalyzeRouteUpdatesNode(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Now().UTC()
	if err := repo.Create(context.Background(), Node{ID: "n1", ProductID: "p1", StageName: "Transport", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	client := &fakeLLM{response: `{"routeDescription":"via Mumbai-Pune expressway"}`}
	svc := &Service{Repo: repo, Analyzer: &RouteAnalyzer{Client: client}}

	if _, err := svc.AnalyzeRoute(context.Background(), "p1", "Mumbai", "Pune", "n1"); err != nil {
		t.Fatalf("AnalyzeRoute: %v", err)
	}

	node, err := repo.GetByID(context.Background(), "n1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !node.HasSeaway || !node.HasAirport {
		t.Errorf("expected merged infrastructure flags, got %+v", node)
	}
	if node.RouteDetails != "via Mumbai-Pune expressway" {
		t.Errorf("unexpected route details %q", node.RouteDetails)
	}
}
