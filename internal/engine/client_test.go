package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCalculateTotalUnwrapsDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/emissions/calculate-total" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			SupplyChainNodes []NodePayload `json:"supply_chain_nodes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.SupplyChainNodes) != 1 || req.SupplyChainNodes[0].StageName != "Transport A" {
			t.Errorf("unexpected payload: %+v", req.SupplyChainNodes)
		}
		w.Write([]byte(`{"data":{"total_emission":48.0,"highest_emission_stage":"Transport A","nodes_breakdown":[{"stage_name":"Transport A","total_emission":48.0,"percentage_of_total":100}]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.CalculateTotal(context.Background(), []NodePayload{
		{StageName: "Transport A", TransportMode: "truck", DistanceKm: 400, EnergySource: "diesel"},
	})
	if err != nil {
		t.Fatalf("CalculateTotal: %v", err)
	}
	if result.TotalEmission != 48.0 {
		t.Fatalf("expected total 48.0, got %f", result.TotalEmission)
	}
	if result.HighestEmissionStage != "Transport A" {
		t.Fatalf("expected highest stage, got %q", result.HighestEmissionStage)
	}
	if len(result.NodesBreakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(result.NodesBreakdown))
	}
}

func TestCalculateTotalAcceptsTopLevelResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_emission":12.5,"highest_emission_stage":"Warehousing","nodes_breakdown":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.CalculateTotal(context.Background(), nil)
	if err != nil {
		t.Fatalf("CalculateTotal: %v", err)
	}
	if result.TotalEmission != 12.5 {
		t.Fatalf("expected total 12.5, got %f", result.TotalEmission)
	}
}

func TestCalculateTotalMapsEngineDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.CalculateTotal(context.Background(), nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
