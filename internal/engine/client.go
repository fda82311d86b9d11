package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable means the emission engine could not be reached or answered
// with an error. Callers surface it with a hint to start the engine process.
var ErrUnavailable = errors.New("emission engine unavailable")

// NodePayload is one supply-chain stage in the engine request.
type NodePayload struct {
	StageName         string  `json:"stage_name"`
	SupplierName      string  `json:"supplier_name"`
	TransportMode     string  `json:"transport_mode"`
	DistanceKm        float64 `json:"distance_km"`
	EnergySource      string  `json:"energy_source"`
	TransportCost     float64 `json:"transport_cost"`
	TransportTimeDays float64 `json:"transport_time_days"`
}

// StageBreakdown is the engine's per-stage emission result.
type StageBreakdown struct {
	StageName         string  `json:"stage_name"`
	TotalEmission     float64 `json:"total_emission"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// Result is the engine's aggregate emission result.
type Result struct {
	TotalEmission        float64          `json:"total_emission"`
	HighestEmissionStage string           `json:"highest_emission_stage"`
	NodesBreakdown       []StageBreakdown `json:"nodes_breakdown"`
}

// Client calls the external emission-calculation engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an engine client for the given base URL.
func NewClient(baseURL string) *Client {
	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("EMISSION_ENGINE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type calculateRequest struct {
	SupplyChainNodes []NodePayload `json:"supply_chain_nodes"`
}

type calculateResponse struct {
	Data *Result `json:"data"`
	// Some engine builds return the result at the top level.
	Result
}

// CalculateTotal submits stage records and returns the emission totals.
func (c *Client) CalculateTotal(ctx context.Context, nodes []NodePayload) (Result, error) {
	payload, err := json.Marshal(calculateRequest{SupplyChainNodes: nodes})
	if err != nil {
		return Result{}, err
	}

	url := c.baseURL + "/api/emissions/calculate-total"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("engine request %s: %v: %w", url, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("engine response read: %v: %w", err, ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("engine status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var parsed calculateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("engine response parse: %v: %w", err, ErrUnavailable)
	}
	if parsed.Data != nil {
		return *parsed.Data, nil
	}
	return parsed.Result, nil
}
