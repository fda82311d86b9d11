package supplychain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbonchain-backend/internal/shared/telemetry"
)

// routeAnalysisTimeout bounds the background enrichment call so a slow
// provider never holds a goroutine indefinitely.
const routeAnalysisTimeout = 45 * time.Second

// Service contains business logic for supply chain nodes.
type Service struct {
	Repo Repo
	// Analyzer is optional. When nil, route intelligence is skipped.
	Analyzer *RouteAnalyzer
}

// CreateInput carries the fields accepted when recording a stage.
type CreateInput struct {
	ProductID         string
	StageName         string
	SupplierName      string
	TransportMode     string
	DistanceKm        float64
	EnergySource      string
	TransportCost     float64
	TransportTimeDays float64
	FromLocation      string
	ToLocation        string
}

// Create validates input and stores a new node. When both route locations
// are present and an analyzer is configured, route enrichment runs in the
// background and never fails the create.
func (s *Service) Create(ctx context.Context, in CreateInput) (Node, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.StageName = strings.TrimSpace(in.StageName)
	if in.ProductID == "" || in.StageName == "" || in.DistanceKm <= 0 {
		return Node{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	node := Node{
		ID:                uuid.NewString(),
		ProductID:         in.ProductID,
		StageName:         in.StageName,
		SupplierName:      strings.TrimSpace(in.SupplierName),
		TransportMode:     in.TransportMode,
		DistanceKm:        in.DistanceKm,
		EnergySource:      in.EnergySource,
		TransportCost:     in.TransportCost,
		TransportTimeDays: in.TransportTimeDays,
		FromLocation:      strings.TrimSpace(in.FromLocation),
		ToLocation:        strings.TrimSpace(in.ToLocation),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Repo.Create(ctx, node); err != nil {
		return Node{}, err
	}

	if s.Analyzer != nil && node.FromLocation != "" && node.ToLocation != "" {
		go s.enrichRoute(node.ID, node.FromLocation, node.ToLocation)
	}
	return node, nil
}

func (s *Service) enrichRoute(nodeID, fromLocation, toLocation string) {
	ctx, cancel := context.WithTimeout(context.Background(), routeAnalysisTimeout)
	defer cancel()

	analysis, err := s.Analyzer.Analyze(ctx, fromLocation, toLocation)
	if err != nil {
		telemetry.Warn("route.analysis.failed", map[string]any{
			"node_id": nodeID,
			"from":    fromLocation,
			"to":      toLocation,
			"error":   err.Error(),
		})
		return
	}

	hasSeaway := analysis.FromHasSeaway || analysis.ToHasSeaway
	hasAirport := analysis.FromHasAirport || analysis.ToHasAirport
	if err := s.Repo.UpdateRouteIntelligence(ctx, nodeID, hasSeaway, hasAirport, analysis.RouteDetails); err != nil {
		telemetry.Warn("route.analysis.store_failed", map[string]any{
			"node_id": nodeID,
			"error":   err.Error(),
		})
	}
}

// AnalyzeRoute runs route intelligence on demand. When nodeID is set, the
// node is updated with the result.
func (s *Service) AnalyzeRoute(ctx context.Context, productID, fromLocation, toLocation, nodeID string) (RouteAnalysis, error) {
	if s.Analyzer == nil {
		return RouteAnalysis{}, ErrInvalidInput
	}
	productID = strings.TrimSpace(productID)
	fromLocation = strings.TrimSpace(fromLocation)
	toLocation = strings.TrimSpace(toLocation)
	if productID == "" || fromLocation == "" || toLocation == "" {
		return RouteAnalysis{}, ErrInvalidInput
	}

	analysis, err := s.Analyzer.Analyze(ctx, fromLocation, toLocation)
	if err != nil {
		return RouteAnalysis{}, err
	}

	if nodeID != "" {
		hasSeaway := analysis.FromHasSeaway || analysis.ToHasSeaway
		hasAirport := analysis.FromHasAirport || analysis.ToHasAirport
		if err := s.Repo.UpdateRouteIntelligence(ctx, nodeID, hasSeaway, hasAirport, analysis.RouteDetails); err != nil {
			return RouteAnalysis{}, err
		}
	}
	return analysis, nil
}

// Get returns a node by ID.
func (s *Service) Get(ctx context.Context, nodeID string) (Node, error) {
	if nodeID == "" {
		return Node{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, nodeID)
}

// ListByProduct returns a product's nodes newest-first.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]Node, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProduct(ctx, productID)
}

// Update replaces the mutable fields of a node.
func (s *Service) Update(ctx context.Context, nodeID string, in CreateInput) (Node, error) {
	if nodeID == "" {
		return Node{}, ErrInvalidInput
	}
	node, err := s.Repo.GetByID(ctx, nodeID)
	if err != nil {
		return Node{}, err
	}
	if trimmed := strings.TrimSpace(in.StageName); trimmed != "" {
		node.StageName = trimmed
	}
	if trimmed := strings.TrimSpace(in.SupplierName); trimmed != "" {
		node.SupplierName = trimmed
	}
	if in.TransportMode != "" {
		node.TransportMode = in.TransportMode
	}
	if in.DistanceKm > 0 {
		node.DistanceKm = in.DistanceKm
	}
	if in.EnergySource != "" {
		node.EnergySource = in.EnergySource
	}
	if in.TransportCost > 0 {
		node.TransportCost = in.TransportCost
	}
	if in.TransportTimeDays > 0 {
		node.TransportTimeDays = in.TransportTimeDays
	}
	if trimmed := strings.TrimSpace(in.FromLocation); trimmed != "" {
		node.FromLocation = trimmed
	}
	if trimmed := strings.TrimSpace(in.ToLocation); trimmed != "" {
		node.ToLocation = trimmed
	}
	if err := s.Repo.Update(ctx, node); err != nil {
		return Node{}, err
	}
	return s.Repo.GetByID(ctx, nodeID)
}

// Delete removes a node.
func (s *Service) Delete(ctx context.Context, nodeID string) error {
	if nodeID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, nodeID)
}
