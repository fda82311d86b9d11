package supplychain

import "context"

// Repo defines persistence operations for supply chain nodes.
type Repo interface {
	Create(ctx context.Context, node Node) error
	GetByID(ctx context.Context, nodeID string) (Node, error)
	ListByProduct(ctx context.Context, productID string) ([]Node, error)
	Update(ctx context.Context, node Node) error
	// UpdateRouteIntelligence stores the provider-derived route enrichment.
	UpdateRouteIntelligence(ctx context.Context, nodeID string, hasSeaway, hasAirport bool, routeDetails string) error
	Delete(ctx context.Context, nodeID string) error
}
