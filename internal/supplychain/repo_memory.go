package supplychain

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Node
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Node),
	}
}

// Create stores a new node.
func (r *MemoryRepo) Create(ctx context.Context, node Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[node.ID] = node
	return nil
}

// GetByID returns a node by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, nodeID string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return Node{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.data[nodeID]
	if !ok {
		return Node{}, ErrNotFound
	}
	return node, nil
}

// ListByProduct returns a product's nodes newest-first.
func (r *MemoryRepo) ListByProduct(ctx context.Context, productID string) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Node{}
	for _, node := range r.data {
		if node.ProductID == productID {
			out = append(out, node)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the mutable fields of a node.
func (r *MemoryRepo) Update(ctx context.Context, node Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[node.ID]
	if !ok {
		return ErrNotFound
	}
	existing.StageName = node.StageName
	existing.SupplierName = node.SupplierName
	existing.TransportMode = node.TransportMode
	existing.DistanceKm = node.DistanceKm
	existing.EnergySource = node.EnergySource
	existing.TransportCost = node.TransportCost
	existing.TransportTimeDays = node.TransportTimeDays
	existing.FromLocation = node.FromLocation
	existing.ToLocation = node.ToLocation
	existing.UpdatedAt = time.Now().UTC()
	r.data[node.ID] = existing
	return nil
}

// UpdateRouteIntelligence stores the provider-derived route enrichment.
func (r *MemoryRepo) UpdateRouteIntelligence(ctx context.Context, nodeID string, hasSeaway, hasAirport bool, routeDetails string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[nodeID]
	if !ok {
		return ErrNotFound
	}
	existing.HasSeaway = hasSeaway
	existing.HasAirport = hasAirport
	existing.RouteDetails = routeDetails
	existing.UpdatedAt = time.Now().UTC()
	r.data[nodeID] = existing
	return nil
}

// Delete removes a node.
func (r *MemoryRepo) Delete(ctx context.Context, nodeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[nodeID]; !ok {
		return ErrNotFound
	}
	delete(r.data, nodeID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
