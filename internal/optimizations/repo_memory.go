package optimizations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Insight
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Insight),
	}
}

// InsertBatch stores a set of insights.
func (r *MemoryRepo) InsertBatch(ctx context.Context, insights []Insight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, insight := range insights {
		r.data[insight.ID] = insight
	}
	return nil
}

// ListAIByProduct returns the AI-generated set for a product.
func (r *MemoryRepo) ListAIByProduct(ctx context.Context, productID string) ([]Insight, error) {
	return r.filter(ctx, func(i Insight) bool {
		return i.ProductID == productID && i.GeneratedBy == GeneratedByAI
	})
}

// DeleteAIByProduct removes the AI-generated set for a product.
func (r *MemoryRepo) DeleteAIByProduct(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, insight := range r.data {
		if insight.ProductID == productID && insight.GeneratedBy == GeneratedByAI {
			delete(r.data, id)
		}
	}
	return nil
}

// Create stores a single insight.
func (r *MemoryRepo) Create(ctx context.Context, insight Insight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[insight.ID] = insight
	return nil
}

// GetByID returns an insight by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, insightID string) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	insight, ok := r.data[insightID]
	if !ok {
		return Insight{}, ErrNotFound
	}
	return insight, nil
}

// ListByProduct returns all insights for a product newest-first.
func (r *MemoryRepo) ListByProduct(ctx context.Context, productID string) ([]Insight, error) {
	return r.filter(ctx, func(i Insight) bool {
		return i.ProductID == productID
	})
}

// ListRecent returns the newest insights across all products.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Insight, error) {
	all, err := r.filter(ctx, func(Insight) bool { return true })
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Update replaces the mutable fields of an insight.
func (r *MemoryRepo) Update(ctx context.Context, insight Insight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[insight.ID]
	if !ok {
		return ErrNotFound
	}
	existing.StageName = insight.StageName
	existing.RecommendationType = insight.RecommendationType
	existing.CurrentState = insight.CurrentState
	existing.SuggestedImprovement = insight.SuggestedImprovement
	existing.CarbonReductionPercent = insight.CarbonReductionPercent
	existing.CostImpactINR = insight.CostImpactINR
	existing.TimeImpactDays = insight.TimeImpactDays
	existing.ImplementationDifficulty = insight.ImplementationDifficulty
	existing.MaharashtraSpecificNotes = insight.MaharashtraSpecificNotes
	existing.WhyThisApproach = insight.WhyThisApproach
	existing.RecommendationText = insight.RecommendationText
	existing.UpdatedAt = time.Now().UTC()
	r.data[insight.ID] = existing
	return nil
}

// Delete removes an insight.
func (r *MemoryRepo) Delete(ctx context.Context, insightID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[insightID]; !ok {
		return ErrNotFound
	}
	delete(r.data, insightID)
	return nil
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Insight) bool) ([]Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Insight{}
	for _, insight := range r.data {
		if keep(insight) {
			out = append(out, insight)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
