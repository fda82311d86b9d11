package analyses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Result
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Result),
	}
}

// Create stores a new analysis result.
func (r *MemoryRepo) Create(ctx context.Context, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[result.ID] = result
	return nil
}

// GetLatestByProduct returns the most recent analysis for a product.
func (r *MemoryRepo) GetLatestByProduct(ctx context.Context, productID string) (Result, error) {
	all, err := r.ListByProduct(ctx, productID)
	if err != nil {
		return Result{}, err
	}
	if len(all) == 0 {
		return Result{}, ErrNotFound
	}
	return all[0], nil
}

// ListByProduct returns a product's analyses newest-first.
func (r *MemoryRepo) ListByProduct(ctx context.Context, productID string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Result{}
	for _, result := range r.data {
		if result.ProductID == productID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AnalysisDate.After(out[j].AnalysisDate)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
