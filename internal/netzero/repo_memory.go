package netzero

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Progress
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Progress),
	}
}

// Create stores a new progress entry.
func (r *MemoryRepo) Create(ctx context.Context, progress Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[progress.ID] = progress
	return nil
}

// GetByID returns a progress entry by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, progressID string) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	progress, ok := r.data[progressID]
	if !ok {
		return Progress{}, ErrNotFound
	}
	return progress, nil
}

// ListByProduct returns a product's entries newest-year-first.
func (r *MemoryRepo) ListByProduct(ctx context.Context, productID string) ([]Progress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Progress{}
	for _, progress := range r.data {
		if progress.ProductID == productID {
			out = append(out, progress)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out, nil
}

// Update replaces the mutable fields of a progress entry.
func (r *MemoryRepo) Update(ctx context.Context, progress Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[progress.ID]
	if !ok {
		return ErrNotFound
	}
	existing.TargetEmission = progress.TargetEmission
	existing.ActualEmission = progress.ActualEmission
	existing.AlignmentPercentage = progress.AlignmentPercentage
	r.data[progress.ID] = existing
	return nil
}

// Delete removes a progress entry.
func (r *MemoryRepo) Delete(ctx context.Context, progressID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[progressID]; !ok {
		return ErrNotFound
	}
	delete(r.data, progressID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
