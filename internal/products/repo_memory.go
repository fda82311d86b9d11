package products

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Product
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Product),
	}
}

// Create stores a new product.
func (r *MemoryRepo) Create(ctx context.Context, product Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[product.ID] = product
	return nil
}

// GetByID returns a product by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, productID string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.data[productID]
	if !ok {
		return Product{}, ErrNotFound
	}
	return product, nil
}

// ListByCompany returns a company's products newest-first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Product{}
	for _, product := range r.data {
		if product.CompanyID == companyID {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the mutable fields of a product.
func (r *MemoryRepo) Update(ctx context.Context, product Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[product.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.YearlyNetZeroTarget = product.YearlyNetZeroTarget
	existing.UpdatedAt = time.Now().UTC()
	r.data[product.ID] = existing
	return nil
}

// UpdateEmissionStats stores the figures derived by an emission analysis.
func (r *MemoryRepo) UpdateEmissionStats(ctx context.Context, productID string, currentYearEmission, carbonEfficiencyScore float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[productID]
	if !ok {
		return ErrNotFound
	}
	score := carbonEfficiencyScore
	existing.CurrentYearEmission = currentYearEmission
	existing.CarbonEfficiencyScore = &score
	existing.UpdatedAt = time.Now().UTC()
	r.data[productID] = existing
	return nil
}

// Delete removes a product.
func (r *MemoryRepo) Delete(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[productID]; !ok {
		return ErrNotFound
	}
	delete(r.data, productID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
