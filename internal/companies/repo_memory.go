package companies

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Company
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Company),
	}
}

// Create stores a new company.
func (r *MemoryRepo) Create(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[company.ID] = company
	return nil
}

// GetByID returns a company by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.data[companyID]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

// GetByEmail returns a company by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, company := range r.data {
		if strings.EqualFold(company.Email, email) {
			return company, nil
		}
	}
	return Company{}, ErrNotFound
}

// List returns all companies newest-first.
func (r *MemoryRepo) List(ctx context.Context) ([]Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Company, 0, len(r.data))
	for _, company := range r.data {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the mutable fields of a company.
func (r *MemoryRepo) Update(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[company.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = company.Name
	existing.Industry = company.Industry
	existing.SustainabilityGoal = company.SustainabilityGoal
	existing.HeadquartersLocation = company.HeadquartersLocation
	existing.UpdatedAt = time.Now().UTC()
	r.data[company.ID] = existing
	return nil
}

// Delete removes a company.
func (r *MemoryRepo) Delete(ctx context.Context, companyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[companyID]; !ok {
		return ErrNotFound
	}
	delete(r.data, companyID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
