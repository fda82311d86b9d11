package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for products.
type Service struct {
	Repo Repo
}

// Create validates input and stores a new product.
func (s *Service) Create(ctx context.Context, companyID, name, description string, yearlyNetZeroTarget float64) (Product, error) {
	companyID = strings.TrimSpace(companyID)
	name = strings.TrimSpace(name)
	if companyID == "" || name == "" || yearlyNetZeroTarget <= 0 {
		return Product{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	product := Product{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		Name:                name,
		Description:         strings.TrimSpace(description),
		YearlyNetZeroTarget: yearlyNetZeroTarget,
		CurrentYearEmission: 0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Repo.Create(ctx, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Get returns a product by ID.
func (s *Service) Get(ctx context.Context, productID string) (Product, error) {
	if productID == "" {
		return Product{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, productID)
}

// ListByCompany returns a company's products newest-first.
func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]Product, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCompany(ctx, companyID)
}

// Update replaces the mutable fields of a product.
func (s *Service) Update(ctx context.Context, productID, name, description string, yearlyNetZeroTarget float64) (Product, error) {
	if productID == "" {
		return Product{}, ErrInvalidInput
	}
	product, err := s.Repo.GetByID(ctx, productID)
	if err != nil {
		return Product{}, err
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		product.Name = trimmed
	}
	product.Description = strings.TrimSpace(description)
	if yearlyNetZeroTarget > 0 {
		product.YearlyNetZeroTarget = yearlyNetZeroTarget
	}
	if err := s.Repo.Update(ctx, product); err != nil {
		return Product{}, err
	}
	return s.Repo.GetByID(ctx, productID)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, productID)
}
