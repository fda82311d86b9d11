package products

import "context"

// Repo defines persistence operations for products.
type Repo interface {
	Create(ctx context.Context, product Product) error
	GetByID(ctx context.Context, productID string) (Product, error)
	ListByCompany(ctx context.Context, companyID string) ([]Product, error)
	Update(ctx context.Context, product Product) error
	// UpdateEmissionStats stores the figures derived by an emission analysis.
	UpdateEmissionStats(ctx context.Context, productID string, currentYearEmission, carbonEfficiencyScore float64) error
	Delete(ctx context.Context, productID string) error
}
