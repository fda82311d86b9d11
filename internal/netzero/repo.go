package netzero

import "context"

// Repo defines persistence operations for net-zero progress entries.
type Repo interface {
	Create(ctx context.Context, progress Progress) error
	GetByID(ctx context.Context, progressID string) (Progress, error)
	// ListByProduct returns a product's entries newest-year-first.
	ListByProduct(ctx context.Context, productID string) ([]Progress, error)
	Update(ctx context.Context, progress Progress) error
	Delete(ctx context.Context, progressID string) error
}
