package analyses

import "context"

// Repo defines persistence operations for emission analyses.
type Repo interface {
	Create(ctx context.Context, result Result) error
	// GetLatestByProduct returns the most recent analysis, or ErrNotFound.
	GetLatestByProduct(ctx context.Context, productID string) (Result, error)
	// ListByProduct returns a product's analyses newest-first.
	ListByProduct(ctx context.Context, productID string) ([]Result, error)
}
