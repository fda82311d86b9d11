package optimizations

import "context"

// Repo defines persistence operations for optimization insights. The
// AI-scoped operations only ever touch rows tagged GeneratedByAI; manual
// insights live in the same table but are invisible to the AI pipeline.
type Repo interface {
	// InsertBatch stores a set of insights in one operation.
	InsertBatch(ctx context.Context, insights []Insight) error
	// ListAIByProduct returns the AI-generated set for a product.
	ListAIByProduct(ctx context.Context, productID string) ([]Insight, error)
	// DeleteAIByProduct removes the AI-generated set for a product.
	DeleteAIByProduct(ctx context.Context, productID string) error

	Create(ctx context.Context, insight Insight) error
	GetByID(ctx context.Context, insightID string) (Insight, error)
	ListByProduct(ctx context.Context, productID string) ([]Insight, error)
	// ListRecent returns the newest insights across all products.
	ListRecent(ctx context.Context, limit int) ([]Insight, error)
	Update(ctx context.Context, insight Insight) error
	Delete(ctx context.Context, insightID string) error
}
