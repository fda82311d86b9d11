package companies

import "context"

// Repo defines persistence operations for companies.
type Repo interface {
	Create(ctx context.Context, company Company) error
	GetByID(ctx context.Context, companyID string) (Company, error)
	GetByEmail(ctx context.Context, email string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company Company) error
	Delete(ctx context.Context, companyID string) error
}
