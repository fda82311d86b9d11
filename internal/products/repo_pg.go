package products

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const productColumns = `id, company_id, name, description, yearly_net_zero_target, current_year_emission, carbon_efficiency_score, created_at, updated_at`

// Create inserts a new product.
func (r *PGRepo) Create(ctx context.Context, product Product) error {
	const query = `
INSERT INTO products (id, company_id, name, description, yearly_net_zero_target, current_year_emission, carbon_efficiency_score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		product.ID,
		product.CompanyID,
		product.Name,
		product.Description,
		product.YearlyNetZeroTarget,
		product.CurrentYearEmission,
		product.CarbonEfficiencyScore,
		product.CreatedAt,
		product.UpdatedAt,
	)
	return err
}

// GetByID returns a product by ID.
func (r *PGRepo) GetByID(ctx context.Context, productID string) (Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, productID)
	var p Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.YearlyNetZeroTarget, &p.CurrentYearEmission, &p.CarbonEfficiencyScore, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// ListByCompany returns a company's products newest-first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.YearlyNetZeroTarget, &p.CurrentYearEmission, &p.CarbonEfficiencyScore, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a product.
func (r *PGRepo) Update(ctx context.Context, product Product) error {
	const query = `
UPDATE products
SET name = $2, description = $3, yearly_net_zero_target = $4, updated_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.YearlyNetZeroTarget,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateEmissionStats stores the figures derived by an emission analysis.
func (r *PGRepo) UpdateEmissionStats(ctx context.Context, productID string, currentYearEmission, carbonEfficiencyScore float64) error {
	const query = `
UPDATE products
SET current_year_emission = $2, carbon_efficiency_score = $3, updated_at = $4
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, productID, currentYearEmission, carbonEfficiencyScore, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a product.
func (r *PGRepo) Delete(ctx context.Context, productID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
