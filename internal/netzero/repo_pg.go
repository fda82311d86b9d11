package netzero

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const progressColumns = `id, product_id, year, target_emission, actual_emission, alignment_percentage, recorded_at`

// Create inserts a new progress entry.
func (r *PGRepo) Create(ctx context.Context, progress Progress) error {
	const query = `
INSERT INTO net_zero_progress (id, product_id, year, target_emission, actual_emission, alignment_percentage, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		progress.ID,
		progress.ProductID,
		progress.Year,
		progress.TargetEmission,
		progress.ActualEmission,
		progress.AlignmentPercentage,
		progress.RecordedAt,
	)
	return err
}

// GetByID returns a progress entry by ID.
func (r *PGRepo) GetByID(ctx context.Context, progressID string) (Progress, error) {
	const query = `SELECT ` + progressColumns + ` FROM net_zero_progress WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, progressID)
	progress, err := scanProgress(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, ErrNotFound
	}
	return progress, err
}

// ListByProduct returns a product's entries newest-year-first.
func (r *PGRepo) ListByProduct(ctx context.Context, productID string) ([]Progress, error) {
	const query = `SELECT ` + progressColumns + ` FROM net_zero_progress WHERE product_id = $1 ORDER BY year DESC`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Progress{}
	for rows.Next() {
		progress, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a progress entry.
func (r *PGRepo) Update(ctx context.Context, progress Progress) error {
	const query = `
UPDATE net_zero_progress
SET target_emission = $2, actual_emission = $3, alignment_percentage = $4
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		progress.ID,
		progress.TargetEmission,
		progress.ActualEmission,
		progress.AlignmentPercentage,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a progress entry.
func (r *PGRepo) Delete(ctx context.Context, progressID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM net_zero_progress WHERE id = $1`, progressID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanProgress(scan func(dest ...any) error) (Progress, error) {
	var p Progress
	err := scan(&p.ID, &p.ProductID, &p.Year, &p.TargetEmission, &p.ActualEmission, &p.AlignmentPercentage, &p.RecordedAt)
	return p, err
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
