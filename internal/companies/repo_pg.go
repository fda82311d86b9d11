package companies

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

const companyColumns = `id, name, email, password_hash, industry, sustainability_goal, headquarters_location, created_at, updated_at`

// Create inserts a new company.
func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const query = `
INSERT INTO companies (id, name, email, password_hash, industry, sustainability_goal, headquarters_location, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.PasswordHash,
		company.Industry,
		company.SustainabilityGoal,
		company.HeadquartersLocation,
		company.CreatedAt,
		company.UpdatedAt,
	)
	return err
}

// GetByID returns a company by ID.
func (r *PGRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, companyID))
}

// GetByEmail returns a company by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE email = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// List returns all companies ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Company{}
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Industry, &c.SustainabilityGoal, &c.HeadquartersLocation, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a company.
func (r *PGRepo) Update(ctx context.Context, company Company) error {
	const query = `
UPDATE companies
SET name = $2, industry = $3, sustainability_goal = $4, headquarters_location = $5, updated_at = $6
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Industry,
		company.SustainabilityGoal,
		company.HeadquartersLocation,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a company.
func (r *PGRepo) Delete(ctx context.Context, companyID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, companyID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) scanOne(row *sql.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Industry, &c.SustainabilityGoal, &c.HeadquartersLocation, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Company{}, ErrNotFound
	}
	if err != nil {
		return Company{}, err
	}
	return c, nil
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
