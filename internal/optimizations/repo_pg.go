package optimizations

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

const insightColumns = `id, product_id, stage_name, recommendation_type, current_state, suggested_improvement,
       carbon_reduction_percent, cost_impact_inr, time_impact_days, implementation_difficulty,
       maharashtra_specific_notes, why_this_approach, recommendation_text, generated_by, created_at, updated_at`

const insertInsight = `
INSERT INTO optimization_insights (
	id, product_id, stage_name, recommendation_type, current_state, suggested_improvement,
	carbon_reduction_percent, cost_impact_inr, time_impact_days, implementation_difficulty,
	maharashtra_specific_notes, why_this_approach, recommendation_text, generated_by, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

// InsertBatch stores a set of insights in a single transaction.
func (r *PGRepo) InsertBatch(ctx context.Context, insights []Insight) error {
	if len(insights) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, insight := range insights {
		if _, err := tx.ExecContext(ctx, insertInsight, insightArgs(insight)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListAIByProduct returns the AI-generated set for a product.
func (r *PGRepo) ListAIByProduct(ctx context.Context, productID string) ([]Insight, error) {
	const query = `SELECT ` + insightColumns + ` FROM optimization_insights WHERE product_id = $1 AND generated_by = $2 ORDER BY created_at DESC`
	return r.list(ctx, query, productID, GeneratedByAI)
}

// DeleteAIByProduct removes the AI-generated set for a product.
func (r *PGRepo) DeleteAIByProduct(ctx context.Context, productID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM optimization_insights WHERE product_id = $1 AND generated_by = $2`, productID, GeneratedByAI)
	return err
}

// Create inserts a single insight.
func (r *PGRepo) Create(ctx context.Context, insight Insight) error {
	_, err := r.DB.ExecContext(ctx, insertInsight, insightArgs(insight)...)
	return err
}

// GetByID returns an insight by ID.
func (r *PGRepo) GetByID(ctx context.Context, insightID string) (Insight, error) {
	const query = `SELECT ` + insightColumns + ` FROM optimization_insights WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, insightID)
	insight, err := scanInsight(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Insight{}, ErrNotFound
	}
	return insight, err
}

// ListByProduct returns all insights for a product newest-first.
func (r *PGRepo) ListByProduct(ctx context.Context, productID string) ([]Insight, error) {
	const query = `SELECT ` + insightColumns + ` FROM optimization_insights WHERE product_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, productID)
}

// ListRecent returns the newest insights across all products.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Insight, error) {
	const query = `SELECT ` + insightColumns + ` FROM optimization_insights ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// Update replaces the mutable fields of an insight.
func (r *PGRepo) Update(ctx context.Context, insight Insight) error {
	const query = `
UPDATE optimization_insights
SET stage_name = $2, recommendation_type = $3, current_state = $4, suggested_improvement = $5,
    carbon_reduction_percent = $6, cost_impact_inr = $7, time_impact_days = $8,
    implementation_difficulty = $9, maharashtra_specific_notes = $10, why_this_approach = $11,
    recommendation_text = $12, updated_at = $13
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		insight.ID,
		insight.StageName,
		insight.RecommendationType,
		insight.CurrentState,
		insight.SuggestedImprovement,
		insight.CarbonReductionPercent,
		insight.CostImpactINR,
		insight.TimeImpactDays,
		insight.ImplementationDifficulty,
		insight.MaharashtraSpecificNotes,
		insight.WhyThisApproach,
		insight.RecommendationText,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes an insight.
func (r *PGRepo) Delete(ctx context.Context, insightID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM optimization_insights WHERE id = $1`, insightID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Insight, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Insight{}
	for rows.Next() {
		insight, err := scanInsight(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, insight)
	}
	return out, rows.Err()
}

func insightArgs(insight Insight) []any {
	return []any{
		insight.ID,
		insight.ProductID,
		insight.StageName,
		insight.RecommendationType,
		insight.CurrentState,
		insight.SuggestedImprovement,
		insight.CarbonReductionPercent,
		insight.CostImpactINR,
		insight.TimeImpactDays,
		insight.ImplementationDifficulty,
		insight.MaharashtraSpecificNotes,
		insight.WhyThisApproach,
		insight.RecommendationText,
		insight.GeneratedBy,
		insight.CreatedAt,
		insight.UpdatedAt,
	}
}

func scanInsight(scan func(dest ...any) error) (Insight, error) {
	var i Insight
	err := scan(
		&i.ID, &i.ProductID, &i.StageName, &i.RecommendationType, &i.CurrentState, &i.SuggestedImprovement,
		&i.CarbonReductionPercent, &i.CostImpactINR, &i.TimeImpactDays, &i.ImplementationDifficulty,
		&i.MaharashtraSpecificNotes, &i.WhyThisApproach, &i.RecommendationText, &i.GeneratedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
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
