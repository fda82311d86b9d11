package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"carbonchain-backend/internal/engine"
)

// PGRepo implements Repo using Postgres. The per-stage breakdown is stored
// as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const resultColumns = `id, product_id, total_emission, highest_emission_stage, carbon_efficiency_score,
       cost_efficiency_score, time_efficiency_score, net_zero_alignment_percentage, nodes_breakdown, analysis_date`

// Create inserts a new analysis result.
func (r *PGRepo) Create(ctx context.Context, result Result) error {
	breakdown, err := json.Marshal(result.NodesBreakdown)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO emission_results (
	id, product_id, total_emission, highest_emission_stage, carbon_efficiency_score,
	cost_efficiency_score, time_efficiency_score, net_zero_alignment_percentage, nodes_breakdown, analysis_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		result.ID,
		result.ProductID,
		result.TotalEmission,
		result.HighestEmissionStage,
		result.CarbonEfficiencyScore,
		result.CostEfficiencyScore,
		result.TimeEfficiencyScore,
		result.NetZeroAlignmentPercentage,
		breakdown,
		result.AnalysisDate,
	)
	return err
}

// GetLatestByProduct returns the most recent analysis for a product.
func (r *PGRepo) GetLatestByProduct(ctx context.Context, productID string) (Result, error) {
	const query = `SELECT ` + resultColumns + ` FROM emission_results WHERE product_id = $1 ORDER BY analysis_date DESC LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, productID)
	result, err := scanResult(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	return result, err
}

// ListByProduct returns a product's analyses newest-first.
func (r *PGRepo) ListByProduct(ctx context.Context, productID string) ([]Result, error) {
	const query = `SELECT ` + resultColumns + ` FROM emission_results WHERE product_id = $1 ORDER BY analysis_date DESC`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

func scanResult(scan func(dest ...any) error) (Result, error) {
	var res Result
	var breakdown []byte
	err := scan(
		&res.ID, &res.ProductID, &res.TotalEmission, &res.HighestEmissionStage, &res.CarbonEfficiencyScore,
		&res.CostEfficiencyScore, &res.TimeEfficiencyScore, &res.NetZeroAlignmentPercentage, &breakdown, &res.AnalysisDate,
	)
	if err != nil {
		return Result{}, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &res.NodesBreakdown); err != nil {
			return Result{}, err
		}
	}
	if res.NodesBreakdown == nil {
		res.NodesBreakdown = []engine.StageBreakdown{}
	}
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
