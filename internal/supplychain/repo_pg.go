package supplychain

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

const nodeColumns = `id, product_id, stage_name, supplier_name, transport_mode, distance_km, energy_source,
       transport_cost, transport_time_days, emission, from_location, to_location, has_seaway, has_airport,
       route_details, created_at, updated_at`

// Create inserts a new supply chain node.
func (r *PGRepo) Create(ctx context.Context, node Node) error {
	const query = `
INSERT INTO supply_chain_nodes (
	id, product_id, stage_name, supplier_name, transport_mode, distance_km, energy_source,
	transport_cost, transport_time_days, emission, from_location, to_location, has_seaway, has_airport,
	route_details, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.DB.ExecContext(ctx, query,
		node.ID,
		node.ProductID,
		node.StageName,
		node.SupplierName,
		node.TransportMode,
		node.DistanceKm,
		node.EnergySource,
		node.TransportCost,
		node.TransportTimeDays,
		node.Emission,
		node.FromLocation,
		node.ToLocation,
		node.HasSeaway,
		node.HasAirport,
		node.RouteDetails,
		node.CreatedAt,
		node.UpdatedAt,
	)
	return err
}

// GetByID returns a node by ID.
func (r *PGRepo) GetByID(ctx context.Context, nodeID string) (Node, error) {
	const query = `SELECT ` + nodeColumns + ` FROM supply_chain_nodes WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, nodeID)
	node, err := scanNode(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, ErrNotFound
	}
	return node, err
}

// ListByProduct returns a product's nodes newest-first.
func (r *PGRepo) ListByProduct(ctx context.Context, productID string) ([]Node, error) {
	const query = `SELECT ` + nodeColumns + ` FROM supply_chain_nodes WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Node{}
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a node.
func (r *PGRepo) Update(ctx context.Context, node Node) error {
	const query = `
UPDATE supply_chain_nodes
SET stage_name = $2, supplier_name = $3, transport_mode = $4, distance_km = $5, energy_source = $6,
    transport_cost = $7, transport_time_days = $8, from_location = $9, to_location = $10, updated_at = $11
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		node.ID,
		node.StageName,
		node.SupplierName,
		node.TransportMode,
		node.DistanceKm,
		node.EnergySource,
		node.TransportCost,
		node.TransportTimeDays,
		node.FromLocation,
		node.ToLocation,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateRouteIntelligence stores the provider-derived route enrichment.
func (r *PGRepo) UpdateRouteIntelligence(ctx context.Context, nodeID string, hasSeaway, hasAirport bool, routeDetails string) error {
	const query = `
UPDATE supply_chain_nodes
SET has_seaway = $2, has_airport = $3, route_details = $4, updated_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, nodeID, hasSeaway, hasAirport, routeDetails, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a node.
func (r *PGRepo) Delete(ctx context.Context, nodeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM supply_chain_nodes WHERE id = $1`, nodeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanNode(scan func(dest ...any) error) (Node, error) {
	var n Node
	err := scan(
		&n.ID, &n.ProductID, &n.StageName, &n.SupplierName, &n.TransportMode, &n.DistanceKm, &n.EnergySource,
		&n.TransportCost, &n.TransportTimeDays, &n.Emission, &n.FromLocation, &n.ToLocation, &n.HasSeaway,
		&n.HasAirport, &n.RouteDetails, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
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
