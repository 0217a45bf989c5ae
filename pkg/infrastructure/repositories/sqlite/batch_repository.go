package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// BatchRepository reads production batches from SQLite. Batch entries
// are stored as a JSON column.
type BatchRepository struct {
	db *sql.DB
}

// NewBatchRepository creates a SQLite-backed batch repository
func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Verify interface compliance
var _ repositories.BatchRepository = (*BatchRepository)(nil)

// GetBatch returns a production batch by ID
func (r *BatchRepository) GetBatch(ctx context.Context, id string) (*entities.ProductionBatch, error) {
	var batch entities.ProductionBatch
	var itemsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, items FROM production_batches WHERE id = ?`, id,
	).Scan(&batch.ID, &batch.Name, &itemsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query batch %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &batch.Items); err != nil {
		return nil, fmt.Errorf("decode items for batch %s: %w", id, err)
	}
	return &batch, nil
}

// GetAllBatches returns all production batches
func (r *BatchRepository) GetAllBatches(ctx context.Context) ([]*entities.ProductionBatch, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, items FROM production_batches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []*entities.ProductionBatch
	for rows.Next() {
		var batch entities.ProductionBatch
		var itemsJSON string
		if err := rows.Scan(&batch.ID, &batch.Name, &itemsJSON); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &batch.Items); err != nil {
			return nil, fmt.Errorf("decode items for batch %s: %w", batch.ID, err)
		}
		batches = append(batches, &batch)
	}
	return batches, rows.Err()
}
