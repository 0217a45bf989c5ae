package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// MaterialRepository reads material master data from SQLite
type MaterialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a SQLite-backed material repository
func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// GetMaterial returns master data for a material
func (r *MaterialRepository) GetMaterial(ctx context.Context, id string) (*entities.Material, error) {
	var m entities.Material
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM materials WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("material %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query material %s: %w", id, err)
	}
	return &m, nil
}

// GetAllMaterials returns all materials
func (r *MaterialRepository) GetAllMaterials(ctx context.Context) ([]*entities.Material, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM materials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	var materials []*entities.Material
	for rows.Next() {
		var m entities.Material
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}
