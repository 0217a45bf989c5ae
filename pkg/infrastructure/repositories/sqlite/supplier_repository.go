package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// SupplierRepository reads suppliers and their material offers from
// SQLite
type SupplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a SQLite-backed supplier repository
func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// GetSupplier returns a supplier by ID
func (r *SupplierRepository) GetSupplier(ctx context.Context, id string) (*entities.Supplier, error) {
	var s entities.Supplier
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, rating, lead_time_days, active FROM suppliers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Rating, &s.LeadTimeDays, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("supplier %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query supplier %s: %w", id, err)
	}
	return &s, nil
}

// GetAllSuppliers returns all suppliers
func (r *SupplierRepository) GetAllSuppliers(ctx context.Context) ([]*entities.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, rating, lead_time_days, active FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entities.Supplier
	for rows.Next() {
		var s entities.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Rating, &s.LeadTimeDays, &s.Active); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

// GetSupplierMaterial returns a supplier material offer by ID
func (r *SupplierRepository) GetSupplierMaterial(ctx context.Context, id string) (*entities.SupplierMaterial, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, material_id, supplier_id, unit_price, tax_percent, unit, moq
		 FROM supplier_materials WHERE id = ?`, id)

	sm, err := scanSupplierMaterial(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("supplier material %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query supplier material %s: %w", id, err)
	}
	return sm, nil
}

// GetAllSupplierMaterials returns all supplier material offers
func (r *SupplierRepository) GetAllSupplierMaterials(ctx context.Context) ([]*entities.SupplierMaterial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, material_id, supplier_id, unit_price, tax_percent, unit, moq
		 FROM supplier_materials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query supplier materials: %w", err)
	}
	defer rows.Close()

	var offers []*entities.SupplierMaterial
	for rows.Next() {
		sm, err := scanSupplierMaterial(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan supplier material: %w", err)
		}
		offers = append(offers, sm)
	}
	return offers, rows.Err()
}

func scanSupplierMaterial(scan func(dest ...any) error) (*entities.SupplierMaterial, error) {
	var sm entities.SupplierMaterial
	var unitPrice, taxPercent, unit, moq string
	if err := scan(&sm.ID, &sm.MaterialID, &sm.SupplierID, &unitPrice, &taxPercent, &unit, &moq); err != nil {
		return nil, err
	}

	var err error
	if sm.UnitPrice, err = parseDecimal("unit_price", unitPrice); err != nil {
		return nil, err
	}
	if sm.TaxPercent, err = parseDecimal("tax_percent", taxPercent); err != nil {
		return nil, err
	}
	if sm.MOQ, err = parseDecimal("moq", moq); err != nil {
		return nil, err
	}
	sm.Unit = entities.Unit(unit)
	return &sm, nil
}
