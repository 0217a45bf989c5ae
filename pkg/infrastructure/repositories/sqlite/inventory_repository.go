package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// InventoryRepository reads on-hand stock from SQLite
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a SQLite-backed inventory repository
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// GetInventoryItem returns the stock record for an item
func (r *InventoryRepository) GetInventoryItem(ctx context.Context, key entities.InventoryKey) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	var itemType, stock string
	err := r.db.QueryRowContext(ctx,
		`SELECT item_type, item_id, current_stock FROM inventory WHERE item_type = ? AND item_id = ?`,
		string(key.ItemType), key.ItemID,
	).Scan(&itemType, &item.ItemID, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory %s/%s: %w", key.ItemType, key.ItemID, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory %s/%s: %w", key.ItemType, key.ItemID, err)
	}
	item.ItemType = entities.ItemType(itemType)
	if item.CurrentStock, err = parseDecimal("current_stock", stock); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAllInventory returns all inventory items
func (r *InventoryRepository) GetAllInventory(ctx context.Context) ([]*entities.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_type, item_id, current_stock FROM inventory ORDER BY item_type, item_id`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		var item entities.InventoryItem
		var itemType, stock string
		if err := rows.Scan(&itemType, &item.ItemID, &stock); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		item.ItemType = entities.ItemType(itemType)
		if item.CurrentStock, err = parseDecimal("current_stock", stock); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
