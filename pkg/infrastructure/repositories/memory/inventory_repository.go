package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory storage
type InventoryRepository struct {
	items    []entities.InventoryItem
	itemsMap map[entities.InventoryKey]int
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		itemsMap: make(map[entities.InventoryKey]int),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadInventory loads inventory items into the repository
func (r *InventoryRepository) LoadInventory(items []*entities.InventoryItem) error {
	for _, item := range items {
		r.AddInventoryItem(*item)
	}
	return nil
}

// AddInventoryItem adds an inventory item to the repository. A second
// item with the same key replaces the first.
func (r *InventoryRepository) AddInventoryItem(item entities.InventoryItem) {
	if index, exists := r.itemsMap[item.Key()]; exists {
		r.items[index] = item
		return
	}
	r.itemsMap[item.Key()] = len(r.items)
	r.items = append(r.items, item)
}

// GetInventoryItem returns the stock record for an item
func (r *InventoryRepository) GetInventoryItem(_ context.Context, key entities.InventoryKey) (*entities.InventoryItem, error) {
	index, exists := r.itemsMap[key]
	if !exists {
		return nil, fmt.Errorf("inventory %s/%s: %w", key.ItemType, key.ItemID, repositories.ErrNotFound)
	}
	return &r.items[index], nil
}

// GetAllInventory returns all inventory items
func (r *InventoryRepository) GetAllInventory(_ context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}
