package repositories

import (
	"context"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// InventoryRepository provides read access to on-hand stock. The
// costing core never writes inventory.
type InventoryRepository interface {
	GetInventoryItem(ctx context.Context, key entities.InventoryKey) (*entities.InventoryItem, error)
	GetAllInventory(ctx context.Context) ([]*entities.InventoryItem, error)
}
