package repositories

import (
	"context"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// ProductRepository provides read access to products and their
// sellable variants
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	GetAllProducts(ctx context.Context) ([]*entities.Product, error)
	GetAllProductVariants(ctx context.Context) ([]*entities.ProductVariant, error)
}

// BatchRepository provides read access to production batches
type BatchRepository interface {
	GetBatch(ctx context.Context, id string) (*entities.ProductionBatch, error)
	GetAllBatches(ctx context.Context) ([]*entities.ProductionBatch, error)
}
