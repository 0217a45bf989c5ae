package repositories

import (
	"context"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// MaterialRepository provides read access to material master data
type MaterialRepository interface {
	GetMaterial(ctx context.Context, id string) (*entities.Material, error)
	GetAllMaterials(ctx context.Context) ([]*entities.Material, error)
}

// SupplierRepository provides read access to suppliers and their
// material offers
type SupplierRepository interface {
	GetSupplier(ctx context.Context, id string) (*entities.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]*entities.Supplier, error)
	GetSupplierMaterial(ctx context.Context, id string) (*entities.SupplierMaterial, error)
	GetAllSupplierMaterials(ctx context.Context) ([]*entities.SupplierMaterial, error)
}
