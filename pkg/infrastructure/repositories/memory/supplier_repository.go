package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// SupplierRepository provides in-memory storage for suppliers and
// their material offers
type SupplierRepository struct {
	suppliers            []entities.Supplier
	suppliersMap         map[string]int
	supplierMaterials    []entities.SupplierMaterial
	supplierMaterialsMap map[string]int
}

// NewSupplierRepository creates a new in-memory supplier repository
func NewSupplierRepository(expectedSuppliers int) *SupplierRepository {
	return &SupplierRepository{
		suppliers:            make([]entities.Supplier, 0, expectedSuppliers),
		suppliersMap:         make(map[string]int, expectedSuppliers),
		supplierMaterialsMap: make(map[string]int),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadSuppliers loads suppliers into the repository
func (r *SupplierRepository) LoadSuppliers(suppliers []*entities.Supplier) error {
	for _, s := range suppliers {
		r.AddSupplier(*s)
	}
	return nil
}

// AddSupplier adds a supplier to the repository
func (r *SupplierRepository) AddSupplier(supplier entities.Supplier) {
	r.suppliersMap[supplier.ID] = len(r.suppliers)
	r.suppliers = append(r.suppliers, supplier)
}

// LoadSupplierMaterials loads supplier material offers into the
// repository
func (r *SupplierRepository) LoadSupplierMaterials(offers []*entities.SupplierMaterial) error {
	for _, sm := range offers {
		r.AddSupplierMaterial(*sm)
	}
	return nil
}

// AddSupplierMaterial adds a supplier material offer to the repository
func (r *SupplierRepository) AddSupplierMaterial(offer entities.SupplierMaterial) {
	r.supplierMaterialsMap[offer.ID] = len(r.supplierMaterials)
	r.supplierMaterials = append(r.supplierMaterials, offer)
}

// GetSupplier returns a supplier by ID
func (r *SupplierRepository) GetSupplier(_ context.Context, id string) (*entities.Supplier, error) {
	index, exists := r.suppliersMap[id]
	if !exists {
		return nil, fmt.Errorf("supplier %s: %w", id, repositories.ErrNotFound)
	}
	return &r.suppliers[index], nil
}

// GetAllSuppliers returns all suppliers
func (r *SupplierRepository) GetAllSuppliers(_ context.Context) ([]*entities.Supplier, error) {
	var suppliers []*entities.Supplier
	for i := range r.suppliers {
		suppliers = append(suppliers, &r.suppliers[i])
	}
	return suppliers, nil
}

// GetSupplierMaterial returns a supplier material offer by ID
func (r *SupplierRepository) GetSupplierMaterial(_ context.Context, id string) (*entities.SupplierMaterial, error) {
	index, exists := r.supplierMaterialsMap[id]
	if !exists {
		return nil, fmt.Errorf("supplier material %s: %w", id, repositories.ErrNotFound)
	}
	return &r.supplierMaterials[index], nil
}

// GetAllSupplierMaterials returns all supplier material offers
func (r *SupplierRepository) GetAllSupplierMaterials(_ context.Context) ([]*entities.SupplierMaterial, error) {
	var offers []*entities.SupplierMaterial
	for i := range r.supplierMaterials {
		offers = append(offers, &r.supplierMaterials[i])
	}
	return offers, nil
}
