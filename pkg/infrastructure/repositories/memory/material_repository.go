package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// MaterialRepository provides in-memory material storage
type MaterialRepository struct {
	materials    []entities.Material
	materialsMap map[string]int
}

// NewMaterialRepository creates a new in-memory material repository
func NewMaterialRepository(expectedMaterials int) *MaterialRepository {
	return &MaterialRepository{
		materials:    make([]entities.Material, 0, expectedMaterials),
		materialsMap: make(map[string]int, expectedMaterials),
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// LoadMaterials loads materials into the repository
func (r *MaterialRepository) LoadMaterials(materials []*entities.Material) error {
	for _, m := range materials {
		r.AddMaterial(*m)
	}
	return nil
}

// AddMaterial adds a material to the repository
func (r *MaterialRepository) AddMaterial(material entities.Material) {
	r.materialsMap[material.ID] = len(r.materials)
	r.materials = append(r.materials, material)
}

// GetMaterial returns master data for a material
func (r *MaterialRepository) GetMaterial(_ context.Context, id string) (*entities.Material, error) {
	index, exists := r.materialsMap[id]
	if !exists {
		return nil, fmt.Errorf("material %s: %w", id, repositories.ErrNotFound)
	}
	return &r.materials[index], nil
}

// GetAllMaterials returns all materials
func (r *MaterialRepository) GetAllMaterials(_ context.Context) ([]*entities.Material, error) {
	var materials []*entities.Material
	for i := range r.materials {
		materials = append(materials, &r.materials[i])
	}
	return materials, nil
}
