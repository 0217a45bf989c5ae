package snapshot

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// UnknownName is the placeholder used when a referenced material or
// supplier cannot be resolved
const UnknownName = "Unknown"

// Snapshot is an immutable view of every entity set a computation
// needs. The compute services only ever read it; a fresh snapshot is
// loaded whenever the underlying store changes.
type Snapshot struct {
	Materials         map[string]entities.Material
	Suppliers         map[string]entities.Supplier
	SupplierMaterials map[string]entities.SupplierMaterial
	Recipes           map[string]entities.Recipe
	RecipeIngredients map[string][]entities.RecipeIngredient
	Variants          map[string]entities.RecipeVariant
	VariantsByRecipe  map[string][]entities.RecipeVariant
	Products          map[string]entities.Product
	ProductVariants   map[string]entities.ProductVariant
	Stock             map[entities.InventoryKey]decimal.Decimal
}

// New returns an empty snapshot with all maps initialized
func New() *Snapshot {
	return &Snapshot{
		Materials:         make(map[string]entities.Material),
		Suppliers:         make(map[string]entities.Supplier),
		SupplierMaterials: make(map[string]entities.SupplierMaterial),
		Recipes:           make(map[string]entities.Recipe),
		RecipeIngredients: make(map[string][]entities.RecipeIngredient),
		Variants:          make(map[string]entities.RecipeVariant),
		VariantsByRecipe:  make(map[string][]entities.RecipeVariant),
		Products:          make(map[string]entities.Product),
		ProductVariants:   make(map[string]entities.ProductVariant),
		Stock:             make(map[entities.InventoryKey]decimal.Decimal),
	}
}

// SupplierMaterial looks up a supplier material by id
func (s *Snapshot) SupplierMaterial(id string) (entities.SupplierMaterial, bool) {
	sm, ok := s.SupplierMaterials[id]
	return sm, ok
}

// MaterialName resolves a material name, falling back to the Unknown
// placeholder
func (s *Snapshot) MaterialName(id string) string {
	if m, ok := s.Materials[id]; ok {
		return m.Name
	}
	return UnknownName
}

// SupplierName resolves a supplier name, falling back to the Unknown
// placeholder
func (s *Snapshot) SupplierName(id string) string {
	if sup, ok := s.Suppliers[id]; ok {
		return sup.Name
	}
	return UnknownName
}

// SupplierMaterialsForMaterial returns every offer of the given
// material, sorted ascending by unit price
func (s *Snapshot) SupplierMaterialsForMaterial(materialID string) []entities.SupplierMaterial {
	var offers []entities.SupplierMaterial
	for _, sm := range s.SupplierMaterials {
		if sm.MaterialID == materialID {
			offers = append(offers, sm)
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].UnitPrice.Equal(offers[j].UnitPrice) {
			return offers[i].UnitPrice.LessThan(offers[j].UnitPrice)
		}
		return offers[i].ID < offers[j].ID
	})
	return offers
}

// StockFor returns the on-hand quantity for an item, defaulting to
// zero when no inventory record exists
func (s *Snapshot) StockFor(itemType entities.ItemType, itemID string) decimal.Decimal {
	if qty, ok := s.Stock[entities.InventoryKey{ItemType: itemType, ItemID: itemID}]; ok {
		return qty
	}
	return decimal.Zero
}
