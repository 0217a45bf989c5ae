// Package scenario loads a full dataset from a single JSON file and
// seeds the in-memory repositories with it. It exists for demos, CLI
// runs against exported data, and tests that want a realistic dataset
// without a database.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/infrastructure/repositories/memory"
)

// File is the on-disk shape of a scenario dataset
type File struct {
	Materials         []materialRecord         `json:"materials"`
	Suppliers         []supplierRecord         `json:"suppliers"`
	SupplierMaterials []supplierMaterialRecord `json:"supplier_materials"`
	Recipes           []recipeRecord           `json:"recipes"`
	Ingredients       []ingredientRecord       `json:"ingredients"`
	Variants          []variantRecord          `json:"recipe_variants"`
	Products          []productRecord          `json:"products"`
	ProductVariants   []productVariantRecord   `json:"product_variants"`
	Inventory         []inventoryRecord        `json:"inventory"`
	Batches           []batchRecord            `json:"batches"`
}

type materialRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type supplierRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	LeadTimeDays int     `json:"lead_time_days"`
	Active       bool    `json:"active"`
}

type supplierMaterialRecord struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	SupplierID string          `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Unit       string          `json:"unit"`
	MOQ        decimal.Decimal `json:"moq"`
}

type recipeRecord struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Status          string           `json:"status"`
	TargetCostPerKg *decimal.Decimal `json:"target_cost_per_kg,omitempty"`
	Version         int              `json:"version"`
}

type lockedRecord struct {
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	LockedAt   time.Time       `json:"locked_at"`
	Reason     string          `json:"reason"`
}

type ingredientRecord struct {
	ID                 string          `json:"id"`
	RecipeID           string          `json:"recipe_id"`
	SupplierMaterialID string          `json:"supplier_material_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit"`
	Locked             *lockedRecord   `json:"locked,omitempty"`
}

type snapshotEntryRecord struct {
	SupplierMaterialID string          `json:"supplier_material_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit"`
	Locked             *lockedRecord   `json:"locked,omitempty"`
}

type variantRecord struct {
	ID                  string                `json:"id"`
	OriginalRecipeID    string                `json:"original_recipe_id"`
	Name                string                `json:"name"`
	IngredientsSnapshot []snapshotEntryRecord `json:"ingredients_snapshot"`
	CreatedAt           time.Time             `json:"created_at"`
}

type productRecord struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	RecipeID        string `json:"recipe_id,omitempty"`
	RecipeVariantID string `json:"recipe_variant_id,omitempty"`
}

type selectionRecord struct {
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	SupplierID string          `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	MOQ        decimal.Decimal `json:"moq"`
}

type productVariantRecord struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Name         string           `json:"name"`
	FillQuantity decimal.Decimal  `json:"fill_quantity"`
	FillUnit     string           `json:"fill_unit"`
	Packaging    *selectionRecord `json:"packaging,omitempty"`
	FrontLabel   *selectionRecord `json:"front_label,omitempty"`
	BackLabel    *selectionRecord `json:"back_label,omitempty"`
}

type inventoryRecord struct {
	ItemType     string          `json:"item_type"`
	ItemID       string          `json:"item_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

type batchEntryRecord struct {
	VariantID         string          `json:"variant_id"`
	TotalFillQuantity decimal.Decimal `json:"total_fill_quantity"`
	FillUnit          string          `json:"fill_unit"`
}

type batchItemRecord struct {
	ProductID string             `json:"product_id"`
	Variants  []batchEntryRecord `json:"variants"`
}

type batchRecord struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Items []batchItemRecord `json:"items"`
}

// Repositories bundles the seeded in-memory repositories of one
// loaded scenario
type Repositories struct {
	Materials *memory.MaterialRepository
	Suppliers *memory.SupplierRepository
	Recipes   *memory.RecipeRepository
	Products  *memory.ProductRepository
	Inventory *memory.InventoryRepository
	Batches   *memory.BatchRepository
}

// Load reads a scenario file and seeds a fresh set of in-memory
// repositories from it
func Load(path string) (*Repositories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file %s: %w", path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	return Seed(file)
}

// Seed builds in-memory repositories from an already parsed scenario
func Seed(file File) (*Repositories, error) {
	repos := &Repositories{
		Materials: memory.NewMaterialRepository(len(file.Materials)),
		Suppliers: memory.NewSupplierRepository(len(file.Suppliers)),
		Recipes:   memory.NewRecipeRepository(len(file.Recipes)),
		Products:  memory.NewProductRepository(len(file.Products)),
		Inventory: memory.NewInventoryRepository(),
		Batches:   memory.NewBatchRepository(len(file.Batches)),
	}

	for _, m := range file.Materials {
		repos.Materials.AddMaterial(entities.Material{ID: m.ID, Name: m.Name})
	}
	for _, s := range file.Suppliers {
		repos.Suppliers.AddSupplier(entities.Supplier{
			ID: s.ID, Name: s.Name, Rating: s.Rating, LeadTimeDays: s.LeadTimeDays, Active: s.Active,
		})
	}
	for _, rec := range file.SupplierMaterials {
		sm, err := entities.NewSupplierMaterial(rec.ID, rec.MaterialID, rec.SupplierID,
			rec.UnitPrice, rec.TaxPercent, entities.Unit(rec.Unit), rec.MOQ)
		if err != nil {
			return nil, fmt.Errorf("supplier material %s: %w", rec.ID, err)
		}
		repos.Suppliers.AddSupplierMaterial(*sm)
	}
	for _, rec := range file.Recipes {
		recipe, err := entities.NewRecipe(rec.ID, rec.Name, entities.RecipeStatus(rec.Status), rec.TargetCostPerKg)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", rec.ID, err)
		}
		if rec.Version > 0 {
			recipe.Version = rec.Version
		}
		repos.Recipes.AddRecipe(*recipe)
	}
	for _, rec := range file.Ingredients {
		repos.Recipes.LoadIngredients([]*entities.RecipeIngredient{{
			ID:                 rec.ID,
			RecipeID:           rec.RecipeID,
			SupplierMaterialID: rec.SupplierMaterialID,
			Quantity:           rec.Quantity,
			Unit:               entities.Unit(rec.Unit),
			Locked:             rec.Locked.toEntity(),
		}})
	}
	for _, rec := range file.Variants {
		variant := entities.RecipeVariant{
			ID:               rec.ID,
			OriginalRecipeID: rec.OriginalRecipeID,
			Name:             rec.Name,
			CreatedAt:        rec.CreatedAt,
		}
		for _, entry := range rec.IngredientsSnapshot {
			variant.IngredientsSnapshot = append(variant.IngredientsSnapshot, entities.IngredientSnapshot{
				SupplierMaterialID: entry.SupplierMaterialID,
				Quantity:           entry.Quantity,
				Unit:               entities.Unit(entry.Unit),
				Locked:             entry.Locked.toEntity(),
			})
		}
		repos.Recipes.AddVariant(variant)
	}
	for _, rec := range file.Products {
		repos.Products.AddProduct(entities.Product{
			ID: rec.ID, Name: rec.Name, RecipeID: rec.RecipeID, RecipeVariantID: rec.RecipeVariantID,
		})
	}
	for _, rec := range file.ProductVariants {
		repos.Products.LoadProductVariants([]*entities.ProductVariant{{
			ID:           rec.ID,
			ProductID:    rec.ProductID,
			Name:         rec.Name,
			FillQuantity: rec.FillQuantity,
			FillUnit:     entities.Unit(rec.FillUnit),
			Packaging:    rec.Packaging.toEntity(),
			FrontLabel:   rec.FrontLabel.toEntity(),
			BackLabel:    rec.BackLabel.toEntity(),
		}})
	}
	for _, rec := range file.Inventory {
		repos.Inventory.AddInventoryItem(entities.InventoryItem{
			ItemType: entities.ItemType(rec.ItemType), ItemID: rec.ItemID, CurrentStock: rec.CurrentStock,
		})
	}
	for _, rec := range file.Batches {
		batch := entities.ProductionBatch{ID: rec.ID, Name: rec.Name}
		for _, item := range rec.Items {
			bi := entities.BatchItem{ProductID: item.ProductID}
			for _, entry := range item.Variants {
				bi.Variants = append(bi.Variants, entities.BatchVariantEntry{
					VariantID:         entry.VariantID,
					TotalFillQuantity: entry.TotalFillQuantity,
					FillUnit:          entities.Unit(entry.FillUnit),
				})
			}
			batch.Items = append(batch.Items, bi)
		}
		repos.Batches.AddBatch(batch)
	}

	return repos, nil
}

func (l *lockedRecord) toEntity() *entities.LockedPricing {
	if l == nil {
		return nil
	}
	return &entities.LockedPricing{
		UnitPrice:  l.UnitPrice,
		TaxPercent: l.TaxPercent,
		LockedAt:   l.LockedAt,
		Reason:     l.Reason,
	}
}

func (s *selectionRecord) toEntity() *entities.SupplySelection {
	if s == nil {
		return nil
	}
	return &entities.SupplySelection{
		ItemID:     s.ItemID,
		ItemName:   s.ItemName,
		SupplierID: s.SupplierID,
		UnitPrice:  s.UnitPrice,
		TaxPercent: s.TaxPercent,
		MOQ:        s.MOQ,
	}
}
