package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecipeStatus represents the lifecycle state of a recipe
type RecipeStatus string

const (
	RecipeDraft    RecipeStatus = "draft"
	RecipeActive   RecipeStatus = "active"
	RecipeArchived RecipeStatus = "archived"
)

// LockedPricing is a price/tax snapshot frozen onto a specific recipe
// ingredient. While present, cost computation uses the locked values
// instead of the live SupplierMaterial values, regardless of later
// price changes.
type LockedPricing struct {
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	LockedAt   time.Time
	Reason     string
}

// RecipeIngredient represents one line of a recipe: a quantity of a
// supplier material, optionally with locked pricing
type RecipeIngredient struct {
	ID                 string
	RecipeID           string
	SupplierMaterialID string
	Quantity           decimal.Decimal
	Unit               Unit
	Locked             *LockedPricing
}

// Line converts the ingredient to a costable IngredientLine
func (ri RecipeIngredient) Line() IngredientLine {
	return IngredientLine{
		IngredientID:       ri.ID,
		SupplierMaterialID: ri.SupplierMaterialID,
		Quantity:           ri.Quantity,
		Unit:               ri.Unit,
		Locked:             ri.Locked,
	}
}

// Recipe represents a named formulation with optional cost targets
type Recipe struct {
	ID                 string
	Name               string
	Status             RecipeStatus
	TargetCostPerKg    *decimal.Decimal
	TargetProfitMargin *decimal.Decimal
	Version            int
}

// NewRecipe creates a validated Recipe
func NewRecipe(id, name string, status RecipeStatus, targetCostPerKg *decimal.Decimal) (*Recipe, error) {
	if id == "" {
		return nil, fmt.Errorf("recipe id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}
	if targetCostPerKg != nil && targetCostPerKg.IsNegative() {
		return nil, fmt.Errorf("target cost per kg cannot be negative, got %s", targetCostPerKg)
	}

	return &Recipe{
		ID:              id,
		Name:            name,
		Status:          status,
		TargetCostPerKg: targetCostPerKg,
		Version:         1,
	}, nil
}

// IngredientSnapshot is an immutable copy of one ingredient line taken
// when a variant is saved. It keeps the variant independent of later
// edits to the parent recipe, and of live supplier prices when locked
// pricing was captured.
type IngredientSnapshot struct {
	SupplierMaterialID string
	Quantity           decimal.Decimal
	Unit               Unit
	Locked             *LockedPricing
}

// Line converts the snapshot entry to a costable IngredientLine
func (is IngredientSnapshot) Line() IngredientLine {
	return IngredientLine{
		SupplierMaterialID: is.SupplierMaterialID,
		Quantity:           is.Quantity,
		Unit:               is.Unit,
		Locked:             is.Locked,
	}
}

// RecipeVariant represents a modified ingredient set compared against
// its parent recipe. IngredientsSnapshot is the preferred form; the
// ingredient-ID list exists only for variants saved by older versions.
type RecipeVariant struct {
	ID                  string
	OriginalRecipeID    string
	Name                string
	IngredientIDs       []string
	IngredientsSnapshot []IngredientSnapshot
	CreatedAt           time.Time
}

// IngredientLine is the supplier-material/quantity/unit triple that the
// costing engine prices. Both live ingredients and variant snapshots
// reduce to this shape.
type IngredientLine struct {
	IngredientID       string
	SupplierMaterialID string
	Quantity           decimal.Decimal
	Unit               Unit
	Locked             *LockedPricing
}
