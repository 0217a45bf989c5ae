package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// RecipeIngredientDetail is the costed view of one ingredient line
type RecipeIngredientDetail struct {
	IngredientID       string          `json:"ingredient_id,omitempty"`
	SupplierMaterialID string          `json:"supplier_material_id"`
	MaterialID         string          `json:"material_id"`
	MaterialName       string          `json:"material_name"`
	SupplierID         string          `json:"supplier_id"`
	SupplierName       string          `json:"supplier_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               entities.Unit   `json:"unit"`
	QuantityKg         decimal.Decimal `json:"quantity_kg"`
	PricePerKg         decimal.Decimal `json:"price_per_kg"`
	TaxPercent         decimal.Decimal `json:"tax_percent"`
	Cost               decimal.Decimal `json:"cost"`
	TaxedCost          decimal.Decimal `json:"taxed_cost"`
	PriceSharePercent  decimal.Decimal `json:"price_share_percent"`
	PriceLocked        bool            `json:"price_locked"`
	LockedAt           *time.Time      `json:"locked_at,omitempty"`
}

// RecipeDetail is the costed view of a whole recipe: per-ingredient
// details plus the rollup totals and target variance
type RecipeDetail struct {
	RecipeID           string                   `json:"recipe_id"`
	Name               string                   `json:"name"`
	Status             entities.RecipeStatus    `json:"status"`
	Ingredients        []RecipeIngredientDetail `json:"ingredients"`
	TotalWeightGrams   decimal.Decimal          `json:"total_weight_grams"`
	TotalWeightKg      decimal.Decimal          `json:"total_weight_kg"`
	TotalCost          decimal.Decimal          `json:"total_cost"`
	TaxedTotalCost     decimal.Decimal          `json:"taxed_total_cost"`
	CostPerKg          decimal.Decimal          `json:"cost_per_kg"`
	TaxedCostPerKg     decimal.Decimal          `json:"taxed_cost_per_kg"`
	TargetCostPerKg    *decimal.Decimal         `json:"target_cost_per_kg,omitempty"`
	VarianceFromTarget *decimal.Decimal         `json:"variance_from_target,omitempty"`
	VariancePercent    *decimal.Decimal         `json:"variance_percent,omitempty"`
	IsAboveTarget      bool                     `json:"is_above_target"`
	Warnings           []Warning                `json:"warnings,omitempty"`
}

// RecipeVariantWithMetrics is the costed view of a saved variant,
// compared against its parent recipe
type RecipeVariantWithMetrics struct {
	VariantID        string          `json:"variant_id"`
	OriginalRecipeID string          `json:"original_recipe_id"`
	Name             string          `json:"name"`
	Detail           RecipeDetail    `json:"detail"`
	SavingsPerKg     decimal.Decimal `json:"savings_per_kg"`
	SavingsPercent   decimal.Decimal `json:"savings_percent"`
}
