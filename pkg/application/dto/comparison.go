package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// ChangeState classifies how a working-copy ingredient differs from
// its original. It is always computed by diffing, never stored.
type ChangeState int

const (
	Unchanged ChangeState = iota
	QuantityChanged
	SupplierChanged
	BothChanged
)

// String method for ChangeState enum
func (c ChangeState) String() string {
	switch c {
	case Unchanged:
		return "Unchanged"
	case QuantityChanged:
		return "QuantityChanged"
	case SupplierChanged:
		return "SupplierChanged"
	case BothChanged:
		return "BothChanged"
	default:
		return "Unknown"
	}
}

// ComparisonIngredient is one line of an experiment session: the
// working values next to the originals, with its computed change state
type ComparisonIngredient struct {
	Index                      int             `json:"index"`
	IngredientID               string          `json:"ingredient_id"`
	SupplierMaterialID         string          `json:"supplier_material_id"`
	OriginalSupplierMaterialID string          `json:"original_supplier_material_id"`
	Quantity                   decimal.Decimal `json:"quantity"`
	OriginalQuantity           decimal.Decimal `json:"original_quantity"`
	Unit                       entities.Unit   `json:"unit"`
	ChangeState                ChangeState     `json:"change_state"`
	Removed                    bool            `json:"removed"`
	PriceLocked                bool            `json:"price_locked"`
	Cost                       decimal.Decimal `json:"cost"`
	OriginalCost               decimal.Decimal `json:"original_cost"`
}

// ComparisonSummary is the live metrics view of an experiment session
type ComparisonSummary struct {
	RecipeID          string                 `json:"recipe_id"`
	Ingredients       []ComparisonIngredient `json:"ingredients"`
	OriginalCost      decimal.Decimal        `json:"original_cost"`
	ModifiedCost      decimal.Decimal        `json:"modified_cost"`
	OriginalCostPerKg decimal.Decimal        `json:"original_cost_per_kg"`
	ModifiedCostPerKg decimal.Decimal        `json:"modified_cost_per_kg"`
	SavingsPerKg      decimal.Decimal        `json:"savings_per_kg"`
	SavingsPercent    decimal.Decimal        `json:"savings_percent"`
	ChangeCount       int                    `json:"change_count"`
	TargetGap         *decimal.Decimal       `json:"target_gap,omitempty"`
	Warnings          []Warning              `json:"warnings,omitempty"`
}
