package entities

import (
	"github.com/shopspring/decimal"
)

// SupplySelection references a packaging or label item bought from a
// specific supplier, with its per-piece price
type SupplySelection struct {
	ItemID     string
	ItemName   string
	SupplierID string
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	MOQ        decimal.Decimal
}

// Product represents a sellable packaging of a recipe. Either RecipeID
// points at the recipe directly, or RecipeVariantID points at a saved
// variant (whose OriginalRecipeID resolves the recipe indirectly).
type Product struct {
	ID              string
	Name            string
	RecipeID        string
	RecipeVariantID string
}

// ProductVariant represents one fill size of a product, with its
// packaging selection and up to two label selections
type ProductVariant struct {
	ID           string
	ProductID    string
	Name         string
	FillQuantity decimal.Decimal
	FillUnit     Unit
	Packaging    *SupplySelection
	FrontLabel   *SupplySelection
	BackLabel    *SupplySelection
}
