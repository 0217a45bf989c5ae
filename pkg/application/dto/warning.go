package dto

// WarningCode classifies a non-fatal degradation that happened during
// a computation
type WarningCode string

const (
	WarnMissingSupplierMaterial WarningCode = "missing_supplier_material"
	WarnMissingProduct          WarningCode = "missing_product"
	WarnMissingProductVariant   WarningCode = "missing_product_variant"
	WarnMissingRecipe           WarningCode = "missing_recipe"
	WarnUnknownUnit             WarningCode = "unknown_unit"
	WarnZeroFillQuantity        WarningCode = "zero_fill_quantity"
)

// Warning reports a lenient degradation: the computation continued,
// but a reference failed to resolve or a value was approximated. The
// caller decides whether to surface it or treat it as fatal.
type Warning struct {
	Code   WarningCode `json:"code"`
	Detail string      `json:"detail"`
}
