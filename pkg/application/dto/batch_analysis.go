package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// BatchRequirementsAnalysis is the full expansion of a production
// batch into deduplicated, supplier-keyed requirement ledgers
type BatchRequirementsAnalysis struct {
	BatchID            string                     `json:"batch_id"`
	Materials          []entities.RequirementItem `json:"materials"`
	Packaging          []entities.RequirementItem `json:"packaging"`
	Labels             []entities.RequirementItem `json:"labels"`
	TotalMaterialCost  decimal.Decimal            `json:"total_material_cost"`
	TotalPackagingCost decimal.Decimal            `json:"total_packaging_cost"`
	TotalLabelCost     decimal.Decimal            `json:"total_label_cost"`
	TotalCost          decimal.Decimal            `json:"total_cost"`
	CriticalShortages  []entities.RequirementItem `json:"critical_shortages"`
	TotalItemsToOrder  int                        `json:"total_items_to_order"`
	Warnings           []Warning                  `json:"warnings,omitempty"`
}

// BatchItemCost is the cost breakdown of one product variant entry in
// a batch
type BatchItemCost struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	VariantID     string          `json:"variant_id"`
	VariantName   string          `json:"variant_name"`
	Units         decimal.Decimal `json:"units"`
	RecipeCost    decimal.Decimal `json:"recipe_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	LabelCost     decimal.Decimal `json:"label_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// BatchCostAnalysis is the per-entry cost view of a production batch
type BatchCostAnalysis struct {
	BatchID   string          `json:"batch_id"`
	Items     []BatchItemCost `json:"items"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Warnings  []Warning       `json:"warnings,omitempty"`
}

// ProcurementSummary groups every requirement item by supplier
type ProcurementSummary struct {
	BatchID       string                         `json:"batch_id"`
	Suppliers     []entities.SupplierRequirement `json:"suppliers"`
	TotalCost     decimal.Decimal                `json:"total_cost"`
	CriticalCount int                            `json:"critical_count"`
}
