package entities

import (
	"github.com/shopspring/decimal"
)

// RequirementKey is the aggregation key for requirement ledgers. Two
// contributions with the same key must always merge into one entry.
type RequirementKey struct {
	ItemID     string
	SupplierID string
}

// RequirementItem is a derived, non-persisted record of how much of
// one material/packaging/label, from one supplier, a batch needs
// versus how much is on hand. Shortage may be negative (surplus).
type RequirementItem struct {
	ItemType     ItemType        `json:"item_type"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortage     decimal.Decimal `json:"shortage"`
	Unit         Unit            `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	MOQ          decimal.Decimal `json:"moq"`
	BelowMOQ     bool            `json:"below_moq"`
}

// Key returns the ledger aggregation key for this item
func (r RequirementItem) Key() RequirementKey {
	return RequirementKey{ItemID: r.ItemID, SupplierID: r.SupplierID}
}

// SupplierRequirement groups the requirement items of one supplier,
// bucketed by item type, with their summed cost
type SupplierRequirement struct {
	SupplierID   string            `json:"supplier_id"`
	SupplierName string            `json:"supplier_name"`
	Materials    []RequirementItem `json:"materials"`
	Packaging    []RequirementItem `json:"packaging"`
	Labels       []RequirementItem `json:"labels"`
	TotalCost    decimal.Decimal   `json:"total_cost"`
}
