package entities

import (
	"github.com/shopspring/decimal"
)

// ItemType classifies what a requirement or inventory record refers to
type ItemType string

const (
	ItemMaterial  ItemType = "material"
	ItemPackaging ItemType = "packaging"
	ItemLabel     ItemType = "label"
)

// InventoryKey identifies one stocked item
type InventoryKey struct {
	ItemType ItemType
	ItemID   string
}

// InventoryItem represents on-hand stock for one item. The costing
// core only ever reads it.
type InventoryItem struct {
	ItemType     ItemType
	ItemID       string
	CurrentStock decimal.Decimal
}

// Key returns the inventory lookup key for this record
func (ii InventoryItem) Key() InventoryKey {
	return InventoryKey{ItemType: ii.ItemType, ItemID: ii.ItemID}
}
