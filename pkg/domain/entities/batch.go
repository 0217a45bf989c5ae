package entities

import (
	"github.com/shopspring/decimal"
)

// BatchVariantEntry is a request for a quantity of one product variant
type BatchVariantEntry struct {
	VariantID         string
	TotalFillQuantity decimal.Decimal
	FillUnit          Unit
}

// BatchItem groups the variant entries of one product within a batch
type BatchItem struct {
	ProductID string
	Variants  []BatchVariantEntry
}

// ProductionBatch represents a planned production run: a list of
// product/variant/quantity entries to be expanded into procurement
// requirements
type ProductionBatch struct {
	ID    string
	Name  string
	Items []BatchItem
}
