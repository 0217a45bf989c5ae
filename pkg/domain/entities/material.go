package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Material represents the canonical identity of a raw substance,
// independent of which supplier sells it
type Material struct {
	ID   string
	Name string
}

// Supplier represents a vendor that sells one or more materials
type Supplier struct {
	ID           string
	Name         string
	Rating       float64
	LeadTimeDays int
	Active       bool
}

// SupplierMaterial represents one supplier's offer of one material.
// It is the live, authoritative price source unless overridden by a
// price lock on a specific recipe ingredient.
type SupplierMaterial struct {
	ID         string
	MaterialID string
	SupplierID string
	UnitPrice  decimal.Decimal // per declared capacity unit
	TaxPercent decimal.Decimal
	Unit       Unit
	MOQ        decimal.Decimal // minimum order quantity per order
}

// NewSupplierMaterial creates a validated SupplierMaterial
func NewSupplierMaterial(id, materialID, supplierID string, unitPrice, taxPercent decimal.Decimal, unit Unit, moq decimal.Decimal) (*SupplierMaterial, error) {
	if id == "" {
		return nil, fmt.Errorf("supplier material id cannot be empty")
	}
	if materialID == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if supplierID == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if taxPercent.IsNegative() {
		return nil, fmt.Errorf("tax percent cannot be negative, got %s", taxPercent)
	}
	if !unit.IsKnown() {
		return nil, fmt.Errorf("unknown capacity unit %q", unit)
	}

	return &SupplierMaterial{
		ID:         id,
		MaterialID: materialID,
		SupplierID: supplierID,
		UnitPrice:  unitPrice,
		TaxPercent: taxPercent,
		Unit:       unit,
		MOQ:        moq,
	}, nil
}
