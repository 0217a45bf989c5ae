package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// LitreKgEquivalence is the assumed mass of one litre in kilograms.
// Treating volume as mass-equivalent 1:1 is a business approximation
// used for costing, not a physical conversion.
var LitreKgEquivalence = decimal.NewFromInt(1)

// ErrUnknownUnit is returned when a unit string is not one of the
// supported units
var ErrUnknownUnit = errors.New("unknown unit")

var thousand = decimal.NewFromInt(1000)

// ToBaseUnit converts a quantity to its base unit: kilograms for mass
// and volume, pieces for count
func ToBaseUnit(qty decimal.Decimal, unit entities.Unit) (decimal.Decimal, error) {
	switch unit {
	case entities.UnitKg:
		return qty, nil
	case entities.UnitGm:
		return qty.Div(thousand), nil
	case entities.UnitL:
		return qty.Mul(LitreKgEquivalence), nil
	case entities.UnitMl:
		return qty.Div(thousand).Mul(LitreKgEquivalence), nil
	case entities.UnitPcs:
		return qty, nil
	default:
		return qty, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}

// FromBaseUnit converts a base-unit quantity back to the given unit.
// It is the exact inverse of ToBaseUnit for every supported unit.
func FromBaseUnit(qty decimal.Decimal, unit entities.Unit) (decimal.Decimal, error) {
	switch unit {
	case entities.UnitKg:
		return qty, nil
	case entities.UnitGm:
		return qty.Mul(thousand), nil
	case entities.UnitL:
		return qty.Div(LitreKgEquivalence), nil
	case entities.UnitMl:
		return qty.Div(LitreKgEquivalence).Mul(thousand), nil
	case entities.UnitPcs:
		return qty, nil
	default:
		return qty, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}

// BaseUnitOf returns the base unit a quantity of the given unit
// normalizes to
func BaseUnitOf(unit entities.Unit) (entities.Unit, error) {
	switch unit {
	case entities.UnitKg, entities.UnitGm, entities.UnitL, entities.UnitMl:
		return entities.UnitKg, nil
	case entities.UnitPcs:
		return entities.UnitPcs, nil
	default:
		return unit, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}
