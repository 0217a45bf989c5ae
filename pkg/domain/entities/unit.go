package entities

// Unit represents a physical unit of measure for ingredient and fill quantities
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitGm  Unit = "gm"
	UnitL   Unit = "L"
	UnitMl  Unit = "ml"
	UnitPcs Unit = "pcs"
)

// IsKnown reports whether the unit is one of the supported units
func (u Unit) IsKnown() bool {
	switch u {
	case UnitKg, UnitGm, UnitL, UnitMl, UnitPcs:
		return true
	default:
		return false
	}
}

// IsCount reports whether the unit is counted in discrete pieces
func (u Unit) IsCount() bool {
	return u == UnitPcs
}
