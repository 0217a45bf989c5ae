// Package experiment maintains an editable working copy of one
// recipe's ingredients. All edits stay inside the session; the
// persisted recipe is never touched. Metrics are recomputed from the
// current working copy on every call, never stored.
package experiment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/services/costing"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

var hundred = decimal.NewFromInt(100)

// entry is one working-copy ingredient with its immutable originals
type entry struct {
	ingredientID       string
	supplierMaterialID string
	quantity           decimal.Decimal
	unit               entities.Unit
	locked             *entities.LockedPricing

	originalSupplierMaterialID string
	originalQuantity           decimal.Decimal
	originalLocked             *entities.LockedPricing
	removed                    bool
}

// changeState diffs the working values against the originals
func (e *entry) changeState() dto.ChangeState {
	qtyChanged := !e.quantity.Equal(e.originalQuantity)
	supChanged := e.supplierMaterialID != e.originalSupplierMaterialID
	switch {
	case qtyChanged && supChanged:
		return dto.BothChanged
	case qtyChanged:
		return dto.QuantityChanged
	case supChanged:
		return dto.SupplierChanged
	default:
		return dto.Unchanged
	}
}

// Session is a single-user experiment over one recipe. It is owned by
// one editing session and needs no external synchronization.
type Session struct {
	snap     *snapshot.Snapshot
	recipeID string
	entries  []*entry
}

// NewSession deep-copies the recipe's ingredients into a working copy
func NewSession(snap *snapshot.Snapshot, recipeID string) (*Session, error) {
	if _, ok := snap.Recipes[recipeID]; !ok {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, repositories.ErrNotFound)
	}

	ingredients := snap.RecipeIngredients[recipeID]
	entries := make([]*entry, 0, len(ingredients))
	for _, ri := range ingredients {
		entries = append(entries, &entry{
			ingredientID:       ri.ID,
			supplierMaterialID: ri.SupplierMaterialID,
			quantity:           ri.Quantity,
			unit:               ri.Unit,
			locked:             copyLock(ri.Locked),

			originalSupplierMaterialID: ri.SupplierMaterialID,
			originalQuantity:           ri.Quantity,
			originalLocked:             copyLock(ri.Locked),
		})
	}

	return &Session{snap: snap, recipeID: recipeID, entries: entries}, nil
}

func copyLock(lp *entities.LockedPricing) *entities.LockedPricing {
	if lp == nil {
		return nil
	}
	c := *lp
	return &c
}

// RecipeID returns the recipe this session experiments on
func (s *Session) RecipeID() string {
	return s.recipeID
}

// Len returns the number of working-copy entries, removed ones included
func (s *Session) Len() int {
	return len(s.entries)
}

func (s *Session) at(i int) (*entry, error) {
	if i < 0 || i >= len(s.entries) {
		return nil, fmt.Errorf("ingredient index %d out of range [0,%d)", i, len(s.entries))
	}
	return s.entries[i], nil
}

// SetQuantity changes the working quantity of one entry
func (s *Session) SetQuantity(i int, qty decimal.Decimal) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}
	if qty.IsNegative() {
		return fmt.Errorf("quantity cannot be negative, got %s", qty)
	}
	e.quantity = qty
	return nil
}

// SetSupplier substitutes the supplier material of one entry
func (s *Session) SetSupplier(i int, supplierMaterialID string) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}
	if _, ok := s.snap.SupplierMaterial(supplierMaterialID); !ok {
		return fmt.Errorf("supplier material %s: %w", supplierMaterialID, repositories.ErrNotFound)
	}
	e.supplierMaterialID = supplierMaterialID
	return nil
}

// Remove marks an entry as removed from the working copy
func (s *Session) Remove(i int) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}
	e.removed = true
	return nil
}

// Restore undoes a removal
func (s *Session) Restore(i int) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}
	e.removed = false
	return nil
}

// TogglePriceLock locks or unlocks an entry's pricing. Locking
// snapshots the entry's current resolved supplier price and tax at
// the given time; unlocking clears the snapshot. This is a pure state
// transition and does not recompute any cost by itself.
func (s *Session) TogglePriceLock(i int, reason string, now time.Time) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}

	if e.locked != nil {
		e.locked = nil
		return nil
	}

	sm, ok := s.snap.SupplierMaterial(e.supplierMaterialID)
	if !ok {
		return fmt.Errorf("cannot lock price: supplier material %s: %w", e.supplierMaterialID, repositories.ErrNotFound)
	}
	e.locked = &entities.LockedPricing{
		UnitPrice:  sm.UnitPrice,
		TaxPercent: sm.TaxPercent,
		LockedAt:   now,
		Reason:     reason,
	}
	return nil
}

// ResetOne restores one entry to its stored originals
func (s *Session) ResetOne(i int) error {
	e, err := s.at(i)
	if err != nil {
		return err
	}
	e.supplierMaterialID = e.originalSupplierMaterialID
	e.quantity = e.originalQuantity
	e.locked = copyLock(e.originalLocked)
	e.removed = false
	return nil
}

// ResetAll restores every entry to its stored originals
func (s *Session) ResetAll() {
	for i := range s.entries {
		// index always valid here
		_ = s.ResetOne(i)
	}
}

func (s *Session) workingLines() []entities.IngredientLine {
	var lines []entities.IngredientLine
	for _, e := range s.entries {
		if e.removed {
			continue
		}
		lines = append(lines, entities.IngredientLine{
			IngredientID:       e.ingredientID,
			SupplierMaterialID: e.supplierMaterialID,
			Quantity:           e.quantity,
			Unit:               e.unit,
			Locked:             e.locked,
		})
	}
	return lines
}

func (s *Session) originalLines() []entities.IngredientLine {
	lines := make([]entities.IngredientLine, 0, len(s.entries))
	for _, e := range s.entries {
		lines = append(lines, entities.IngredientLine{
			IngredientID:       e.ingredientID,
			SupplierMaterialID: e.originalSupplierMaterialID,
			Quantity:           e.originalQuantity,
			Unit:               e.unit,
			Locked:             e.originalLocked,
		})
	}
	return lines
}

// Summary recomputes the live comparison metrics from the current
// working copy
func (s *Session) Summary() *dto.ComparisonSummary {
	original := costing.CostLines(s.snap, s.originalLines())
	modified := costing.CostLines(s.snap, s.workingLines())

	summary := &dto.ComparisonSummary{
		RecipeID:          s.recipeID,
		OriginalCost:      original.TotalCost,
		ModifiedCost:      modified.TotalCost,
		OriginalCostPerKg: original.CostPerKg,
		ModifiedCostPerKg: modified.CostPerKg,
		SavingsPerKg:      original.CostPerKg.Sub(modified.CostPerKg),
		Warnings:          modified.Warnings,
	}

	if original.CostPerKg.IsPositive() {
		summary.SavingsPercent = summary.SavingsPerKg.Div(original.CostPerKg).Mul(hundred)
	} else {
		summary.SavingsPercent = decimal.Zero
	}

	recipe := s.snap.Recipes[s.recipeID]
	if recipe.TargetCostPerKg != nil {
		gap := modified.CostPerKg.Sub(*recipe.TargetCostPerKg)
		summary.TargetGap = &gap
	}

	modifiedCostByIndex := make(map[int]decimal.Decimal)
	idx := 0
	for i, e := range s.entries {
		if e.removed {
			continue
		}
		modifiedCostByIndex[i] = modified.Ingredients[idx].Cost
		idx++
	}

	changeCount := 0
	for i, e := range s.entries {
		if e.removed {
			changeCount++
		} else if e.changeState() != dto.Unchanged {
			changeCount++
		}

		summary.Ingredients = append(summary.Ingredients, dto.ComparisonIngredient{
			Index:                      i,
			IngredientID:               e.ingredientID,
			SupplierMaterialID:         e.supplierMaterialID,
			OriginalSupplierMaterialID: e.originalSupplierMaterialID,
			Quantity:                   e.quantity,
			OriginalQuantity:           e.originalQuantity,
			Unit:                       e.unit,
			ChangeState:                e.changeState(),
			Removed:                    e.removed,
			PriceLocked:                e.locked != nil,
			Cost:                       modifiedCostByIndex[i],
			OriginalCost:               original.Ingredients[i].Cost,
		})
	}
	summary.ChangeCount = changeCount

	return summary
}

// Commit freezes the working copy into an immutable ingredients
// snapshot and returns it as a new RecipeVariant. The variant is
// permanently decoupled from later edits to the parent recipe; lines
// without locked pricing keep tracking live supplier prices.
func (s *Session) Commit(name string, now time.Time) (*entities.RecipeVariant, error) {
	if name == "" {
		return nil, fmt.Errorf("variant name cannot be empty")
	}

	var frozen []entities.IngredientSnapshot
	for _, e := range s.entries {
		if e.removed {
			continue
		}
		frozen = append(frozen, entities.IngredientSnapshot{
			SupplierMaterialID: e.supplierMaterialID,
			Quantity:           e.quantity,
			Unit:               e.unit,
			Locked:             copyLock(e.locked),
		})
	}
	if len(frozen) == 0 {
		return nil, fmt.Errorf("cannot commit a variant with no ingredients")
	}

	return &entities.RecipeVariant{
		ID:                  uuid.NewString(),
		OriginalRecipeID:    s.recipeID,
		Name:                name,
		IngredientsSnapshot: frozen,
		CreatedAt:           now,
	}, nil
}

// Alternatives lists substitute offers for an entry's material: every
// supplier material referencing the same material but a different id,
// sorted ascending by unit price
func Alternatives(snap *snapshot.Snapshot, supplierMaterialID string) ([]entities.SupplierMaterial, error) {
	sm, ok := snap.SupplierMaterial(supplierMaterialID)
	if !ok {
		return nil, fmt.Errorf("supplier material %s: %w", supplierMaterialID, repositories.ErrNotFound)
	}

	var alternatives []entities.SupplierMaterial
	for _, offer := range snap.SupplierMaterialsForMaterial(sm.MaterialID) {
		if offer.ID != sm.ID {
			alternatives = append(alternatives, offer)
		}
	}
	return alternatives, nil
}
