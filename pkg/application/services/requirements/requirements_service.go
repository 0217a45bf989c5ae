// Package requirements expands a production batch into deduplicated,
// supplier-keyed procurement requirement ledgers with shortage
// detection.
package requirements

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/services/costing"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/services"
)

// ErrInvalidBatch is returned for structurally invalid batches; a
// batch with no items cannot be analyzed at all, unlike a dangling
// reference inside one entry.
var ErrInvalidBatch = errors.New("invalid production batch")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Service expands production batches against an immutable snapshot
type Service struct{}

// New creates a requirements service
func New() *Service {
	return &Service{}
}

// ledger accumulates requirement contributions keyed by
// (item, supplier). Insertion order is preserved so results are
// stable for a given input.
type ledger struct {
	order   []entities.RequirementKey
	entries map[entities.RequirementKey]*entities.RequirementItem
}

func newLedger() *ledger {
	return &ledger{entries: make(map[entities.RequirementKey]*entities.RequirementItem)}
}

// add merges a contribution into the ledger. An existing key only
// grows its required quantity; the pricing fields were fixed by the
// first contribution.
func (l *ledger) add(proto entities.RequirementItem, required decimal.Decimal) {
	key := proto.Key()
	if existing, ok := l.entries[key]; ok {
		existing.Required = existing.Required.Add(required)
		return
	}
	proto.Required = required
	l.entries[key] = &proto
	l.order = append(l.order, key)
}

// materialize resolves stock, shortage and cost for every entry, in
// insertion order
func (l *ledger) materialize(snap *snapshot.Snapshot) []entities.RequirementItem {
	items := make([]entities.RequirementItem, 0, len(l.order))
	for _, key := range l.order {
		entry := *l.entries[key]
		entry.Available = snap.StockFor(entry.ItemType, entry.ItemID)
		entry.Shortage = entry.Required.Sub(entry.Available)
		entry.TotalCost = entry.Required.Mul(entry.UnitPrice).Mul(one.Add(entry.TaxPercent.Div(hundred)))
		entry.BelowMOQ = entry.MOQ.IsPositive() && entry.Required.LessThan(entry.MOQ)
		items = append(items, entry)
	}
	return items
}

// Analyze expands a production batch into the three requirement
// ledgers. Dangling references degrade to warnings and skipped
// entries; only a structurally empty batch is an error.
func (s *Service) Analyze(snap *snapshot.Snapshot, batch *entities.ProductionBatch) (*dto.BatchRequirementsAnalysis, error) {
	if batch == nil || len(batch.Items) == 0 {
		return nil, fmt.Errorf("%w: batch has no items", ErrInvalidBatch)
	}

	materials := newLedger()
	packaging := newLedger()
	labels := newLedger()
	var warnings []dto.Warning

	for _, item := range batch.Items {
		product, ok := snap.Products[item.ProductID]
		if !ok {
			warnings = append(warnings, dto.Warning{
				Code:   dto.WarnMissingProduct,
				Detail: fmt.Sprintf("product %s not found, entry skipped", item.ProductID),
			})
			continue
		}

		lines, lineWarnings := resolveRecipeLines(snap, product)
		warnings = append(warnings, lineWarnings...)

		for _, entry := range item.Variants {
			pv, ok := snap.ProductVariants[entry.VariantID]
			if !ok {
				warnings = append(warnings, dto.Warning{
					Code:   dto.WarnMissingProductVariant,
					Detail: fmt.Sprintf("product variant %s not found, entry skipped", entry.VariantID),
				})
				continue
			}

			requestedKg, err := services.ToBaseUnit(entry.TotalFillQuantity, entry.FillUnit)
			if err != nil {
				warnings = append(warnings, dto.Warning{
					Code:   dto.WarnUnknownUnit,
					Detail: fmt.Sprintf("batch entry for variant %s: unit %q not recognized, quantity used unconverted", entry.VariantID, entry.FillUnit),
				})
			}

			units, unitWarnings := sellableUnits(pv, requestedKg)
			warnings = append(warnings, unitWarnings...)

			for _, line := range lines {
				lineKg, err := services.ToBaseUnit(line.Quantity, line.Unit)
				if err != nil {
					warnings = append(warnings, dto.Warning{
						Code:   dto.WarnUnknownUnit,
						Detail: fmt.Sprintf("ingredient %s: unit %q not recognized, quantity used unconverted", line.SupplierMaterialID, line.Unit),
					})
				}
				required := lineKg.Mul(requestedKg)

				proto := entities.RequirementItem{
					ItemType:     entities.ItemMaterial,
					ItemID:       line.SupplierMaterialID,
					ItemName:     snapshot.UnknownName,
					SupplierName: snapshot.UnknownName,
					Unit:         entities.UnitKg,
				}
				if sm, ok := snap.SupplierMaterial(line.SupplierMaterialID); ok {
					proto.ItemName = snap.MaterialName(sm.MaterialID)
					proto.SupplierID = sm.SupplierID
					proto.SupplierName = snap.SupplierName(sm.SupplierID)
					proto.UnitPrice = sm.UnitPrice
					proto.TaxPercent = sm.TaxPercent
					proto.MOQ = sm.MOQ
				} else {
					warnings = append(warnings, dto.Warning{
						Code:   dto.WarnMissingSupplierMaterial,
						Detail: fmt.Sprintf("supplier material %s not found, requirement costed at zero", line.SupplierMaterialID),
					})
				}
				if line.Unit.IsCount() {
					proto.Unit = entities.UnitPcs
				}
				materials.add(proto, required)
			}

			if units.IsPositive() {
				if pv.Packaging != nil {
					packaging.add(selectionProto(entities.ItemPackaging, *pv.Packaging, snap), units)
				}
				// Front and back labels resolving to the same item and
				// supplier merge under one key.
				if pv.FrontLabel != nil {
					labels.add(selectionProto(entities.ItemLabel, *pv.FrontLabel, snap), units)
				}
				if pv.BackLabel != nil {
					labels.add(selectionProto(entities.ItemLabel, *pv.BackLabel, snap), units)
				}
			}
		}
	}

	analysis := &dto.BatchRequirementsAnalysis{
		BatchID:   batch.ID,
		Materials: materials.materialize(snap),
		Packaging: packaging.materialize(snap),
		Labels:    labels.materialize(snap),
		Warnings:  warnings,
	}

	analysis.TotalMaterialCost = sumCosts(analysis.Materials)
	analysis.TotalPackagingCost = sumCosts(analysis.Packaging)
	analysis.TotalLabelCost = sumCosts(analysis.Labels)
	analysis.TotalCost = analysis.TotalMaterialCost.Add(analysis.TotalPackagingCost).Add(analysis.TotalLabelCost)
	analysis.TotalItemsToOrder = len(analysis.Materials) + len(analysis.Packaging) + len(analysis.Labels)

	for _, items := range [][]entities.RequirementItem{analysis.Materials, analysis.Packaging, analysis.Labels} {
		for _, item := range items {
			if item.Shortage.IsPositive() {
				analysis.CriticalShortages = append(analysis.CriticalShortages, item)
			}
		}
	}

	return analysis, nil
}

// CostAnalysis computes the per-entry cost breakdown of a batch
func (s *Service) CostAnalysis(snap *snapshot.Snapshot, batch *entities.ProductionBatch) (*dto.BatchCostAnalysis, error) {
	if batch == nil || len(batch.Items) == 0 {
		return nil, fmt.Errorf("%w: batch has no items", ErrInvalidBatch)
	}

	analysis := &dto.BatchCostAnalysis{BatchID: batch.ID, TotalCost: decimal.Zero}

	for _, item := range batch.Items {
		product, ok := snap.Products[item.ProductID]
		if !ok {
			analysis.Warnings = append(analysis.Warnings, dto.Warning{
				Code:   dto.WarnMissingProduct,
				Detail: fmt.Sprintf("product %s not found, entry skipped", item.ProductID),
			})
			continue
		}

		lines, lineWarnings := resolveRecipeLines(snap, product)
		analysis.Warnings = append(analysis.Warnings, lineWarnings...)
		lc := costing.CostLines(snap, lines)

		for _, entry := range item.Variants {
			pv, ok := snap.ProductVariants[entry.VariantID]
			if !ok {
				analysis.Warnings = append(analysis.Warnings, dto.Warning{
					Code:   dto.WarnMissingProductVariant,
					Detail: fmt.Sprintf("product variant %s not found, entry skipped", entry.VariantID),
				})
				continue
			}

			requestedKg, err := services.ToBaseUnit(entry.TotalFillQuantity, entry.FillUnit)
			if err != nil {
				analysis.Warnings = append(analysis.Warnings, dto.Warning{
					Code:   dto.WarnUnknownUnit,
					Detail: fmt.Sprintf("batch entry for variant %s: unit %q not recognized, quantity used unconverted", entry.VariantID, entry.FillUnit),
				})
			}
			units, unitWarnings := sellableUnits(pv, requestedKg)
			analysis.Warnings = append(analysis.Warnings, unitWarnings...)

			cost := dto.BatchItemCost{
				ProductID:   product.ID,
				ProductName: product.Name,
				VariantID:   pv.ID,
				VariantName: pv.Name,
				Units:       units,
				RecipeCost:  lc.TaxedTotalCost.Mul(requestedKg),
			}
			if units.IsPositive() {
				if pv.Packaging != nil {
					cost.PackagingCost = selectionCost(*pv.Packaging, units)
				}
				if pv.FrontLabel != nil {
					cost.LabelCost = cost.LabelCost.Add(selectionCost(*pv.FrontLabel, units))
				}
				if pv.BackLabel != nil {
					cost.LabelCost = cost.LabelCost.Add(selectionCost(*pv.BackLabel, units))
				}
			}
			cost.TotalCost = cost.RecipeCost.Add(cost.PackagingCost).Add(cost.LabelCost)

			analysis.Items = append(analysis.Items, cost)
			analysis.TotalCost = analysis.TotalCost.Add(cost.TotalCost)
		}
	}

	return analysis, nil
}

// resolveRecipeLines resolves a product's ingredient lines: directly
// via its recipe, or indirectly via its recipe variant
func resolveRecipeLines(snap *snapshot.Snapshot, product entities.Product) ([]entities.IngredientLine, []dto.Warning) {
	if product.RecipeVariantID != "" {
		variant, ok := snap.Variants[product.RecipeVariantID]
		if !ok {
			return nil, []dto.Warning{{
				Code:   dto.WarnMissingRecipe,
				Detail: fmt.Sprintf("recipe variant %s for product %s not found", product.RecipeVariantID, product.ID),
			}}
		}
		return costing.VariantLines(snap, variant), nil
	}

	ingredients, ok := snap.RecipeIngredients[product.RecipeID]
	if _, recipeKnown := snap.Recipes[product.RecipeID]; !recipeKnown && !ok {
		return nil, []dto.Warning{{
			Code:   dto.WarnMissingRecipe,
			Detail: fmt.Sprintf("recipe %s for product %s not found", product.RecipeID, product.ID),
		}}
	}
	lines := make([]entities.IngredientLine, 0, len(ingredients))
	for _, ri := range ingredients {
		lines = append(lines, ri.Line())
	}
	return lines, nil
}

// sellableUnits computes how many sellable units a requested batch
// quantity implies for a product variant
func sellableUnits(pv entities.ProductVariant, requestedKg decimal.Decimal) (decimal.Decimal, []dto.Warning) {
	fillKg, err := services.ToBaseUnit(pv.FillQuantity, pv.FillUnit)
	if err != nil {
		return decimal.Zero, []dto.Warning{{
			Code:   dto.WarnUnknownUnit,
			Detail: fmt.Sprintf("product variant %s: fill unit %q not recognized", pv.ID, pv.FillUnit),
		}}
	}
	if !fillKg.IsPositive() {
		return decimal.Zero, []dto.Warning{{
			Code:   dto.WarnZeroFillQuantity,
			Detail: fmt.Sprintf("product variant %s has zero fill quantity", pv.ID),
		}}
	}
	return requestedKg.Div(fillKg), nil
}

// selectionProto builds the ledger prototype for a packaging or label
// selection
func selectionProto(itemType entities.ItemType, sel entities.SupplySelection, snap *snapshot.Snapshot) entities.RequirementItem {
	return entities.RequirementItem{
		ItemType:     itemType,
		ItemID:       sel.ItemID,
		ItemName:     sel.ItemName,
		SupplierID:   sel.SupplierID,
		SupplierName: snap.SupplierName(sel.SupplierID),
		Unit:         entities.UnitPcs,
		UnitPrice:    sel.UnitPrice,
		TaxPercent:   sel.TaxPercent,
		MOQ:          sel.MOQ,
	}
}

// selectionCost prices a packaging or label selection for a unit count
func selectionCost(sel entities.SupplySelection, units decimal.Decimal) decimal.Decimal {
	return units.Mul(sel.UnitPrice).Mul(one.Add(sel.TaxPercent.Div(hundred)))
}

func sumCosts(items []entities.RequirementItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalCost)
	}
	return total
}
