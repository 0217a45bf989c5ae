package costing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
	"github.com/sahanip/batchcost/pkg/domain/services"
)

var (
	one      = decimal.NewFromInt(1)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// LineCosting holds the rollup of pricing a set of ingredient lines
type LineCosting struct {
	Ingredients    []dto.RecipeIngredientDetail
	TotalWeightKg  decimal.Decimal
	TotalCost      decimal.Decimal
	TaxedTotalCost decimal.Decimal
	CostPerKg      decimal.Decimal
	TaxedCostPerKg decimal.Decimal
	Warnings       []dto.Warning
}

// Service computes recipe and variant costs from an immutable
// snapshot. It holds no state; every call produces fresh records.
type Service struct{}

// New creates a costing service
func New() *Service {
	return &Service{}
}

// CostLines prices a set of ingredient lines against the snapshot.
// A line whose supplier material cannot be resolved degrades to zero
// cost with a warning instead of aborting the rollup; a line with an
// unknown unit keeps its quantity unconverted, also with a warning.
func CostLines(snap *snapshot.Snapshot, lines []entities.IngredientLine) *LineCosting {
	lc := &LineCosting{
		Ingredients:    make([]dto.RecipeIngredientDetail, 0, len(lines)),
		TotalWeightKg:  decimal.Zero,
		TotalCost:      decimal.Zero,
		TaxedTotalCost: decimal.Zero,
		CostPerKg:      decimal.Zero,
		TaxedCostPerKg: decimal.Zero,
	}

	for _, line := range lines {
		detail := dto.RecipeIngredientDetail{
			IngredientID:       line.IngredientID,
			SupplierMaterialID: line.SupplierMaterialID,
			MaterialName:       snapshot.UnknownName,
			SupplierName:       snapshot.UnknownName,
			Quantity:           line.Quantity,
			Unit:               line.Unit,
		}

		qtyKg, err := services.ToBaseUnit(line.Quantity, line.Unit)
		if err != nil {
			lc.Warnings = append(lc.Warnings, dto.Warning{
				Code:   dto.WarnUnknownUnit,
				Detail: fmt.Sprintf("ingredient %s: unit %q not recognized, quantity used unconverted", line.SupplierMaterialID, line.Unit),
			})
		}
		detail.QuantityKg = qtyKg

		pricePerKg := decimal.Zero
		tax := decimal.Zero

		sm, ok := snap.SupplierMaterial(line.SupplierMaterialID)
		if ok {
			detail.MaterialID = sm.MaterialID
			detail.MaterialName = snap.MaterialName(sm.MaterialID)
			detail.SupplierID = sm.SupplierID
			detail.SupplierName = snap.SupplierName(sm.SupplierID)
			pricePerKg = sm.UnitPrice
			tax = sm.TaxPercent
		} else {
			lc.Warnings = append(lc.Warnings, dto.Warning{
				Code:   dto.WarnMissingSupplierMaterial,
				Detail: fmt.Sprintf("supplier material %s not found, ingredient costed at zero", line.SupplierMaterialID),
			})
		}

		// Locked pricing overrides the live supplier price until the
		// lock is explicitly cleared, even when the live record is gone.
		if line.Locked != nil {
			pricePerKg = line.Locked.UnitPrice
			tax = line.Locked.TaxPercent
			detail.PriceLocked = true
			lockedAt := line.Locked.LockedAt
			detail.LockedAt = &lockedAt
		}

		detail.PricePerKg = pricePerKg
		detail.TaxPercent = tax
		detail.Cost = pricePerKg.Mul(qtyKg)
		detail.TaxedCost = detail.Cost.Mul(one.Add(tax.Div(hundred)))

		lc.TotalWeightKg = lc.TotalWeightKg.Add(qtyKg)
		lc.TotalCost = lc.TotalCost.Add(detail.Cost)
		lc.TaxedTotalCost = lc.TaxedTotalCost.Add(detail.TaxedCost)

		lc.Ingredients = append(lc.Ingredients, detail)
	}

	if lc.TotalWeightKg.IsPositive() {
		lc.CostPerKg = lc.TotalCost.Div(lc.TotalWeightKg)
		lc.TaxedCostPerKg = lc.TaxedTotalCost.Div(lc.TotalWeightKg)
	}

	for i := range lc.Ingredients {
		if lc.TotalCost.IsPositive() {
			lc.Ingredients[i].PriceSharePercent = lc.Ingredients[i].Cost.Div(lc.TotalCost).Mul(hundred)
		} else {
			lc.Ingredients[i].PriceSharePercent = decimal.Zero
		}
	}

	return lc
}

// RecipeDetail computes the costed view of a recipe
func (s *Service) RecipeDetail(snap *snapshot.Snapshot, recipeID string) (*dto.RecipeDetail, error) {
	recipe, ok := snap.Recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, repositories.ErrNotFound)
	}

	ingredients := snap.RecipeIngredients[recipeID]
	lines := make([]entities.IngredientLine, 0, len(ingredients))
	for _, ri := range ingredients {
		lines = append(lines, ri.Line())
	}

	detail := buildDetail(snap, recipe, lines)
	detail.RecipeID = recipe.ID
	detail.Name = recipe.Name
	return detail, nil
}

// buildDetail assembles a RecipeDetail from costed lines plus the
// recipe's target
func buildDetail(snap *snapshot.Snapshot, recipe entities.Recipe, lines []entities.IngredientLine) *dto.RecipeDetail {
	lc := CostLines(snap, lines)

	detail := &dto.RecipeDetail{
		RecipeID:         recipe.ID,
		Name:             recipe.Name,
		Status:           recipe.Status,
		Ingredients:      lc.Ingredients,
		TotalWeightKg:    lc.TotalWeightKg,
		TotalWeightGrams: lc.TotalWeightKg.Mul(thousand),
		TotalCost:        lc.TotalCost,
		TaxedTotalCost:   lc.TaxedTotalCost,
		CostPerKg:        lc.CostPerKg,
		TaxedCostPerKg:   lc.TaxedCostPerKg,
		TargetCostPerKg:  recipe.TargetCostPerKg,
		Warnings:         lc.Warnings,
	}

	if recipe.TargetCostPerKg != nil {
		variance := lc.CostPerKg.Sub(*recipe.TargetCostPerKg)
		detail.VarianceFromTarget = &variance
		percent := decimal.Zero
		if recipe.TargetCostPerKg.IsPositive() {
			percent = variance.Div(*recipe.TargetCostPerKg).Mul(hundred)
		}
		detail.VariancePercent = &percent
		detail.IsAboveTarget = variance.IsPositive()
	}

	return detail
}

// VariantLines resolves a variant's ingredient lines: the immutable
// snapshot when present, otherwise the referenced ingredient IDs of
// the parent recipe
func VariantLines(snap *snapshot.Snapshot, variant entities.RecipeVariant) []entities.IngredientLine {
	if len(variant.IngredientsSnapshot) > 0 {
		lines := make([]entities.IngredientLine, 0, len(variant.IngredientsSnapshot))
		for _, is := range variant.IngredientsSnapshot {
			lines = append(lines, is.Line())
		}
		return lines
	}

	byID := make(map[string]entities.RecipeIngredient)
	for _, ri := range snap.RecipeIngredients[variant.OriginalRecipeID] {
		byID[ri.ID] = ri
	}
	var lines []entities.IngredientLine
	for _, id := range variant.IngredientIDs {
		if ri, ok := byID[id]; ok {
			lines = append(lines, ri.Line())
		}
	}
	return lines
}

// VariantDetail computes the costed view of a saved variant, compared
// against its parent recipe
func (s *Service) VariantDetail(snap *snapshot.Snapshot, variantID string) (*dto.RecipeVariantWithMetrics, error) {
	variant, ok := snap.Variants[variantID]
	if !ok {
		return nil, fmt.Errorf("recipe variant %s: %w", variantID, repositories.ErrNotFound)
	}
	recipe, ok := snap.Recipes[variant.OriginalRecipeID]
	if !ok {
		return nil, fmt.Errorf("recipe %s for variant %s: %w", variant.OriginalRecipeID, variantID, repositories.ErrNotFound)
	}

	detail := buildDetail(snap, recipe, VariantLines(snap, variant))
	detail.Name = variant.Name

	parent, err := s.RecipeDetail(snap, recipe.ID)
	if err != nil {
		return nil, err
	}

	savings := parent.CostPerKg.Sub(detail.CostPerKg)
	percent := decimal.Zero
	if parent.CostPerKg.IsPositive() {
		percent = savings.Div(parent.CostPerKg).Mul(hundred)
	}

	return &dto.RecipeVariantWithMetrics{
		VariantID:        variant.ID,
		OriginalRecipeID: variant.OriginalRecipeID,
		Name:             variant.Name,
		Detail:           *detail,
		SavingsPerKg:     savings,
		SavingsPercent:   percent,
	}, nil
}

// VariantsWithMetrics computes the costed views of every saved variant
// of a recipe, ordered by creation time
func (s *Service) VariantsWithMetrics(snap *snapshot.Snapshot, recipeID string) ([]dto.RecipeVariantWithMetrics, error) {
	if _, ok := snap.Recipes[recipeID]; !ok {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, repositories.ErrNotFound)
	}

	variants := append([]entities.RecipeVariant(nil), snap.VariantsByRecipe[recipeID]...)
	sort.Slice(variants, func(i, j int) bool {
		if !variants[i].CreatedAt.Equal(variants[j].CreatedAt) {
			return variants[i].CreatedAt.Before(variants[j].CreatedAt)
		}
		return variants[i].ID < variants[j].ID
	})

	results := make([]dto.RecipeVariantWithMetrics, 0, len(variants))
	for _, v := range variants {
		vm, err := s.VariantDetail(snap, v.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, *vm)
	}
	return results, nil
}
