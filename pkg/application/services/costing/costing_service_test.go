package costing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/services/servicetest"
	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

func TestRecipeDetail_BasicRollup(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	detail, err := svc.RecipeDetail(snap, "rec-base")
	if err != nil {
		t.Fatalf("RecipeDetail failed: %v", err)
	}

	// 2 kg @ 100 (5% tax) + 3 kg @ 50 (0% tax)
	assertDecimal(t, "total weight grams", detail.TotalWeightGrams, "5000")
	assertDecimal(t, "total weight kg", detail.TotalWeightKg, "5")
	assertDecimal(t, "total cost", detail.TotalCost, "350")
	assertDecimal(t, "taxed total cost", detail.TaxedTotalCost, "360")
	assertDecimal(t, "cost per kg", detail.CostPerKg, "70")
	assertDecimal(t, "taxed cost per kg", detail.TaxedCostPerKg, "72")

	if len(detail.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredient details, got %d", len(detail.Ingredients))
	}
	flour := detail.Ingredients[0]
	assertDecimal(t, "flour cost", flour.Cost, "200")
	assertDecimal(t, "flour taxed cost", flour.TaxedCost, "210")
	if flour.MaterialName != "Wheat Flour" {
		t.Errorf("Expected material name Wheat Flour, got %s", flour.MaterialName)
	}
	if flour.SupplierName != "Agro Traders" {
		t.Errorf("Expected supplier name Agro Traders, got %s", flour.SupplierName)
	}
}

func TestRecipeDetail_CostConservation(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	detail, err := svc.RecipeDetail(snap, "rec-base")
	if err != nil {
		t.Fatalf("RecipeDetail failed: %v", err)
	}

	sumCost := decimal.Zero
	sumTaxed := decimal.Zero
	sumShare := decimal.Zero
	for _, ing := range detail.Ingredients {
		sumCost = sumCost.Add(ing.Cost)
		sumTaxed = sumTaxed.Add(ing.TaxedCost)
		sumShare = sumShare.Add(ing.PriceSharePercent)
	}

	if !sumCost.Equal(detail.TotalCost) {
		t.Errorf("Sum of ingredient costs %s != total cost %s", sumCost, detail.TotalCost)
	}
	if !sumTaxed.Equal(detail.TaxedTotalCost) {
		t.Errorf("Sum of taxed ingredient costs %s != taxed total %s", sumTaxed, detail.TaxedTotalCost)
	}
	if !sumShare.Round(6).Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected price shares to sum to 100, got %s", sumShare)
	}
}

func TestRecipeDetail_ZeroIngredients(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	snap.Recipes["rec-empty"] = entities.Recipe{ID: "rec-empty", Name: "Empty", Status: entities.RecipeDraft}
	svc := New()

	detail, err := svc.RecipeDetail(snap, "rec-empty")
	if err != nil {
		t.Fatalf("RecipeDetail failed: %v", err)
	}

	assertDecimal(t, "cost per kg", detail.CostPerKg, "0")
	assertDecimal(t, "taxed cost per kg", detail.TaxedCostPerKg, "0")
	assertDecimal(t, "total cost", detail.TotalCost, "0")
}

func TestRecipeDetail_TargetVariance(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	detail, err := svc.RecipeDetail(snap, "rec-base")
	if err != nil {
		t.Fatalf("RecipeDetail failed: %v", err)
	}

	// cost/kg 70 against target 65
	if detail.VarianceFromTarget == nil {
		t.Fatal("Expected variance to be computed when a target exists")
	}
	assertDecimal(t, "variance", *detail.VarianceFromTarget, "5")
	if !detail.IsAboveTarget {
		t.Error("Expected recipe to be above target")
	}
	if detail.VariancePercent == nil {
		t.Fatal("Expected variance percent")
	}
	expected := servicetest.Dec("5").Div(servicetest.Dec("65")).Mul(decimal.NewFromInt(100))
	if !detail.VariancePercent.Equal(expected) {
		t.Errorf("Expected variance percent %s, got %s", expected, detail.VariancePercent)
	}
}

func TestRecipeDetail_MissingRecipe(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	if _, err := svc.RecipeDetail(snap, "rec-nope"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCostLines_MissingSupplierMaterialDegrades(t *testing.T) {
	snap := servicetest.BaseSnapshot()

	lines := []entities.IngredientLine{
		{SupplierMaterialID: "sm-flour-a", Quantity: servicetest.Dec("2"), Unit: entities.UnitKg},
		{SupplierMaterialID: "sm-gone", Quantity: servicetest.Dec("1"), Unit: entities.UnitKg},
	}

	lc := CostLines(snap, lines)

	// The dangling reference contributes zero cost but the rollup survives.
	assertDecimal(t, "total cost", lc.TotalCost, "200")
	assertDecimal(t, "total weight", lc.TotalWeightKg, "3")
	if lc.Ingredients[1].MaterialName != "Unknown" {
		t.Errorf("Expected Unknown placeholder, got %s", lc.Ingredients[1].MaterialName)
	}
	if len(lc.Warnings) != 1 || lc.Warnings[0].Code != dto.WarnMissingSupplierMaterial {
		t.Fatalf("Expected one missing_supplier_material warning, got %+v", lc.Warnings)
	}
}

func TestCostLines_UnknownUnitWarns(t *testing.T) {
	snap := servicetest.BaseSnapshot()

	lines := []entities.IngredientLine{
		{SupplierMaterialID: "sm-flour-a", Quantity: servicetest.Dec("2"), Unit: entities.Unit("sack")},
	}

	lc := CostLines(snap, lines)

	if len(lc.Warnings) != 1 || lc.Warnings[0].Code != dto.WarnUnknownUnit {
		t.Fatalf("Expected one unknown_unit warning, got %+v", lc.Warnings)
	}
	// Quantity passes through unconverted.
	assertDecimal(t, "quantity kg", lc.Ingredients[0].QuantityKg, "2")
}

func TestCostLines_LockedPricingOverridesLivePrice(t *testing.T) {
	snap := servicetest.BaseSnapshot()

	locked := &entities.LockedPricing{
		UnitPrice:  servicetest.Dec("100"),
		TaxPercent: servicetest.Dec("5"),
		LockedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "quarterly contract",
	}
	lines := []entities.IngredientLine{
		{SupplierMaterialID: "sm-flour-a", Quantity: servicetest.Dec("2"), Unit: entities.UnitKg, Locked: locked},
	}

	before := CostLines(snap, lines)
	assertDecimal(t, "locked cost", before.TotalCost, "200")

	// Raise the live price; the locked line must not move.
	sm := snap.SupplierMaterials["sm-flour-a"]
	sm.UnitPrice = servicetest.Dec("180")
	snap.SupplierMaterials["sm-flour-a"] = sm

	after := CostLines(snap, lines)
	assertDecimal(t, "locked cost after live change", after.TotalCost, "200")
	if !after.Ingredients[0].PriceLocked {
		t.Error("Expected ingredient to report locked pricing")
	}

	// Unlocking immediately re-adopts the live price.
	lines[0].Locked = nil
	unlocked := CostLines(snap, lines)
	assertDecimal(t, "unlocked cost", unlocked.TotalCost, "360")
}

func TestVariantDetail_SnapshotIndependentOfParentEdits(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	snap.Variants["var-1"] = entities.RecipeVariant{
		ID: "var-1", OriginalRecipeID: "rec-base", Name: "Cheaper flour",
		IngredientsSnapshot: []entities.IngredientSnapshot{
			{SupplierMaterialID: "sm-flour-b", Quantity: servicetest.Dec("2"), Unit: entities.UnitKg},
			{SupplierMaterialID: "sm-oil-a", Quantity: servicetest.Dec("3"), Unit: entities.UnitKg},
		},
		CreatedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	snap.VariantsByRecipe["rec-base"] = []entities.RecipeVariant{snap.Variants["var-1"]}

	vm, err := svc.VariantDetail(snap, "var-1")
	if err != nil {
		t.Fatalf("VariantDetail failed: %v", err)
	}

	// 2 kg @ 90 + 3 kg @ 50 = 330 over 5 kg = 66/kg, against parent 70/kg
	assertDecimal(t, "variant cost per kg", vm.Detail.CostPerKg, "66")
	assertDecimal(t, "savings per kg", vm.SavingsPerKg, "4")

	// Editing the parent recipe's ingredients does not move the variant.
	snap.RecipeIngredients["rec-base"] = []entities.RecipeIngredient{
		{ID: "ing-1", RecipeID: "rec-base", SupplierMaterialID: "sm-flour-a", Quantity: servicetest.Dec("4"), Unit: entities.UnitKg},
	}
	again, err := svc.VariantDetail(snap, "var-1")
	if err != nil {
		t.Fatalf("VariantDetail failed: %v", err)
	}
	assertDecimal(t, "variant cost per kg after parent edit", again.Detail.CostPerKg, "66")
}

func TestVariantsWithMetrics_OrderedByCreation(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	svc := New()

	older := entities.RecipeVariant{
		ID: "var-old", OriginalRecipeID: "rec-base", Name: "Old",
		IngredientsSnapshot: []entities.IngredientSnapshot{
			{SupplierMaterialID: "sm-oil-a", Quantity: servicetest.Dec("5"), Unit: entities.UnitKg},
		},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := entities.RecipeVariant{
		ID: "var-new", OriginalRecipeID: "rec-base", Name: "New",
		IngredientsSnapshot: []entities.IngredientSnapshot{
			{SupplierMaterialID: "sm-flour-b", Quantity: servicetest.Dec("5"), Unit: entities.UnitKg},
		},
		CreatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	snap.Variants[older.ID] = older
	snap.Variants[newer.ID] = newer
	snap.VariantsByRecipe["rec-base"] = []entities.RecipeVariant{newer, older}

	results, err := svc.VariantsWithMetrics(snap, "rec-base")
	if err != nil {
		t.Fatalf("VariantsWithMetrics failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(results))
	}
	if results[0].VariantID != "var-old" || results[1].VariantID != "var-new" {
		t.Errorf("Expected creation order var-old, var-new; got %s, %s", results[0].VariantID, results[1].VariantID)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, expected string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !got.Equal(want) {
		t.Errorf("Expected %s %s, got %s", name, want, got)
	}
}
