// Package servicetest provides shared snapshot fixtures for service
// tests. The scenario is a small jam producer: one recipe, two
// suppliers, two jar sizes, one production batch.
package servicetest

import (
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// Dec parses a decimal literal, panicking on malformed input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr parses a decimal literal and returns a pointer to it
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// BaseSnapshot builds the standard test snapshot:
//
//	recipe "Base Blend": 2 kg flour @ 100/kg 5% tax + 3 kg oil @ 50/kg 0% tax
//	total weight 5 kg, cost 350, taxed 360, cost/kg 70, taxed cost/kg 72
func BaseSnapshot() *snapshot.Snapshot {
	snap := snapshot.New()

	snap.Materials["m-flour"] = entities.Material{ID: "m-flour", Name: "Wheat Flour"}
	snap.Materials["m-oil"] = entities.Material{ID: "m-oil", Name: "Sunflower Oil"}
	snap.Materials["m-sugar"] = entities.Material{ID: "m-sugar", Name: "Sugar"}

	snap.Suppliers["sup-a"] = entities.Supplier{ID: "sup-a", Name: "Agro Traders", Rating: 4.2, LeadTimeDays: 5, Active: true}
	snap.Suppliers["sup-b"] = entities.Supplier{ID: "sup-b", Name: "Bulk Mart", Rating: 3.8, LeadTimeDays: 9, Active: true}

	snap.SupplierMaterials["sm-flour-a"] = entities.SupplierMaterial{
		ID: "sm-flour-a", MaterialID: "m-flour", SupplierID: "sup-a",
		UnitPrice: Dec("100"), TaxPercent: Dec("5"), Unit: entities.UnitKg, MOQ: Dec("25"),
	}
	snap.SupplierMaterials["sm-oil-a"] = entities.SupplierMaterial{
		ID: "sm-oil-a", MaterialID: "m-oil", SupplierID: "sup-a",
		UnitPrice: Dec("50"), TaxPercent: Dec("0"), Unit: entities.UnitKg, MOQ: Dec("10"),
	}
	snap.SupplierMaterials["sm-flour-b"] = entities.SupplierMaterial{
		ID: "sm-flour-b", MaterialID: "m-flour", SupplierID: "sup-b",
		UnitPrice: Dec("90"), TaxPercent: Dec("5"), Unit: entities.UnitKg, MOQ: Dec("100"),
	}
	snap.SupplierMaterials["sm-sugar-b"] = entities.SupplierMaterial{
		ID: "sm-sugar-b", MaterialID: "m-sugar", SupplierID: "sup-b",
		UnitPrice: Dec("42"), TaxPercent: Dec("12"), Unit: entities.UnitKg, MOQ: Dec("50"),
	}

	snap.Recipes["rec-base"] = entities.Recipe{
		ID: "rec-base", Name: "Base Blend", Status: entities.RecipeActive,
		TargetCostPerKg: DecPtr("65"), Version: 1,
	}
	snap.RecipeIngredients["rec-base"] = []entities.RecipeIngredient{
		{ID: "ing-1", RecipeID: "rec-base", SupplierMaterialID: "sm-flour-a", Quantity: Dec("2"), Unit: entities.UnitKg},
		{ID: "ing-2", RecipeID: "rec-base", SupplierMaterialID: "sm-oil-a", Quantity: Dec("3"), Unit: entities.UnitKg},
	}

	snap.Products["prod-jam"] = entities.Product{ID: "prod-jam", Name: "Base Blend Jar", RecipeID: "rec-base"}

	jar250 := &entities.SupplySelection{
		ItemID: "jar-250", ItemName: "Jar 250", SupplierID: "sup-b",
		UnitPrice: Dec("8"), TaxPercent: Dec("0"), MOQ: Dec("500"),
	}
	jar500 := &entities.SupplySelection{
		ItemID: "jar-500", ItemName: "Jar 500", SupplierID: "sup-b",
		UnitPrice: Dec("12"), TaxPercent: Dec("0"), MOQ: Dec("500"),
	}
	frontLabel := &entities.SupplySelection{
		ItemID: "lbl-front", ItemName: "Front Label", SupplierID: "sup-b",
		UnitPrice: Dec("1.5"), TaxPercent: Dec("0"), MOQ: Dec("1000"),
	}
	backLabel := &entities.SupplySelection{
		ItemID: "lbl-back", ItemName: "Back Label", SupplierID: "sup-b",
		UnitPrice: Dec("1"), TaxPercent: Dec("0"), MOQ: Dec("1000"),
	}

	snap.ProductVariants["pv-250"] = entities.ProductVariant{
		ID: "pv-250", ProductID: "prod-jam", Name: "250 gm",
		FillQuantity: Dec("250"), FillUnit: entities.UnitGm,
		Packaging: jar250, FrontLabel: frontLabel, BackLabel: backLabel,
	}
	snap.ProductVariants["pv-500"] = entities.ProductVariant{
		ID: "pv-500", ProductID: "prod-jam", Name: "500 gm",
		FillQuantity: Dec("500"), FillUnit: entities.UnitGm,
		Packaging: jar500, FrontLabel: frontLabel,
	}

	snap.Stock[entities.InventoryKey{ItemType: entities.ItemMaterial, ItemID: "sm-flour-a"}] = Dec("380")
	snap.Stock[entities.InventoryKey{ItemType: entities.ItemMaterial, ItemID: "sm-oil-a"}] = Dec("620")
	snap.Stock[entities.InventoryKey{ItemType: entities.ItemPackaging, ItemID: "jar-250"}] = Dec("200")

	return snap
}

// BaseBatch builds the standard production batch over the base
// snapshot: 120 kg of the 250 gm jar and 80 kg of the 500 gm jar
func BaseBatch() *entities.ProductionBatch {
	return &entities.ProductionBatch{
		ID:   "batch-1",
		Name: "September run",
		Items: []entities.BatchItem{
			{
				ProductID: "prod-jam",
				Variants: []entities.BatchVariantEntry{
					{VariantID: "pv-250", TotalFillQuantity: Dec("120"), FillUnit: entities.UnitKg},
					{VariantID: "pv-500", TotalFillQuantity: Dec("80"), FillUnit: entities.UnitKg},
				},
			},
		},
	}
}
