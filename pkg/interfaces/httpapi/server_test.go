package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/infrastructure/repositories/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testServer() *Server {
	materials := memory.NewMaterialRepository(2)
	materials.AddMaterial(entities.Material{ID: "m-flour", Name: "Wheat Flour"})
	materials.AddMaterial(entities.Material{ID: "m-oil", Name: "Sunflower Oil"})

	suppliers := memory.NewSupplierRepository(2)
	suppliers.AddSupplier(entities.Supplier{ID: "sup-a", Name: "Agro Traders", Active: true})
	suppliers.AddSupplier(entities.Supplier{ID: "sup-b", Name: "Bulk Mart", Active: true})
	suppliers.AddSupplierMaterial(entities.SupplierMaterial{
		ID: "sm-flour-a", MaterialID: "m-flour", SupplierID: "sup-a",
		UnitPrice: dec("100"), TaxPercent: dec("5"), Unit: entities.UnitKg, MOQ: dec("25"),
	})
	suppliers.AddSupplierMaterial(entities.SupplierMaterial{
		ID: "sm-flour-b", MaterialID: "m-flour", SupplierID: "sup-b",
		UnitPrice: dec("90"), TaxPercent: dec("5"), Unit: entities.UnitKg, MOQ: dec("100"),
	})
	suppliers.AddSupplierMaterial(entities.SupplierMaterial{
		ID: "sm-oil-a", MaterialID: "m-oil", SupplierID: "sup-a",
		UnitPrice: dec("50"), TaxPercent: dec("0"), Unit: entities.UnitKg, MOQ: dec("10"),
	})

	recipes := memory.NewRecipeRepository(1)
	recipes.AddRecipe(entities.Recipe{
		ID: "rec-base", Name: "Base Blend", Status: entities.RecipeActive, Version: 1,
	})
	recipes.LoadIngredients([]*entities.RecipeIngredient{
		{ID: "ing-1", RecipeID: "rec-base", SupplierMaterialID: "sm-flour-a", Quantity: dec("2"), Unit: entities.UnitKg},
		{ID: "ing-2", RecipeID: "rec-base", SupplierMaterialID: "sm-oil-a", Quantity: dec("3"), Unit: entities.UnitKg},
	})

	products := memory.NewProductRepository(1)
	products.AddProduct(entities.Product{ID: "prod-jam", Name: "Base Blend Jar", RecipeID: "rec-base"})
	products.LoadProductVariants([]*entities.ProductVariant{{
		ID: "pv-250", ProductID: "prod-jam", Name: "250 gm",
		FillQuantity: dec("250"), FillUnit: entities.UnitGm,
		Packaging: &entities.SupplySelection{
			ItemID: "jar-250", ItemName: "Jar 250", SupplierID: "sup-b",
			UnitPrice: dec("8"), MOQ: dec("500"),
		},
	}})

	inventory := memory.NewInventoryRepository()
	inventory.AddInventoryItem(entities.InventoryItem{
		ItemType: entities.ItemMaterial, ItemID: "sm-flour-a", CurrentStock: dec("380"),
	})

	batches := memory.NewBatchRepository(1)
	batches.AddBatch(entities.ProductionBatch{
		ID: "batch-1", Name: "Run",
		Items: []entities.BatchItem{{
			ProductID: "prod-jam",
			Variants: []entities.BatchVariantEntry{
				{VariantID: "pv-250", TotalFillQuantity: dec("120"), FillUnit: entities.UnitKg},
			},
		}},
	})

	loader := snapshot.NewLoader(materials, suppliers, recipes, products, inventory, nil)
	return NewServer(loader, batches, nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecipeDetailEndpoint(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodGet, "/recipes/rec-base", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var detail dto.RecipeDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !detail.TaxedCostPerKg.Equal(dec("72")) {
		t.Errorf("Expected taxed cost per kg 72, got %s", detail.TaxedCostPerKg)
	}
	if len(detail.Ingredients) != 2 {
		t.Errorf("Expected 2 ingredients, got %d", len(detail.Ingredients))
	}
}

func TestRecipeDetailEndpoint_NotFound(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodGet, "/recipes/rec-ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestAnalyzeAdHocEndpoint(t *testing.T) {
	router := testServer().Router()

	body := `{
		"name": "ad hoc run",
		"items": [
			{"product_id": "prod-jam", "variants": [
				{"variant_id": "pv-250", "total_fill_quantity": "120", "fill_unit": "kg"}
			]}
		]
	}`
	rec := doJSON(t, router, http.MethodPost, "/batches/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var analysis dto.BatchRequirementsAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(analysis.Materials) != 2 {
		t.Fatalf("Expected 2 material requirements, got %d", len(analysis.Materials))
	}
	if !analysis.Materials[0].Required.Equal(dec("240")) {
		t.Errorf("Expected flour requirement 240, got %s", analysis.Materials[0].Required)
	}
}

func TestAnalyzeAdHocEndpoint_RejectsEmptyItems(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/batches/analyze", `{"items": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty items, got %d", rec.Code)
	}
}

func TestProcurementEndpoint(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodGet, "/batches/batch-1/procurement", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary dto.ProcurementSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(summary.Suppliers) != 2 {
		t.Errorf("Expected 2 suppliers, got %d", len(summary.Suppliers))
	}

	rec = doJSON(t, router, http.MethodGet, "/batches/batch-ghost/procurement", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown batch, got %d", rec.Code)
	}
}

func TestExperimentFlow(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/experiments", `{"recipe_id": "rec-base"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var opened openExperimentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}

	// Switch the flour line to the cheaper supplier.
	rec = doJSON(t, router, http.MethodPost, "/experiments/"+opened.SessionID+"/ingredients/0",
		`{"action": "supplier", "supplier_material_id": "sm-flour-b"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var summary dto.ComparisonSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.ChangeCount != 1 {
		t.Errorf("Expected 1 change, got %d", summary.ChangeCount)
	}
	// 2 kg x (100 - 90)
	if !summary.SavingsPerKg.Mul(dec("5")).Equal(dec("20")) {
		t.Errorf("Expected total savings 20 over 5 kg, got %s per kg", summary.SavingsPerKg)
	}

	rec = doJSON(t, router, http.MethodPost, "/experiments/"+opened.SessionID+"/commit", `{"name": "Cheaper flour"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201 on commit, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/experiments/"+opened.SessionID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 on close, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/experiments/"+opened.SessionID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after close, got %d", rec.Code)
	}
}

func TestExperimentEdit_BadAction(t *testing.T) {
	router := testServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/experiments", `{"recipe_id": "rec-base"}`)
	var opened openExperimentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/experiments/"+opened.SessionID+"/ingredients/0",
		`{"action": "teleport"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown action, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/experiments/"+opened.SessionID+"/ingredients/99",
		`{"action": "remove"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range index, got %d", rec.Code)
	}
}
