package experiment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/dto"
	"github.com/sahanip/batchcost/pkg/application/services/servicetest"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestNewSession_UnchangedBaseline(t *testing.T) {
	snap := servicetest.BaseSnapshot()

	session, err := NewSession(snap, "rec-base")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	summary := session.Summary()
	assertDecimal(t, "original cost", summary.OriginalCost, "350")
	assertDecimal(t, "modified cost", summary.ModifiedCost, "350")
	assertDecimal(t, "savings per kg", summary.SavingsPerKg, "0")
	if summary.ChangeCount != 0 {
		t.Errorf("Expected 0 changes, got %d", summary.ChangeCount)
	}
	for _, ing := range summary.Ingredients {
		if ing.ChangeState != dto.Unchanged {
			t.Errorf("Expected Unchanged, got %s", ing.ChangeState)
		}
	}
}

func TestSession_MissingRecipe(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	if _, err := NewSession(snap, "rec-nope"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSession_QuantityAndSupplierChanges(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, err := NewSession(snap, "rec-base")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Halve the flour quantity.
	if err := session.SetQuantity(0, servicetest.Dec("1")); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	summary := session.Summary()
	if summary.Ingredients[0].ChangeState != dto.QuantityChanged {
		t.Errorf("Expected QuantityChanged, got %s", summary.Ingredients[0].ChangeState)
	}
	if summary.ChangeCount != 1 {
		t.Errorf("Expected 1 change, got %d", summary.ChangeCount)
	}

	// Substitute the cheaper flour supplier too.
	if err := session.SetSupplier(0, "sm-flour-b"); err != nil {
		t.Fatalf("SetSupplier failed: %v", err)
	}
	summary = session.Summary()
	if summary.Ingredients[0].ChangeState != dto.BothChanged {
		t.Errorf("Expected BothChanged, got %s", summary.Ingredients[0].ChangeState)
	}

	// 1 kg @ 90 + 3 kg @ 50 = 240 over 4 kg = 60/kg, original 70/kg
	assertDecimal(t, "modified cost", summary.ModifiedCost, "240")
	assertDecimal(t, "modified cost per kg", summary.ModifiedCostPerKg, "60")
	assertDecimal(t, "savings per kg", summary.SavingsPerKg, "10")

	// Setting the quantity back to the original flips the state by diff.
	if err := session.SetQuantity(0, servicetest.Dec("2")); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	summary = session.Summary()
	if summary.Ingredients[0].ChangeState != dto.SupplierChanged {
		t.Errorf("Expected SupplierChanged, got %s", summary.Ingredients[0].ChangeState)
	}
}

func TestSession_SetSupplierUnknown(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	if err := session.SetSupplier(0, "sm-nope"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSession_RemoveCountsAsChange(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	if err := session.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	summary := session.Summary()
	if summary.ChangeCount != 1 {
		t.Errorf("Expected 1 change for removal, got %d", summary.ChangeCount)
	}
	// Only flour remains: 2 kg @ 100.
	assertDecimal(t, "modified cost", summary.ModifiedCost, "200")
	if !summary.Ingredients[1].Removed {
		t.Error("Expected ingredient 1 to be marked removed")
	}

	if err := session.Restore(1); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	summary = session.Summary()
	if summary.ChangeCount != 0 {
		t.Errorf("Expected 0 changes after restore, got %d", summary.ChangeCount)
	}
}

func TestSession_ResetOneAndAll(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	_ = session.SetQuantity(0, servicetest.Dec("9"))
	_ = session.SetSupplier(0, "sm-flour-b")
	_ = session.SetQuantity(1, servicetest.Dec("7"))
	_ = session.Remove(1)

	if err := session.ResetOne(0); err != nil {
		t.Fatalf("ResetOne failed: %v", err)
	}
	summary := session.Summary()
	if summary.Ingredients[0].ChangeState != dto.Unchanged {
		t.Errorf("Expected entry 0 Unchanged after ResetOne, got %s", summary.Ingredients[0].ChangeState)
	}
	if summary.ChangeCount != 1 {
		t.Errorf("Expected remaining change on entry 1, got %d", summary.ChangeCount)
	}

	session.ResetAll()
	summary = session.Summary()
	if summary.ChangeCount != 0 {
		t.Errorf("Expected 0 changes after ResetAll, got %d", summary.ChangeCount)
	}
	assertDecimal(t, "modified cost", summary.ModifiedCost, "350")
}

func TestSession_TogglePriceLock(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	if err := session.TogglePriceLock(0, "contract", testNow); err != nil {
		t.Fatalf("TogglePriceLock failed: %v", err)
	}
	if !session.Summary().Ingredients[0].PriceLocked {
		t.Fatal("Expected entry 0 to be locked")
	}

	// A live price change must not affect the locked entry.
	sm := snap.SupplierMaterials["sm-flour-a"]
	sm.UnitPrice = servicetest.Dec("250")
	snap.SupplierMaterials["sm-flour-a"] = sm

	summary := session.Summary()
	assertDecimal(t, "locked flour cost", summary.Ingredients[0].Cost, "200")

	// Unlock re-adopts the live price.
	if err := session.TogglePriceLock(0, "", testNow); err != nil {
		t.Fatalf("TogglePriceLock unlock failed: %v", err)
	}
	summary = session.Summary()
	assertDecimal(t, "unlocked flour cost", summary.Ingredients[0].Cost, "500")
}

func TestSession_TargetGap(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	summary := session.Summary()
	if summary.TargetGap == nil {
		t.Fatal("Expected target gap when recipe has a target")
	}
	// 70/kg against target 65.
	assertDecimal(t, "target gap", *summary.TargetGap, "5")
}

func TestSession_CommitProducesSnapshot(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	_ = session.SetSupplier(0, "sm-flour-b")
	_ = session.TogglePriceLock(0, "committed deal", testNow)

	variant, err := session.Commit("Cheaper flour", testNow)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if variant.ID == "" {
		t.Error("Expected a generated variant id")
	}
	if variant.OriginalRecipeID != "rec-base" {
		t.Errorf("Expected original recipe rec-base, got %s", variant.OriginalRecipeID)
	}
	if len(variant.IngredientsSnapshot) != 2 {
		t.Fatalf("Expected 2 snapshot lines, got %d", len(variant.IngredientsSnapshot))
	}
	first := variant.IngredientsSnapshot[0]
	if first.SupplierMaterialID != "sm-flour-b" {
		t.Errorf("Expected substituted supplier material, got %s", first.SupplierMaterialID)
	}
	if first.Locked == nil {
		t.Fatal("Expected locked pricing to be carried into the snapshot")
	}
	if !first.Locked.UnitPrice.Equal(servicetest.Dec("90")) {
		t.Errorf("Expected locked price 90, got %s", first.Locked.UnitPrice)
	}

	// The snapshot is a copy: later session edits must not leak into it.
	_ = session.SetQuantity(0, servicetest.Dec("99"))
	if !first.Quantity.Equal(servicetest.Dec("2")) {
		t.Errorf("Expected committed quantity 2, got %s", first.Quantity)
	}
}

func TestSession_CommitValidation(t *testing.T) {
	snap := servicetest.BaseSnapshot()
	session, _ := NewSession(snap, "rec-base")

	if _, err := session.Commit("", testNow); err == nil {
		t.Error("Expected error for empty variant name")
	}

	_ = session.Remove(0)
	_ = session.Remove(1)
	if _, err := session.Commit("Empty", testNow); err == nil {
		t.Error("Expected error when committing with no ingredients")
	}
}

func TestAlternatives_SortedByPrice(t *testing.T) {
	snap := servicetest.BaseSnapshot()

	alternatives, err := Alternatives(snap, "sm-flour-a")
	if err != nil {
		t.Fatalf("Alternatives failed: %v", err)
	}
	if len(alternatives) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(alternatives))
	}
	if alternatives[0].ID != "sm-flour-b" {
		t.Errorf("Expected sm-flour-b, got %s", alternatives[0].ID)
	}

	// Add a pricier offer of the same material; order stays ascending.
	snap.SupplierMaterials["sm-flour-c"] = snap.SupplierMaterials["sm-flour-b"]
	smC := snap.SupplierMaterials["sm-flour-c"]
	smC.ID = "sm-flour-c"
	smC.UnitPrice = servicetest.Dec("140")
	snap.SupplierMaterials["sm-flour-c"] = smC

	alternatives, err = Alternatives(snap, "sm-flour-a")
	if err != nil {
		t.Fatalf("Alternatives failed: %v", err)
	}
	if len(alternatives) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(alternatives))
	}
	if alternatives[0].ID != "sm-flour-b" || alternatives[1].ID != "sm-flour-c" {
		t.Errorf("Expected ascending price order, got %s then %s", alternatives[0].ID, alternatives[1].ID)
	}

	if _, err := Alternatives(snap, "sm-nope"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, expected string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !got.Equal(want) {
		t.Errorf("Expected %s %s, got %s", name, want, got)
	}
}
