package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

func TestSupplierRepository(t *testing.T) {
	repo := NewSupplierRepository(2)
	ctx := context.Background()

	repo.AddSupplier(entities.Supplier{ID: "sup-a", Name: "Agro Traders", Active: true})
	repo.AddSupplier(entities.Supplier{ID: "sup-b", Name: "Bulk Mart", Active: true})
	repo.AddSupplierMaterial(entities.SupplierMaterial{
		ID: "sm-1", MaterialID: "m-1", SupplierID: "sup-a",
		UnitPrice: decimal.NewFromInt(100), Unit: entities.UnitKg,
	})

	supplier, err := repo.GetSupplier(ctx, "sup-a")
	if err != nil {
		t.Fatalf("GetSupplier failed: %v", err)
	}
	if supplier.Name != "Agro Traders" {
		t.Errorf("Expected Agro Traders, got %s", supplier.Name)
	}

	if _, err := repo.GetSupplier(ctx, "sup-zzz"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	offers, err := repo.GetAllSupplierMaterials(ctx)
	if err != nil {
		t.Fatalf("GetAllSupplierMaterials failed: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != "sm-1" {
		t.Errorf("Expected 1 offer sm-1, got %+v", offers)
	}

	suppliers, err := repo.GetAllSuppliers(ctx)
	if err != nil {
		t.Fatalf("GetAllSuppliers failed: %v", err)
	}
	if len(suppliers) != 2 {
		t.Errorf("Expected 2 suppliers, got %d", len(suppliers))
	}
}
