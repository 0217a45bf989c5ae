package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// Loader bulk-reads every entity set a computation needs and hands
// back an immutable Snapshot. All reads are issued concurrently; the
// computation only starts once the full snapshot is available.
type Loader struct {
	materials repositories.MaterialRepository
	suppliers repositories.SupplierRepository
	recipes   repositories.RecipeRepository
	products  repositories.ProductRepository
	inventory repositories.InventoryRepository
	log       *logrus.Logger
}

// NewLoader creates a snapshot loader over the given repositories
func NewLoader(
	materials repositories.MaterialRepository,
	suppliers repositories.SupplierRepository,
	recipes repositories.RecipeRepository,
	products repositories.ProductRepository,
	inventory repositories.InventoryRepository,
	log *logrus.Logger,
) *Loader {
	return &Loader{
		materials: materials,
		suppliers: suppliers,
		recipes:   recipes,
		products:  products,
		inventory: inventory,
		log:       log,
	}
}

// Load fans out the independent repository reads and assembles the
// snapshot once they all complete. The first read error aborts the
// load.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	started := time.Now()
	snap := New()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("load %s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}

	run("materials", func(ctx context.Context) error {
		items, err := l.materials.GetAllMaterials(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, m := range items {
			snap.Materials[m.ID] = *m
		}
		return nil
	})

	run("suppliers", func(ctx context.Context) error {
		items, err := l.suppliers.GetAllSuppliers(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, s := range items {
			snap.Suppliers[s.ID] = *s
		}
		return nil
	})

	run("supplier materials", func(ctx context.Context) error {
		items, err := l.suppliers.GetAllSupplierMaterials(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, sm := range items {
			snap.SupplierMaterials[sm.ID] = *sm
		}
		return nil
	})

	run("recipes", func(ctx context.Context) error {
		items, err := l.recipes.GetAllRecipes(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, r := range items {
			snap.Recipes[r.ID] = *r
		}
		return nil
	})

	run("recipe ingredients", func(ctx context.Context) error {
		items, err := l.recipes.GetAllIngredients(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, ri := range items {
			snap.RecipeIngredients[ri.RecipeID] = append(snap.RecipeIngredients[ri.RecipeID], *ri)
		}
		return nil
	})

	run("recipe variants", func(ctx context.Context) error {
		items, err := l.recipes.GetAllVariants(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, v := range items {
			snap.Variants[v.ID] = *v
			snap.VariantsByRecipe[v.OriginalRecipeID] = append(snap.VariantsByRecipe[v.OriginalRecipeID], *v)
		}
		return nil
	})

	run("products", func(ctx context.Context) error {
		items, err := l.products.GetAllProducts(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, p := range items {
			snap.Products[p.ID] = *p
		}
		return nil
	})

	run("product variants", func(ctx context.Context) error {
		items, err := l.products.GetAllProductVariants(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, pv := range items {
			snap.ProductVariants[pv.ID] = *pv
		}
		return nil
	})

	run("inventory", func(ctx context.Context) error {
		items, err := l.inventory.GetAllInventory(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, ii := range items {
			snap.Stock[ii.Key()] = ii.CurrentStock
		}
		return nil
	})

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if l.log != nil {
		l.log.WithFields(logrus.Fields{
			"materials":          len(snap.Materials),
			"suppliers":          len(snap.Suppliers),
			"supplier_materials": len(snap.SupplierMaterials),
			"recipes":            len(snap.Recipes),
			"products":           len(snap.Products),
			"elapsed":            time.Since(started),
		}).Debug("snapshot loaded")
	}

	return snap, nil
}
