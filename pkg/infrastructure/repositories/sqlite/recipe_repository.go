package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// RecipeRepository reads recipes, ingredient lines and saved variants
// from SQLite. Locked pricing and variant snapshots are stored as JSON
// columns.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a SQLite-backed recipe repository
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// GetRecipe returns a recipe by ID
func (r *RecipeRepository) GetRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, status, target_cost_per_kg, version FROM recipes WHERE id = ?`, id)

	recipe, err := scanRecipe(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query recipe %s: %w", id, err)
	}
	return recipe, nil
}

// GetAllRecipes returns all recipes
func (r *RecipeRepository) GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, target_cost_per_kg, version FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*entities.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// GetAllIngredients returns all recipe ingredient lines
func (r *RecipeRepository) GetAllIngredients(ctx context.Context) ([]*entities.RecipeIngredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recipe_id, supplier_material_id, quantity, unit, locked_pricing
		 FROM recipe_ingredients ORDER BY recipe_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*entities.RecipeIngredient
	for rows.Next() {
		var ri entities.RecipeIngredient
		var quantity, unit string
		var locked sql.NullString
		if err := rows.Scan(&ri.ID, &ri.RecipeID, &ri.SupplierMaterialID, &quantity, &unit, &locked); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if ri.Quantity, err = parseDecimal("quantity", quantity); err != nil {
			return nil, err
		}
		ri.Unit = entities.Unit(unit)
		if locked.Valid && locked.String != "" {
			var lp entities.LockedPricing
			if err := json.Unmarshal([]byte(locked.String), &lp); err != nil {
				return nil, fmt.Errorf("decode locked pricing for ingredient %s: %w", ri.ID, err)
			}
			ri.Locked = &lp
		}
		ingredients = append(ingredients, &ri)
	}
	return ingredients, rows.Err()
}

// GetAllVariants returns all saved recipe variants
func (r *RecipeRepository) GetAllVariants(ctx context.Context) ([]*entities.RecipeVariant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, original_recipe_id, name, ingredients_snapshot, created_at
		 FROM recipe_variants ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query recipe variants: %w", err)
	}
	defer rows.Close()

	var variants []*entities.RecipeVariant
	for rows.Next() {
		var v entities.RecipeVariant
		var snapshotJSON, createdAt string
		if err := rows.Scan(&v.ID, &v.OriginalRecipeID, &v.Name, &snapshotJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan recipe variant: %w", err)
		}
		if err := json.Unmarshal([]byte(snapshotJSON), &v.IngredientsSnapshot); err != nil {
			return nil, fmt.Errorf("decode ingredients snapshot for variant %s: %w", v.ID, err)
		}
		if v.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for variant %s: %w", v.ID, err)
		}
		variants = append(variants, &v)
	}
	return variants, rows.Err()
}

func scanRecipe(scan func(dest ...any) error) (*entities.Recipe, error) {
	var recipe entities.Recipe
	var status string
	var target sql.NullString
	if err := scan(&recipe.ID, &recipe.Name, &status, &target, &recipe.Version); err != nil {
		return nil, err
	}
	recipe.Status = entities.RecipeStatus(status)
	if target.Valid {
		d, err := parseDecimal("target_cost_per_kg", target.String)
		if err != nil {
			return nil, err
		}
		recipe.TargetCostPerKg = &d
	}
	return &recipe, nil
}
