package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// RecipeRepository provides in-memory storage for recipes, their
// ingredient lines and saved variants
type RecipeRepository struct {
	recipes     []entities.Recipe
	recipesMap  map[string]int
	ingredients []entities.RecipeIngredient
	variants    []entities.RecipeVariant
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:    make([]entities.Recipe, 0, expectedRecipes),
		recipesMap: make(map[string]int, expectedRecipes),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		r.AddRecipe(*recipe)
	}
	return nil
}

// AddRecipe adds a recipe to the repository
func (r *RecipeRepository) AddRecipe(recipe entities.Recipe) {
	r.recipesMap[recipe.ID] = len(r.recipes)
	r.recipes = append(r.recipes, recipe)
}

// LoadIngredients loads recipe ingredient lines into the repository
func (r *RecipeRepository) LoadIngredients(ingredients []*entities.RecipeIngredient) error {
	for _, ri := range ingredients {
		r.ingredients = append(r.ingredients, *ri)
	}
	return nil
}

// LoadVariants loads saved recipe variants into the repository
func (r *RecipeRepository) LoadVariants(variants []*entities.RecipeVariant) error {
	for _, v := range variants {
		r.variants = append(r.variants, *v)
	}
	return nil
}

// AddVariant adds a saved recipe variant to the repository
func (r *RecipeRepository) AddVariant(variant entities.RecipeVariant) {
	r.variants = append(r.variants, variant)
}

// GetRecipe returns a recipe by ID
func (r *RecipeRepository) GetRecipe(_ context.Context, id string) (*entities.Recipe, error) {
	index, exists := r.recipesMap[id]
	if !exists {
		return nil, fmt.Errorf("recipe %s: %w", id, repositories.ErrNotFound)
	}
	return &r.recipes[index], nil
}

// GetAllRecipes returns all recipes
func (r *RecipeRepository) GetAllRecipes(_ context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	for i := range r.recipes {
		recipes = append(recipes, &r.recipes[i])
	}
	return recipes, nil
}

// GetAllIngredients returns all recipe ingredient lines
func (r *RecipeRepository) GetAllIngredients(_ context.Context) ([]*entities.RecipeIngredient, error) {
	var ingredients []*entities.RecipeIngredient
	for i := range r.ingredients {
		ingredients = append(ingredients, &r.ingredients[i])
	}
	return ingredients, nil
}

// GetAllVariants returns all saved recipe variants
func (r *RecipeRepository) GetAllVariants(_ context.Context) ([]*entities.RecipeVariant, error) {
	var variants []*entities.RecipeVariant
	for i := range r.variants {
		variants = append(variants, &r.variants[i])
	}
	return variants, nil
}
