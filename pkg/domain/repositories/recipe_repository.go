package repositories

import (
	"context"

	"github.com/sahanip/batchcost/pkg/domain/entities"
)

// RecipeRepository provides read access to recipes, their ingredient
// lines, and saved variants
type RecipeRepository interface {
	GetRecipe(ctx context.Context, id string) (*entities.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error)
	GetAllIngredients(ctx context.Context) ([]*entities.RecipeIngredient, error)
	GetAllVariants(ctx context.Context) ([]*entities.RecipeVariant, error)
}
