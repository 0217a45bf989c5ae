package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// ProductRepository reads products and their sellable variants from
// SQLite. Packaging and label selections are stored as JSON columns.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a SQLite-backed product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// GetProduct returns a product by ID
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	var p entities.Product
	var recipeID, variantID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, recipe_id, recipe_variant_id FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &recipeID, &variantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query product %s: %w", id, err)
	}
	p.RecipeID = recipeID.String
	p.RecipeVariantID = variantID.String
	return &p, nil
}

// GetAllProducts returns all products
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]*entities.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, recipe_id, recipe_variant_id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		var p entities.Product
		var recipeID, variantID sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &recipeID, &variantID); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.RecipeID = recipeID.String
		p.RecipeVariantID = variantID.String
		products = append(products, &p)
	}
	return products, rows.Err()
}

// GetAllProductVariants returns all sellable product variants
func (r *ProductRepository) GetAllProductVariants(ctx context.Context) ([]*entities.ProductVariant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, fill_quantity, fill_unit, packaging, front_label, back_label
		 FROM product_variants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query product variants: %w", err)
	}
	defer rows.Close()

	var variants []*entities.ProductVariant
	for rows.Next() {
		var pv entities.ProductVariant
		var fillQuantity, fillUnit string
		var packaging, frontLabel, backLabel sql.NullString
		if err := rows.Scan(&pv.ID, &pv.ProductID, &pv.Name, &fillQuantity, &fillUnit, &packaging, &frontLabel, &backLabel); err != nil {
			return nil, fmt.Errorf("scan product variant: %w", err)
		}
		if pv.FillQuantity, err = parseDecimal("fill_quantity", fillQuantity); err != nil {
			return nil, err
		}
		pv.FillUnit = entities.Unit(fillUnit)
		if pv.Packaging, err = decodeSelection(pv.ID, "packaging", packaging); err != nil {
			return nil, err
		}
		if pv.FrontLabel, err = decodeSelection(pv.ID, "front_label", frontLabel); err != nil {
			return nil, err
		}
		if pv.BackLabel, err = decodeSelection(pv.ID, "back_label", backLabel); err != nil {
			return nil, err
		}
		variants = append(variants, &pv)
	}
	return variants, rows.Err()
}

func decodeSelection(variantID, column string, raw sql.NullString) (*entities.SupplySelection, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var sel entities.SupplySelection
	if err := json.Unmarshal([]byte(raw.String), &sel); err != nil {
		return nil, fmt.Errorf("decode %s for product variant %s: %w", column, variantID, err)
	}
	return &sel, nil
}
