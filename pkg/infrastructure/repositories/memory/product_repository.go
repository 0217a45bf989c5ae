package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// ProductRepository provides in-memory storage for products and their
// sellable variants
type ProductRepository struct {
	products        []entities.Product
	productsMap     map[string]int
	productVariants []entities.ProductVariant
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[string]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, p := range products {
		r.AddProduct(*p)
	}
	return nil
}

// AddProduct adds a product to the repository
func (r *ProductRepository) AddProduct(product entities.Product) {
	r.productsMap[product.ID] = len(r.products)
	r.products = append(r.products, product)
}

// LoadProductVariants loads sellable product variants into the
// repository
func (r *ProductRepository) LoadProductVariants(variants []*entities.ProductVariant) error {
	for _, pv := range variants {
		r.productVariants = append(r.productVariants, *pv)
	}
	return nil
}

// GetProduct returns a product by ID
func (r *ProductRepository) GetProduct(_ context.Context, id string) (*entities.Product, error) {
	index, exists := r.productsMap[id]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", id, repositories.ErrNotFound)
	}
	return &r.products[index], nil
}

// GetAllProducts returns all products
func (r *ProductRepository) GetAllProducts(_ context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}

// GetAllProductVariants returns all sellable product variants
func (r *ProductRepository) GetAllProductVariants(_ context.Context) ([]*entities.ProductVariant, error) {
	var variants []*entities.ProductVariant
	for i := range r.productVariants {
		variants = append(variants, &r.productVariants[i])
	}
	return variants, nil
}
