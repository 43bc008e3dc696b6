package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

// CatalogUseCase serves the public menu and admin catalog maintenance.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

// Menu returns active categories with their sellable products.
func (u *CatalogUseCase) Menu(ctx context.Context) ([]model.MenuSection, error) {
	return u.catalog.Menu(ctx)
}

// CreateCategory adds a menu category.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.catalog.CreateCategory(ctx, c)
}

// CreateProduct adds a menu product with a positive price.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || !p.Price.IsPositive() {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.catalog.CreateProduct(ctx, p)
}

// UpdateProduct replaces the product's editable fields.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, p model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || !p.Price.IsPositive() {
		return domainErrors.ErrInvalidInput
	}
	return u.catalog.UpdateProduct(ctx, p)
}

// GetProduct fetches one product, deleted included.
func (u *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return u.catalog.GetProduct(ctx, id)
}

// DeleteProduct soft-deletes the product, keeping order history intact.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.catalog.SoftDeleteProduct(ctx, id)
}
