package repository

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
)

// CatalogRepository manages menu categories and products.
type CatalogRepository interface {
	Menu(ctx context.Context) ([]model.MenuSection, error)
	CreateCategory(ctx context.Context, c model.Category) (*model.Category, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	// SoftDeleteProduct hides the product from the menu while keeping the row
	// so historical order lines stay resolvable.
	SoftDeleteProduct(ctx context.Context, id int64) error
}
