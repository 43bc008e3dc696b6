package repository

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
)

// CartRepository manages the customer's single active cart. Implementations
// must serialise concurrent mutations of the same cart.
type CartRepository interface {
	// AddItem adds one unit of the product to the customer's active cart,
	// creating the cart lazily and folding duplicates into the existing line.
	AddItem(ctx context.Context, customerID, productID int64) error
	// SetQuantity replaces the line quantity; zero removes the line.
	SetQuantity(ctx context.Context, customerID, productID int64, quantity int32) error
	RemoveItem(ctx context.Context, customerID, productID int64) error
	// ActiveView returns the active cart with items and total computed from
	// current product prices. Missing cart yields ErrNotFound.
	ActiveView(ctx context.Context, customerID int64) (*model.CartView, error)
}
