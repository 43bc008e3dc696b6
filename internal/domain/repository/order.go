package repository

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CheckoutCart atomically converts the customer's active cart into an
	// order: snapshots product names and prices into order lines, computes
	// the total and deactivates the cart. Empty or missing cart yields
	// ErrEmptyCart.
	CheckoutCart(ctx context.Context, customerID int64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByCode(ctx context.Context, code string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByStates(ctx context.Context, states ...model.OrderState) ([]model.Order, error)
	// Mutate runs apply against the order row locked for update and persists
	// state, courier and delivery timestamp changes in the same transaction.
	// An error from apply rolls back and is returned unchanged.
	Mutate(ctx context.Context, orderID int64, apply func(*model.Order) error) (*model.Order, error)
}
