package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

// CartUseCase manages the customer's staging cart and its conversion into an
// order at checkout.
type CartUseCase struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	notifier  Notifier
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, orders repository.OrderRepository, customers repository.CustomerRepository, notifier Notifier) *CartUseCase {
	return &CartUseCase{carts: carts, orders: orders, customers: customers, notifier: notifier}
}

// AddItem puts one unit of the product into the active cart, creating the
// cart lazily. Re-adding increments the existing line.
func (u *CartUseCase) AddItem(ctx context.Context, customerID, productID int64) error {
	return u.carts.AddItem(ctx, customerID, productID)
}

// SetQuantity replaces a line's quantity. Zero removes the line, negative
// values are rejected.
func (u *CartUseCase) SetQuantity(ctx context.Context, customerID, productID int64, quantity int32) error {
	if quantity < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if quantity == 0 {
		return u.carts.RemoveItem(ctx, customerID, productID)
	}
	return u.carts.SetQuantity(ctx, customerID, productID, quantity)
}

// RemoveItem deletes the product's line from the active cart.
func (u *CartUseCase) RemoveItem(ctx context.Context, customerID, productID int64) error {
	return u.carts.RemoveItem(ctx, customerID, productID)
}

// View returns the active cart contents. A customer without an active cart
// sees an empty cart rather than an error.
func (u *CartUseCase) View(ctx context.Context, customerID int64) (*model.CartView, error) {
	view, err := u.carts.ActiveView(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.CartView{
				Cart:  model.Cart{CustomerID: customerID},
				Total: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return view, nil
}

// Checkout converts the active cart into an order and announces the new
// order once the transaction has committed. A missing or empty cart fails
// with ErrEmptyCart; a second submission finds the cart deactivated and
// never creates a duplicate order.
func (u *CartUseCase) Checkout(ctx context.Context, customerID int64) (*model.Order, error) {
	order, err := u.orders.CheckoutCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	u.notifier.OrderChanged(*order, u.customerName(ctx, customerID))
	return order, nil
}

func (u *CartUseCase) customerName(ctx context.Context, customerID int64) string {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return ""
	}
	return customer.Name
}
