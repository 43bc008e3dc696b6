package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-order staging area. At most one active cart exists
// per customer; checkout deactivates it instead of deleting.
type Cart struct {
	ID         int64
	CustomerID int64
	Active     bool
	CreatedAt  time.Time
}

// CartLine holds one product with its quantity. Unique per (cart, product);
// re-adding a product folds into the existing line.
type CartLine struct {
	ID        int64
	CartID    int64
	ProductID int64
	Quantity  int32
}

// CartItem is a cart line joined with its product for display and checkout.
type CartItem struct {
	Line    CartLine
	Product Product
}

// Subtotal returns the current product price multiplied by quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt32(i.Line.Quantity))
}

// CartView is a cart with resolved items and the running total.
type CartView struct {
	Cart  Cart
	Items []CartItem
	Total decimal.Decimal
}

// ItemCount returns the summed quantity across all lines.
func (v CartView) ItemCount() int32 {
	var n int32
	for _, item := range v.Items {
		n += item.Line.Quantity
	}
	return n
}
