package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu products.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Product is a menu item. Deactivation hides it from the menu, deletion is
// soft so historical order lines keep a resolvable reference.
type Product struct {
	ID          int64
	CategoryID  *int64
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
	Deleted     bool
	CreatedAt   time.Time
}

// MenuSection is one active category together with its sellable products.
type MenuSection struct {
	Category Category
	Products []Product
}
