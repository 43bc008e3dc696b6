package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState describes the delivery lifecycle of an order.
type OrderState string

const (
	StateReceived       OrderState = "RECEIVED"
	StateInPreparation  OrderState = "IN_PREPARATION"
	StateReadyForPickup OrderState = "READY_FOR_PICKUP"
	StateEnRoute        OrderState = "EN_ROUTE"
	StateDelivered      OrderState = "DELIVERED"
	StateNotDelivered   OrderState = "NOT_DELIVERED"
)

// OrderStates lists every lifecycle state in flow order.
var OrderStates = []OrderState{
	StateReceived,
	StateInPreparation,
	StateReadyForPickup,
	StateEnRoute,
	StateDelivered,
	StateNotDelivered,
}

// Valid reports whether the state belongs to the closed lifecycle set.
func (s OrderState) Valid() bool {
	switch s {
	case StateReceived, StateInPreparation, StateReadyForPickup, StateEnRoute, StateDelivered, StateNotDelivered:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave the state.
func (s OrderState) Terminal() bool {
	return s == StateDelivered || s == StateNotDelivered
}

// Order describes a confirmed purchase. Immutable after creation except for
// state, courier assignment and delivery timestamp.
type Order struct {
	ID          int64
	Code        string
	CustomerID  int64
	CourierID   *int64
	State       OrderState
	Total       decimal.Decimal
	CreatedAt   time.Time
	DeliveredAt *time.Time
	Lines       []OrderLine
}

// OrderLine is a historical snapshot of one purchased item. ProductID is nil
// when the product was deleted later; name and unit price stay as sold.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   *int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int32
}

// Subtotal returns unit price multiplied by quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// NewOrderCode generates a short unique human-readable order code.
func NewOrderCode() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8]))
}
