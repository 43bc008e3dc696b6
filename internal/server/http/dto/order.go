package dto

import "time"

// OrderLineResponse is an immutable order line snapshot.
type OrderLineResponse struct {
	ProductID   *int64 `json:"product_id,omitempty"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// OrderResponse is one order with optional lines.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Code        string              `json:"code"`
	State       string              `json:"state"`
	Total       string              `json:"total"`
	CourierID   *int64              `json:"courier_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	DeliveredAt *time.Time          `json:"delivered_at,omitempty"`
	Lines       []OrderLineResponse `json:"lines,omitempty"`
}

// TransitionRequest asks to move an order into a new state.
type TransitionRequest struct {
	State string `json:"state" binding:"required"`
}

// AssignCourierRequest sets or clears the order's courier.
type AssignCourierRequest struct {
	CourierID *int64 `json:"courier_id"`
}
