package dto

// AddCartItemRequest puts one unit of a product into the cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// SetCartQuantityRequest replaces a line quantity; zero removes the line.
type SetCartQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

// CartItemResponse is one cart line with its product snapshot.
type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// CartResponse is the active cart view.
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     string             `json:"total"`
	ItemCount int32              `json:"item_count"`
}
