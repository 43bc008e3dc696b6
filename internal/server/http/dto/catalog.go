package dto

// CategoryResponse is one menu category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductResponse is one sellable product. Price is a fixed-point string.
type ProductResponse struct {
	ID          int64  `json:"id"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Active      bool   `json:"active"`
}

// MenuSectionResponse is a category with its products.
type MenuSectionResponse struct {
	Category CategoryResponse  `json:"category"`
	Products []ProductResponse `json:"products"`
}

// CreateCategoryRequest adds a menu category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ProductRequest creates or replaces a product. Price is a decimal string.
type ProductRequest struct {
	CategoryID  *int64 `json:"category_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Active      *bool  `json:"active"`
}
