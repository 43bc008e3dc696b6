package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/server/http/dto"
)

// CartHandler manages the customer's active cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// View handles GET /api/cart.
func (h *CartHandler) View(c *gin.Context) {
	principal := CurrentPrincipal(c)

	view, err := h.facade.Cart(c.Request.Context(), principal.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(*view))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	principal := CurrentPrincipal(c)

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.AddToCart(c.Request.Context(), principal.ID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// SetQuantity handles PUT /api/cart/items/:productID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	principal := CurrentPrincipal(c)

	productID, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetCartQuantity(c.Request.Context(), principal.ID, productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// RemoveItem handles DELETE /api/cart/items/:productID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	principal := CurrentPrincipal(c)

	productID, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RemoveFromCart(c.Request.Context(), principal.ID, productID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Checkout handles POST /api/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	principal := CurrentPrincipal(c)

	order, err := h.facade.Checkout(c.Request.Context(), principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func toCartResponse(view model.CartView) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, dto.CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price.StringFixed(2),
			Quantity:  item.Line.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return dto.CartResponse{
		Items:     items,
		Total:     view.Total.StringFixed(2),
		ItemCount: view.ItemCount(),
	}
}
