package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	principal := CurrentPrincipal(c)

	orders, err := h.facade.CustomerOrders(c.Request.Context(), principal.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:orderID.
func (h *OrderHandler) Get(c *gin.Context) {
	principal := CurrentPrincipal(c)

	orderID, ok := pathID(c, "orderID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CustomerOrder(c.Request.Context(), principal.ID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// StaffList handles GET /api/staff/orders. The optional state query filters
// by a comma separated list of order states.
func (h *OrderHandler) StaffList(c *gin.Context) {
	actor := CurrentStaff(c)

	states, ok := parseStates(c.Query("state"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.StaffOrders(c.Request.Context(), actor.Role, states)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownState):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Transition handles PATCH /api/staff/orders/:orderID/state.
func (h *OrderHandler) Transition(c *gin.Context) {
	actor := CurrentStaff(c)

	orderID, ok := pathID(c, "orderID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.TransitionOrder(c.Request.Context(), actor, orderID, model.OrderState(req.State))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownState):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrIllegalTransition):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrUnauthorized):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AssignCourier handles PUT /api/staff/orders/:orderID/courier.
func (h *OrderHandler) AssignCourier(c *gin.Context) {
	actor := CurrentStaff(c)

	orderID, ok := pathID(c, "orderID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AssignCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AssignCourier(c.Request.Context(), actor, orderID, req.CourierID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotACourier):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrUnauthorized):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func parseStates(raw string) ([]model.OrderState, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	states := make([]model.OrderState, 0, len(parts))
	for _, part := range parts {
		state := model.OrderState(strings.TrimSpace(part))
		if !state.Valid() {
			return nil, false
		}
		states = append(states, state)
	}
	return states, true
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal().StringFixed(2),
		})
	}
	return dto.OrderResponse{
		ID:          order.ID,
		Code:        order.Code,
		State:       string(order.State),
		Total:       order.Total.StringFixed(2),
		CourierID:   order.CourierID,
		CreatedAt:   order.CreatedAt,
		DeliveredAt: order.DeliveredAt,
		Lines:       lines,
	}
}
