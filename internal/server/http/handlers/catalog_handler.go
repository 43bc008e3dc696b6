package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/server/http/dto"
)

// CatalogHandler serves the public menu and the admin catalog endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Menu handles GET /api/menu.
func (h *CatalogHandler) Menu(c *gin.Context) {
	sections, err := h.facade.Menu(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.MenuSectionResponse, 0, len(sections))
	for _, section := range sections {
		products := make([]dto.ProductResponse, 0, len(section.Products))
		for _, p := range section.Products {
			products = append(products, toProductResponse(p))
		}
		response = append(response, dto.MenuSectionResponse{
			Category: toCategoryResponse(section.Category),
			Products: products,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateCategory handles POST /api/staff/catalog/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	category, err := h.facade.CreateCategory(c.Request.Context(), model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// CreateProduct handles POST /api/staff/catalog/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	product, ok := bindProduct(c)
	if !ok {
		return
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// GetProduct handles GET /api/staff/catalog/products/:productID.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.GetProduct(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/staff/catalog/products/:productID.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	product, ok := bindProduct(c)
	if !ok {
		return
	}
	product.ID = id

	if err := h.facade.UpdateProduct(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
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

// DeleteProduct handles DELETE /api/staff/catalog/products/:productID.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func bindProduct(c *gin.Context) (model.Product, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return model.Product{}, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return model.Product{}, false
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return model.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Active:      active,
	}, true
}

func toCategoryResponse(category model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

func toProductResponse(product model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Active:      product.Active,
	}
}
