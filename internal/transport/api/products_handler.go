package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct {
	productService ProductServicer
}

func NewProductsHandler(productService ProductServicer) *ProductsHandler {
	return &ProductsHandler{
		productService: productService,
	}
}

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price.StringFixed(2),
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
	}
}

type ProductParams struct {
	Name        string `binding:"required,min=1,max=150"  json:"name"`
	Price       string `binding:"required"                json:"price"`
	Description string `binding:"omitempty,max=2000"      json:"description"`
}

// Create POST RouteGroup + ProductsRoute.
func (h *ProductsHandler) Create(c *gin.Context) {
	var params ProductParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	price, priceErr := decimal.NewFromString(params.Price)
	if priceErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("price must be a decimal string")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productService.Create(ctx, repoargs.CreateProduct{
		Name:        params.Name,
		Price:       price,
		Description: params.Description,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": newProductResponse(product)})
}

// Index GET RouteGroup + ProductsRoute.
func (h *ProductsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	products, err := h.productService.GetAll(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, newProductResponse(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(resp),
		"products": resp,
	})
}

// Show GET RouteGroup + ProductsRoute + "/:id".
func (h *ProductsHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": newProductResponse(product)})
}

// Update PUT RouteGroup + ProductsRoute + "/:id".
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params ProductParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	price, priceErr := decimal.NewFromString(params.Price)
	if priceErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("price must be a decimal string")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productService.Update(ctx, id, repoargs.UpdateProduct{
		Name:        params.Name,
		Price:       price,
		Description: params.Description,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": newProductResponse(product)})
}

// Destroy DELETE RouteGroup + ProductsRoute + "/:id".
func (h *ProductsHandler) Destroy(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.productService.Delete(ctx, id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) renderError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error()})
	case errors.Is(err, domain.ErrRecordNotFound):
		_ = c.AbortWithError(http.StatusNotFound, errors.New("product not found")).
			SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrDuplicateKey):
		_ = c.AbortWithError(http.StatusConflict, errors.New("product with this name already exists")).
			SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
