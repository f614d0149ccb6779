package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/gin-gonic/gin"
)

type ClientsHandler struct {
	clientService ClientServicer
}

func NewClientsHandler(clientService ClientServicer) *ClientsHandler {
	return &ClientsHandler{
		clientService: clientService,
	}
}

type ClientParams struct {
	Name  string `binding:"required,min=1,max=100"  json:"name"`
	Email string `binding:"required,email,max=255"  json:"email"`
	Phone string `binding:"omitempty,max=30"        json:"phone"`
}

type UpdateClientParams struct {
	Name     string `binding:"required,min=1,max=100"   json:"name"`
	Email    string `binding:"required,email,max=255"   json:"email"`
	Phone    string `binding:"omitempty,max=30"         json:"phone"`
	IsActive *bool  `binding:"required"                 json:"is_active"`
}

type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		IsActive:  client.IsActive,
		CreatedAt: client.CreatedAt,
	}
}

// Create POST RouteGroup + ClientsRoute.
func (h *ClientsHandler) Create(c *gin.Context) {
	var params ClientParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	client, err := h.clientService.Create(ctx, repoargs.CreateClient{
		Name:  params.Name,
		Email: params.Email,
		Phone: params.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("client with this email already exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": newClientResponse(client)})
}

// Index GET RouteGroup + ClientsRoute.
func (h *ClientsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	clients, err := h.clientService.GetAll(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	resp := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, newClientResponse(&clients[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(resp),
		"clients": resp,
	})
}

// Show GET RouteGroup + ClientsRoute + "/:id".
func (h *ClientsHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	client, err := h.clientService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("client not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": newClientResponse(client)})
}

// Update PUT RouteGroup + ClientsRoute + "/:id".
func (h *ClientsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params UpdateClientParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	client, err := h.clientService.Update(ctx, id, repoargs.UpdateClient{
		Name:     params.Name,
		Email:    params.Email,
		Phone:    params.Phone,
		IsActive: *params.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("client not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		if errors.Is(err, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("client with this email already exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": newClientResponse(client)})
}

// Destroy DELETE RouteGroup + ClientsRoute + "/:id".
func (h *ClientsHandler) Destroy(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.clientService.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("client not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.Status(http.StatusNoContent)
}
