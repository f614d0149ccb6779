package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/service"
	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orderService OrderServicer
}

func NewOrdersHandler(orderService OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
	}
}

type OrderItemParams struct {
	ProductID int64 `binding:"required,gt=0" json:"product_id"`
	Quantity  int32 `binding:"required,gt=0" json:"quantity"`
}

type OrderPaymentParams struct {
	Method string `binding:"required,min=1,max=50" json:"method"`
	Amount string `binding:"required"              json:"amount"`
}

type CreateOrderParams struct {
	ClientID int64                `binding:"required,gt=0"        json:"client_id"`
	Items    []OrderItemParams    `binding:"required,min=1,dive"  json:"items"`
	Payments []OrderPaymentParams `binding:"required,min=1,dive"  json:"payments"`
}

type OrderResponse struct {
	ID         int64                  `json:"id"`
	ClientID   int64                  `json:"client_id"`
	ClientName string                 `json:"client_name,omitempty"`
	UserID     int64                  `json:"user_id"`
	UserName   string                 `json:"user_name,omitempty"`
	Total      string                 `json:"total"`
	Status     domain.OrderStatusType `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		ClientID:   order.ClientID,
		ClientName: order.ClientName,
		UserID:     order.UserID,
		UserName:   order.UserName,
		Total:      order.TotalAmount.StringFixed(2),
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}
}

type OrderItemResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type OrderPaymentResponse struct {
	Method      string    `json:"method"`
	Amount      string    `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}

type PaymentConfirmationResponse struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
}

type OrderConfirmationResponse struct {
	OrderID  int64                         `json:"order_id"`
	Total    string                        `json:"total"`
	Payments []PaymentConfirmationResponse `json:"payments"`
}

// Create POST RouteGroup + OrdersRoute. Создает заказ вместе с позициями и платежами
// одной транзакцией.
func (h *OrdersHandler) Create(c *gin.Context) {
	userID := getUserIDFromContext(c)

	var params CreateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	args := service.CreateOrderArgs{
		ClientID: params.ClientID,
		UserID:   userID,
		Items:    make([]service.OrderItemArgs, 0, len(params.Items)),
		Payments: make([]service.OrderPaymentArgs, 0, len(params.Payments)),
	}
	for _, item := range params.Items {
		args.Items = append(args.Items, service.OrderItemArgs{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	for _, payment := range params.Payments {
		args.Payments = append(args.Payments, service.OrderPaymentArgs{
			Method: payment.Method,
			Amount: payment.Amount,
		})
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	confirmation, err := h.orderService.Create(ctx, args)
	if err != nil {
		h.renderCreateError(c, err)
		return
	}

	resp := OrderConfirmationResponse{
		OrderID:  confirmation.OrderID,
		Total:    confirmation.Total.StringFixed(2),
		Payments: make([]PaymentConfirmationResponse, 0, len(confirmation.Payments)),
	}
	for _, p := range confirmation.Payments {
		resp.Payments = append(resp.Payments, PaymentConfirmationResponse{
			Method: p.Method,
			Amount: p.Amount.StringFixed(2),
		})
	}

	c.JSON(http.StatusCreated, gin.H{"order": resp})
}

func (h *OrdersHandler) renderCreateError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var productNotFoundErr *domain.ProductNotFoundError
	var invalidAmountErr *domain.InvalidAmountError
	var mismatchErr *domain.FinancialMismatchError

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &productNotFoundErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": productNotFoundErr.Error()})
	case errors.As(err, &invalidAmountErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": invalidAmountErr.Error()})
	case errors.As(err, &mismatchErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": mismatchErr.Error()})
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

// Index GET RouteGroup + OrdersRoute.
func (h *OrdersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.orderService.GetAll(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, newOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(resp),
		"orders": resp,
	})
}

// Show GET RouteGroup + OrdersRoute + "/:id". Заказ вместе с позициями и платежами.
func (h *OrdersHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	details, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("order not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	items := make([]OrderItemResponse, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
		})
	}
	payments := make([]OrderPaymentResponse, 0, len(details.Payments))
	for _, payment := range details.Payments {
		payments = append(payments, OrderPaymentResponse{
			Method:      payment.Method,
			Amount:      payment.Amount.StringFixed(2),
			PaymentDate: payment.PaymentDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    newOrderResponse(&details.Order),
		"items":    items,
		"payments": payments,
	})
}
