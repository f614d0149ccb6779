package repoargs

import (
	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateOrder struct {
	ClientID    int64
	UserID      int64
	TotalAmount decimal.Decimal
	Status      domain.OrderStatusType
}

type CreateOrderItem struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

type CreateOrderPayment struct {
	OrderID int64
	Method  string
	Amount  decimal.Decimal
}
