package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
	RoleName     string
}

type Role struct {
	ID   int64
	Name string
}

type Client struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Phone     string
	IsActive  bool
}

type Product struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Price       decimal.Decimal
	Description string
}

type Comment struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AuthorID    int64
	AuthorName  string
	AuthorEmail string
	Content     string
}

type Order struct {
	ID          int64
	CreatedAt   time.Time
	ClientID    int64
	UserID      int64
	TotalAmount decimal.Decimal
	Status      OrderStatusType
	// ClientName и UserName заполняются только выборками с join.
	ClientName string
	UserName   string
}

type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int32
	// UnitPrice - снапшот цены каталога на момент создания заказа, не пересчитывается.
	UnitPrice decimal.Decimal
}

type OrderPayment struct {
	ID          int64
	OrderID     int64
	Method      string
	Amount      decimal.Decimal
	PaymentDate time.Time
}
