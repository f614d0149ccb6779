package service

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	GetPermissionCodes(ctx context.Context, roleID int64) ([]string, error)
}

type ClientRepository interface {
	Create(ctx context.Context, args repoargs.CreateClient) (*domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateClient) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	GetPrice(ctx context.Context, id int64) (decimal.Decimal, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateProduct) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error)
	GetAll(ctx context.Context) ([]domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	BatchCreateItems(ctx context.Context, items []repoargs.CreateOrderItem, fn repoargs.BatchExecQueryRow)
	BatchCreatePayments(ctx context.Context, payments []repoargs.CreateOrderPayment, fn repoargs.BatchExecQueryRow)
	GetAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	GetPayments(ctx context.Context, orderID int64) ([]domain.OrderPayment, error)
}
