package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service"
)

// Интерфейсы сервисов ниже существуют ради моков в тестах хэндлеров.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type PermissionServicer interface {
	HasPermission(ctx context.Context, roleID int64, roleName string, requiredCodes ...string) (bool, error)
}

type ClientServicer interface {
	Create(ctx context.Context, args repoargs.CreateClient) (*domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateClient) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type ProductServicer interface {
	Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateProduct) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CommentServicer interface {
	Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error)
	GetAll(ctx context.Context) ([]domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type OrderServicer interface {
	Create(ctx context.Context, args service.CreateOrderArgs) (*service.OrderConfirmation, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*service.OrderDetails, error)
}
