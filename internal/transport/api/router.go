package api

import (
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup        = "/api/v1"
	AuthRegisterRoute = "/auth/register"
	AuthLoginRoute    = "/auth/login"
	ClientsRoute      = "/clients"
	ProductsRoute     = "/products"
	CommentsRoute     = "/comments"
	OrdersRoute       = "/orders"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	OrderService   OrderServicer
	ClientService  ClientServicer
	ProductService ProductServicer
	CommentService CommentServicer
	Permissions    PermissionServicer
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	clientsHandler := NewClientsHandler(args.ClientService)
	productsHandler := NewProductsHandler(args.ProductService)
	commentsHandler := NewCommentsHandler(args.CommentService)
	ordersHandler := NewOrdersHandler(args.OrderService)

	api := r.Group(RouteGroup)

	api.POST(AuthRegisterRoute, authHandler.Register)
	api.POST(AuthLoginRoute, authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	clients := api.Group(ClientsRoute)
	clients.POST("", middlewares.RequirePermission(args.Permissions, domain.PermClientsCreate), clientsHandler.Create)
	clients.GET("", middlewares.RequirePermission(args.Permissions, domain.PermClientsRead), clientsHandler.Index)
	clients.GET("/:id", middlewares.RequirePermission(args.Permissions, domain.PermClientsRead), clientsHandler.Show)
	clients.PUT("/:id", middlewares.RequirePermission(args.Permissions, domain.PermClientsUpdate), clientsHandler.Update)
	clients.DELETE("/:id", middlewares.RequirePermission(args.Permissions, domain.PermClientsDelete), clientsHandler.Destroy)

	products := api.Group(ProductsRoute)
	products.POST("", middlewares.RequirePermission(args.Permissions, domain.PermProductsCreate), productsHandler.Create)
	products.GET("", middlewares.RequirePermission(args.Permissions, domain.PermProductsRead), productsHandler.Index)
	products.GET("/:id", middlewares.RequirePermission(args.Permissions, domain.PermProductsRead), productsHandler.Show)
	products.PUT("/:id", middlewares.RequirePermission(args.Permissions, domain.PermProductsUpdate), productsHandler.Update)
	products.DELETE("/:id", middlewares.RequirePermission(args.Permissions, domain.PermProductsDelete), productsHandler.Destroy)

	comments := api.Group(CommentsRoute)
	comments.POST("", middlewares.RequirePermission(args.Permissions, domain.PermCommentsCreate), commentsHandler.Create)
	comments.GET("", middlewares.RequirePermission(args.Permissions, domain.PermCommentsRead), commentsHandler.Index)
	comments.GET("/:id", middlewares.RequirePermission(args.Permissions, domain.PermCommentsRead), commentsHandler.Show)
	comments.PUT("/:id", middlewares.RequirePermission(args.Permissions, domain.PermCommentsUpdate), commentsHandler.Update)
	comments.DELETE("/:id", middlewares.RequirePermission(args.Permissions, domain.PermCommentsDelete), commentsHandler.Destroy)

	orders := api.Group(OrdersRoute)
	orders.POST("", middlewares.RequirePermission(args.Permissions, domain.PermOrdersCreate), ordersHandler.Create)
	orders.GET("", middlewares.RequirePermission(args.Permissions, domain.PermOrdersRead), ordersHandler.Index)
	orders.GET("/:id", middlewares.RequirePermission(args.Permissions, domain.PermOrdersRead), ordersHandler.Show)

	return r
}
