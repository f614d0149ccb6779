package service

import (
	"fmt"

	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type AppServices struct {
	UserService       *UserService
	PermissionService *PermissionService
	ClientService     *ClientService
	ProductService    *ProductService
	CommentService    *CommentService
	OrderService      *OrderService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	permissionService, permissionServiceErr := NewPermissionService(unitOfWork)
	if permissionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", permissionServiceErr.Error())
	}

	clientService, clientServiceErr := NewClientService(unitOfWork)
	if clientServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", clientServiceErr.Error())
	}

	productService, productServiceErr := NewProductService(unitOfWork)
	if productServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", productServiceErr.Error())
	}

	commentService, commentServiceErr := NewCommentService(unitOfWork)
	if commentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", commentServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	return &AppServices{
		UserService:       userService,
		PermissionService: permissionService,
		ClientService:     clientService,
		ProductService:    productService,
		CommentService:    commentService,
		OrderService:      orderService,
	}, nil
}
