package domain

type OrderStatusType string

const (
	OrderStatusComplete OrderStatusType = "complete"
)

const (
	RoleAdmin    = "Admin"
	RoleSalesRep = "Sales Rep"
)

const (
	PermClientsCreate  = "clients:create"
	PermClientsRead    = "clients:read"
	PermClientsUpdate  = "clients:update"
	PermClientsDelete  = "clients:delete"
	PermProductsCreate = "products:create"
	PermProductsRead   = "products:read"
	PermProductsUpdate = "products:update"
	PermProductsDelete = "products:delete"
	PermCommentsCreate = "comments:create"
	PermCommentsRead   = "comments:read"
	PermCommentsUpdate = "comments:update"
	PermCommentsDelete = "comments:delete"
	PermOrdersCreate   = "orders:create"
	PermOrdersRead     = "orders:read"
)
