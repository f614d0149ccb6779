package repoargs

import "github.com/shopspring/decimal"

type CreateProduct struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

type UpdateProduct struct {
	Name        string
	Price       decimal.Decimal
	Description string
}
