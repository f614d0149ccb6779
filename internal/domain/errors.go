package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")
)

// ValidationError - ошибка входных данных, исправимая вызывающей стороной.
// Возвращается до открытия транзакции.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ProductNotFoundError возвращается резолвером позиций заказа, если указанного
// товара нет в каталоге. Откатывает всю операцию целиком.
type ProductNotFoundError struct {
	ProductID int64
}

func NewProductNotFoundError(productID int64) error {
	return &ProductNotFoundError{ProductID: productID}
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ProductID)
}

// InvalidAmountError - сумма платежа не распарсилась как неотрицательное десятичное число.
type InvalidAmountError struct {
	Method string
	Raw    string
}

func NewInvalidAmountError(method, raw string) error {
	return &InvalidAmountError{Method: method, Raw: raw}
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("payment `%s` has invalid amount `%s`", e.Method, e.Raw)
}

// FinancialMismatchError - посчитанная сумма позиций и сумма платежей разошлись
// сильнее допуска. Несет оба значения для диагностики.
type FinancialMismatchError struct {
	Calculated decimal.Decimal
	Paid       decimal.Decimal
}

func NewFinancialMismatchError(calculated, paid decimal.Decimal) error {
	return &FinancialMismatchError{Calculated: calculated, Paid: paid}
}

func (e *FinancialMismatchError) Error() string {
	return fmt.Sprintf(
		"financial mismatch: order total is %s, but paid amount is %s",
		e.Calculated.StringFixed(2),
		e.Paid.StringFixed(2),
	)
}
