package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"github.com/shopspring/decimal"
)

// ReconcileTolerance - допуск абсолютного расхождения суммы позиций и суммы платежей.
// Зафиксирован константой поведения; если появится вторая валюта, переедет в конфиг.
var ReconcileTolerance = decimal.New(1, -2) // 0.01

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
	}, nil
}

type OrderItemArgs struct {
	ProductID int64
	Quantity  int32
}

type OrderPaymentArgs struct {
	Method string
	// Amount - десятичная строка; парсится агрегатором платежей.
	Amount string
}

type CreateOrderArgs struct {
	ClientID int64
	UserID   int64
	Items    []OrderItemArgs
	Payments []OrderPaymentArgs
}

type PaymentConfirmation struct {
	Method string
	Amount decimal.Decimal
}

type OrderConfirmation struct {
	OrderID  int64
	Total    decimal.Decimal
	Payments []PaymentConfirmation
}

type resolvedItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

// Create проводит заказ целиком в одной транзакции.
//
// Алгоритм работы:
//  1. Валидация входных данных и разбор сумм платежей - до открытия транзакции,
//     эти шаги не зависят от живых данных каталога.
//  2. В транзакции: резолв позиций по текущим ценам каталога (цена снапшотится
//     в позицию), сверка суммы позиций с суммой платежей в пределах
//     ReconcileTolerance, затем вставка шапки, позиций и платежей.
//
// Любая ошибка любого шага внутри транзакции откатывает всё: частично
// сохраненного заказа не бывает. Возвращаемые виды ошибок:
// *domain.ValidationError, *domain.InvalidAmountError, *domain.ProductNotFoundError,
// *domain.FinancialMismatchError, остальное - ошибки хранилища.
func (o *OrderService) Create(ctx context.Context, args CreateOrderArgs) (*OrderConfirmation, error) {
	if vErr := validateCreateOrderArgs(args); vErr != nil {
		return nil, vErr
	}

	payments, paidTotal, aggErr := aggregatePayments(args.Payments)
	if aggErr != nil {
		return nil, aggErr
	}

	var conf *OrderConfirmation

	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}

		resolved, calculatedTotal, resolveErr := resolveItems(c, productRepo, args.Items)
		if resolveErr != nil {
			return resolveErr
		}

		if calculatedTotal.Sub(paidTotal).Abs().GreaterThan(ReconcileTolerance) {
			return domain.NewFinancialMismatchError(calculatedTotal, paidTotal)
		}

		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		order, createErr := orderRepo.CreateOrder(c, repoargs.CreateOrder{
			ClientID:    args.ClientID,
			UserID:      args.UserID,
			TotalAmount: calculatedTotal,
			Status:      domain.OrderStatusComplete,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		if itemsErr := writeItems(c, orderRepo, order.ID, resolved); itemsErr != nil {
			return itemsErr
		}
		if paymentsErr := writePayments(c, orderRepo, order.ID, payments); paymentsErr != nil {
			return paymentsErr
		}

		conf = &OrderConfirmation{
			OrderID:  order.ID,
			Total:    order.TotalAmount,
			Payments: payments,
		}
		return nil
	})

	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}
	return conf, nil
}

// validateCreateOrderArgs отсекает исправимые вызывающей стороной ошибки до старта транзакции.
func validateCreateOrderArgs(args CreateOrderArgs) error {
	if args.ClientID <= 0 {
		return domain.NewValidationError("order requires a client")
	}
	if len(args.Items) == 0 {
		return domain.NewValidationError("order requires at least one item")
	}
	if len(args.Payments) == 0 {
		return domain.NewValidationError("order requires payment details")
	}
	for _, item := range args.Items {
		if item.Quantity <= 0 {
			return domain.NewValidationError("quantity for product %d must be a positive integer", item.ProductID)
		}
	}
	return nil
}

// aggregatePayments разбирает суммы платежей и считает общий итог. Методы платежей
// не проверяются и сохраняются как есть.
func aggregatePayments(payments []OrderPaymentArgs) ([]PaymentConfirmation, decimal.Decimal, error) {
	confirmations := make([]PaymentConfirmation, len(payments))
	total := decimal.Zero
	for i, payment := range payments {
		amount, parseErr := decimal.NewFromString(payment.Amount)
		if parseErr != nil || amount.IsNegative() {
			return nil, decimal.Zero, domain.NewInvalidAmountError(payment.Method, payment.Amount)
		}
		confirmations[i] = PaymentConfirmation{Method: payment.Method, Amount: amount}
		total = total.Add(amount)
	}
	return confirmations, total, nil
}

// resolveItems подставляет в каждую позицию текущую цену каталога и считает
// общую стоимость. Неизвестный товар прерывает резолв целиком.
func resolveItems(
	ctx context.Context,
	repo ProductRepository,
	items []OrderItemArgs,
) ([]resolvedItem, decimal.Decimal, error) {
	resolved := make([]resolvedItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		price, priceErr := repo.GetPrice(ctx, item.ProductID)
		if priceErr != nil {
			if errors.Is(priceErr, domain.ErrRecordNotFound) {
				return nil, decimal.Zero, domain.NewProductNotFoundError(item.ProductID)
			}
			return nil, decimal.Zero, priceErr //nolint:wrapcheck
		}
		resolved[i] = resolvedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		}
		total = total.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return resolved, total, nil
}

func writeItems(ctx context.Context, repo OrderRepository, orderID int64, items []resolvedItem) error {
	args := make([]repoargs.CreateOrderItem, len(items))
	for i, item := range items {
		args[i] = repoargs.CreateOrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	// itemsErr хранит последнюю ошибку батча, объединять их смысла нет.
	var itemsErr error
	repo.BatchCreateItems(ctx, args, func(_ int, err error) {
		if err != nil {
			itemsErr = err
		}
	})
	return itemsErr
}

func writePayments(ctx context.Context, repo OrderRepository, orderID int64, payments []PaymentConfirmation) error {
	args := make([]repoargs.CreateOrderPayment, len(payments))
	for i, payment := range payments {
		args[i] = repoargs.CreateOrderPayment{
			OrderID: orderID,
			Method:  payment.Method,
			Amount:  payment.Amount,
		}
	}
	var paymentsErr error
	repo.BatchCreatePayments(ctx, args, func(_ int, err error) {
		if err != nil {
			paymentsErr = err
		}
	})
	return paymentsErr
}

type OrderDetails struct {
	Order    domain.Order
	Items    []domain.OrderItem
	Payments []domain.OrderPayment
}

// GetAll возвращает заказы отсортированные по дате создания по убыванию.
func (o *OrderService) GetAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// GetByID возвращает заказ вместе с его позициями и платежами.
func (o *OrderService) GetByID(ctx context.Context, id int64) (*OrderDetails, error) {
	order, orderErr := o.orderRepo.FindByID(ctx, id)
	if orderErr != nil {
		return nil, orderErr //nolint:wrapcheck
	}
	items, itemsErr := o.orderRepo.GetItems(ctx, id)
	if itemsErr != nil {
		return nil, itemsErr //nolint:wrapcheck
	}
	payments, paymentsErr := o.orderRepo.GetPayments(ctx, id)
	if paymentsErr != nil {
		return nil, paymentsErr //nolint:wrapcheck
	}
	return &OrderDetails{
		Order:    *order,
		Items:    items,
		Payments: payments,
	}, nil
}
