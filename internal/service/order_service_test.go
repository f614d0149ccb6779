package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service/mocks"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-crm/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockOrderRepo   *mocks.MockOrderRepository
	mockProductRepo *mocks.MockProductRepository
	orderService    *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(s.mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	orderService, servErr := NewOrderService(s.mockUOW)
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTxRun настраивает мок uow так, что переданная в Do функция выполняется
// против замоканной транзакции.
func (s *OrderServiceTestSuite) expectTxRun() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
}

func (s *OrderServiceTestSuite) expectTxRepos() {
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).MinTimes(1)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).MinTimes(1)
}

func (s *OrderServiceTestSuite) TestCreate() {
	// Товар 1 стоит 10.00, две штуки, наличными ровно 20.00.
	price := decimal.RequireFromString("10.00")
	var orderID int64 = 7

	s.expectTxRun()
	s.expectTxRepos()

	s.mockProductRepo.EXPECT().
		GetPrice(gomock.Any(), int64(1)).
		Return(price, nil)

	s.mockOrderRepo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			s.Equal(int64(3), args.ClientID)
			s.Equal(int64(42), args.UserID)
			s.Equal(domain.OrderStatusComplete, args.Status)
			s.True(args.TotalAmount.Equal(decimal.RequireFromString("20.00")))
			return &domain.Order{
				ID:          orderID,
				CreatedAt:   time.Now(),
				ClientID:    args.ClientID,
				UserID:      args.UserID,
				TotalAmount: args.TotalAmount,
				Status:      args.Status,
			}, nil
		})

	s.mockOrderRepo.EXPECT().
		BatchCreateItems(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, items []repoargs.CreateOrderItem, fn repoargs.BatchExecQueryRow) {
			s.Require().Len(items, 1)
			s.Equal(orderID, items[0].OrderID)
			s.Equal(int64(1), items[0].ProductID)
			s.Equal(int32(2), items[0].Quantity)
			// в позицию попадает снапшот цены каталога.
			s.True(items[0].UnitPrice.Equal(price))
			for i := range items {
				fn(i, nil)
			}
		})

	s.mockOrderRepo.EXPECT().
		BatchCreatePayments(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, payments []repoargs.CreateOrderPayment, fn repoargs.BatchExecQueryRow) {
			s.Require().Len(payments, 1)
			s.Equal(orderID, payments[0].OrderID)
			s.Equal("cash", payments[0].Method)
			s.True(payments[0].Amount.Equal(decimal.RequireFromString("20.00")))
			for i := range payments {
				fn(i, nil)
			}
		})

	conf, err := s.orderService.Create(context.Background(), CreateOrderArgs{
		ClientID: 3,
		UserID:   42,
		Items:    []OrderItemArgs{{ProductID: 1, Quantity: 2}},
		Payments: []OrderPaymentArgs{{Method: "cash", Amount: "20.00"}},
	})

	s.Require().NoError(err)
	s.Equal(orderID, conf.OrderID)
	s.Equal("20.00", conf.Total.StringFixed(2))
	s.Require().Len(conf.Payments, 1)
	s.True(conf.Payments[0].Amount.Equal(decimal.RequireFromString("20.00")))
}

func (s *OrderServiceTestSuite) TestCreateFinancialMismatch() {
	s.expectTxRun()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil)

	s.mockProductRepo.EXPECT().
		GetPrice(gomock.Any(), int64(1)).
		Return(decimal.RequireFromString("10.00"), nil)

	// ни шапка, ни позиции, ни платежи не пишутся.
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
	s.mockOrderRepo.EXPECT().BatchCreateItems(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.mockOrderRepo.EXPECT().BatchCreatePayments(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	conf, err := s.orderService.Create(context.Background(), CreateOrderArgs{
		ClientID: 3,
		UserID:   42,
		Items:    []OrderItemArgs{{ProductID: 1, Quantity: 2}},
		Payments: []OrderPaymentArgs{{Method: "cash", Amount: "15.00"}},
	})

	s.Require().Error(err)
	s.Nil(conf)

	var mismatchErr *domain.FinancialMismatchError
	s.Require().ErrorAs(err, &mismatchErr)
	s.True(mismatchErr.Calculated.Equal(decimal.RequireFromString("20.00")))
	s.True(mismatchErr.Paid.Equal(decimal.RequireFromString("15.00")))
}

func (s *OrderServiceTestSuite) TestCreateWithinTolerance() {
	// расхождение ровно в 0.01 еще проходит сверку.
	s.expectTxRun()
	s.expectTxRepos()

	s.mockProductRepo.EXPECT().
		GetPrice(gomock.Any(), int64(1)).
		Return(decimal.RequireFromString("10.00"), nil)

	s.mockOrderRepo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		Return(&domain.Order{ID: 1, TotalAmount: decimal.RequireFromString("20.00")}, nil)
	s.mockOrderRepo.EXPECT().
		BatchCreateItems(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, items []repoargs.CreateOrderItem, fn repoargs.BatchExecQueryRow) {
			for i := range items {
				fn(i, nil)
			}
		})
	s.mockOrderRepo.EXPECT().
		BatchCreatePayments(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, payments []repoargs.CreateOrderPayment, fn repoargs.BatchExecQueryRow) {
			for i := range payments {
				fn(i, nil)
			}
		})

	_, err := s.orderService.Create(context.Background(), CreateOrderArgs{
		ClientID: 3,
		UserID:   42,
		Items:    []OrderItemArgs{{ProductID: 1, Quantity: 2}},
		Payments: []OrderPaymentArgs{{Method: "cash", Amount: "19.99"}},
	})
	s.NoError(err)
}

func (s *OrderServiceTestSuite) TestCreateProductNotFound() {
	s.expectTxRun()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil)

	s.mockProductRepo.EXPECT().
		GetPrice(gomock.Any(), int64(99)).
		Return(decimal.Decimal{}, fmt.Errorf("[repository/getting price for product 99] %w", domain.ErrRecordNotFound))

	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.orderService.Create(context.Background(), CreateOrderArgs{
		ClientID: 3,
		UserID:   42,
		Items:    []OrderItemArgs{{ProductID: 99, Quantity: 1}},
		Payments: []OrderPaymentArgs{{Method: "cash", Amount: "10.00"}},
	})

	s.Require().Error(err)
	var notFoundErr *domain.ProductNotFoundError
	s.Require().ErrorAs(err, &notFoundErr)
	s.Equal(int64(99), notFoundErr.ProductID)
}

func (s *OrderServiceTestSuite) TestCreateInvalidAmount() {
	cases := []struct {
		name   string
		amount string
	}{
		{name: "not a number", amount: "twenty"},
		{name: "negative", amount: "-5.00"},
		{name: "empty", amount: ""},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			// транзакция не открывается: мок Do без ожиданий упадет при вызове.
			_, err := s.orderService.Create(context.Background(), CreateOrderArgs{
				ClientID: 3,
				UserID:   42,
				Items:    []OrderItemArgs{{ProductID: 1, Quantity: 1}},
				Payments: []OrderPaymentArgs{{Method: "card", Amount: t.amount}},
			})

			s.Require().Error(err)
			var invalidErr *domain.InvalidAmountError
			s.Require().ErrorAs(err, &invalidErr)
			s.Equal("card", invalidErr.Method)
			s.Equal(t.amount, invalidErr.Raw)
		})
	}
}

func (s *OrderServiceTestSuite) TestCreateValidation() {
	cases := []struct {
		name string
		args CreateOrderArgs
	}{
		{
			name: "no client",
			args: CreateOrderArgs{
				UserID:   42,
				Items:    []OrderItemArgs{{ProductID: 1, Quantity: 1}},
				Payments: []OrderPaymentArgs{{Method: "cash", Amount: "10.00"}},
			},
		},
		{
			name: "no items",
			args: CreateOrderArgs{
				ClientID: 3,
				UserID:   42,
				Payments: []OrderPaymentArgs{{Method: "cash", Amount: "10.00"}},
			},
		},
		{
			name: "no payments",
			args: CreateOrderArgs{
				ClientID: 3,
				UserID:   42,
				Items:    []OrderItemArgs{{ProductID: 1, Quantity: 1}},
			},
		},
		{
			name: "zero quantity",
			args: CreateOrderArgs{
				ClientID: 3,
				UserID:   42,
				Items:    []OrderItemArgs{{ProductID: 1, Quantity: 0}},
				Payments: []OrderPaymentArgs{{Method: "cash", Amount: "10.00"}},
			},
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.orderService.Create(context.Background(), t.args)

			s.Require().Error(err)
			var validationErr *domain.ValidationError
			s.ErrorAs(err, &validationErr)
		})
	}
}

func (s *OrderServiceTestSuite) TestCreateStorageFailure() {
	s.expectTxRun()
	s.expectTxRepos()

	s.mockProductRepo.EXPECT().
		GetPrice(gomock.Any(), int64(1)).
		Return(decimal.RequireFromString("10.00"), nil)

	storageErr := fmt.Errorf("[repository/creating order for client 3] %w: connection reset", domain.ErrUnknown)
	s.mockOrderRepo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, storageErr)

	_, err := s.orderService.Create(context.Background(), CreateOrderArgs{
		ClientID: 3,
		UserID:   42,
		Items:    []OrderItemArgs{{ProductID: 1, Quantity: 1}},
		Payments: []OrderPaymentArgs{{Method: "cash", Amount: "10.00"}},
	})

	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrUnknown))
}

func (s *OrderServiceTestSuite) TestGetByID() {
	order := domain.Order{
		ID:          1,
		CreatedAt:   time.Now(),
		ClientID:    3,
		UserID:      42,
		TotalAmount: decimal.RequireFromString("20.00"),
		Status:      domain.OrderStatusComplete,
		ClientName:  "Acme LLC",
		UserName:    "alice",
	}
	items := []domain.OrderItem{
		{ID: 10, OrderID: 1, ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
	}
	payments := []domain.OrderPayment{
		{ID: 20, OrderID: 1, Method: "cash", Amount: decimal.RequireFromString("20.00")},
	}

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&order, nil)
	s.mockOrderRepo.EXPECT().GetItems(gomock.Any(), int64(1)).Return(items, nil)
	s.mockOrderRepo.EXPECT().GetPayments(gomock.Any(), int64(1)).Return(payments, nil)

	details, err := s.orderService.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(order.ID, details.Order.ID)
	s.Len(details.Items, 1)
	s.Len(details.Payments, 1)
}

func (s *OrderServiceTestSuite) TestGetByIDNotFound() {
	s.mockOrderRepo.EXPECT().
		FindByID(gomock.Any(), int64(404)).
		Return(nil, fmt.Errorf("[repository/finding order by id 404] %w", domain.ErrRecordNotFound))

	_, err := s.orderService.GetByID(context.Background(), 404)
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrRecordNotFound))
}
