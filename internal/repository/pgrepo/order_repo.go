package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder вставляет шапку заказа и возвращает её с сгенерированным id.
func (r *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	const query = `INSERT INTO orders (client_id, user_id, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	order := domain.Order{
		ClientID:    args.ClientID,
		UserID:      args.UserID,
		TotalAmount: args.TotalAmount,
		Status:      args.Status,
	}
	err := r.db.QueryRow(ctx, query, args.ClientID, args.UserID, args.TotalAmount, args.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, convertErr(err, "creating order for client %d", args.ClientID)
	}
	return &order, nil
}

// BatchCreateItems вставляет позиции заказа одним батчем. fn вызывается для каждой
// позиции с её индексом и ошибкой вставки.
func (r *OrderRepository) BatchCreateItems(
	ctx context.Context,
	items []repoargs.CreateOrderItem,
	fn repoargs.BatchExecQueryRow,
) {
	const query = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`

	batch := new(pgx.Batch)
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck

	for i := range items {
		_, err := results.Exec()
		fn(i, convertErr(err, "creating order item for product %d", items[i].ProductID))
	}
}

// BatchCreatePayments вставляет платежи заказа одним батчем по аналогии с BatchCreateItems.
func (r *OrderRepository) BatchCreatePayments(
	ctx context.Context,
	payments []repoargs.CreateOrderPayment,
	fn repoargs.BatchExecQueryRow,
) {
	const query = `INSERT INTO order_payments (order_id, method, amount)
		VALUES ($1, $2, $3)`

	batch := new(pgx.Batch)
	for _, payment := range payments {
		batch.Queue(query, payment.OrderID, payment.Method, payment.Amount)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck

	for i := range payments {
		_, err := results.Exec()
		fn(i, convertErr(err, "creating order payment `%s`", payments[i].Method))
	}
}

// GetAll возвращает заказы с именами клиента и создавшего юзера, новые - первыми.
func (r *OrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT o.id, o.created_at, o.client_id, o.user_id, o.total_amount, o.status,
			c.name, u.name
		FROM orders o
		JOIN clients c ON o.client_id = c.id
		JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, convertErr(err, "getting orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		scanErr := rows.Scan(
			&order.ID,
			&order.CreatedAt,
			&order.ClientID,
			&order.UserID,
			&order.TotalAmount,
			&order.Status,
			&order.ClientName,
			&order.UserName,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order")
		}
		orders = append(orders, order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting orders")
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `SELECT o.id, o.created_at, o.client_id, o.user_id, o.total_amount, o.status,
			c.name, u.name
		FROM orders o
		JOIN clients c ON o.client_id = c.id
		JOIN users u ON o.user_id = u.id
		WHERE o.id = $1`

	var order domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.CreatedAt,
		&order.ClientID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.ClientName,
		&order.UserName,
	)
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return &order, nil
}

// GetItems возвращает позиции заказа с именами товаров.
func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const query = `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, convertErr(err, "getting items for order %d", orderID)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		scanErr := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.ProductName,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning item for order %d", orderID)
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting items for order %d", orderID)
	}
	return items, nil
}

func (r *OrderRepository) GetPayments(ctx context.Context, orderID int64) ([]domain.OrderPayment, error) {
	const query = `SELECT id, order_id, method, amount, payment_date
		FROM order_payments
		WHERE order_id = $1
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, convertErr(err, "getting payments for order %d", orderID)
	}
	defer rows.Close()

	var payments []domain.OrderPayment
	for rows.Next() {
		var payment domain.OrderPayment
		scanErr := rows.Scan(
			&payment.ID,
			&payment.OrderID,
			&payment.Method,
			&payment.Amount,
			&payment.PaymentDate,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning payment for order %d", orderID)
		}
		payments = append(payments, payment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting payments for order %d", orderID)
	}
	return payments, nil
}
