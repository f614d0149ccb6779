package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	db uow.DBTX
}

func NewProductRepository(db uow.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error) {
	const query = `INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	product := domain.Product{
		Name:        args.Name,
		Price:       args.Price,
		Description: args.Description,
	}
	err := r.db.QueryRow(ctx, query, args.Name, args.Price, args.Description).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, convertErr(err, "creating product `%s`", args.Name)
	}
	return &product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT id, created_at, updated_at, name, price, description
		FROM products
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, convertErr(err, "getting products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		scanErr := rows.Scan(
			&product.ID,
			&product.CreatedAt,
			&product.UpdatedAt,
			&product.Name,
			&product.Price,
			&product.Description,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning product")
		}
		products = append(products, product)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting products")
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT id, created_at, updated_at, name, price, description
		FROM products
		WHERE id = $1`

	var product domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Name,
		&product.Price,
		&product.Description,
	)
	if err != nil {
		return nil, convertErr(err, "finding product by id %d", id)
	}
	return &product, nil
}

// GetPrice возвращает текущую цену каталога по id товара. Используется резолвером
// позиций заказа внутри транзакции создания заказа.
func (r *ProductRepository) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	const query = `SELECT price FROM products WHERE id = $1`

	var price decimal.Decimal
	if err := r.db.QueryRow(ctx, query, id).Scan(&price); err != nil {
		return decimal.Decimal{}, convertErr(err, "getting price for product %d", id)
	}
	return price, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, args repoargs.UpdateProduct) (*domain.Product, error) {
	const query = `UPDATE products
		SET name = $1, price = $2, description = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING id, created_at, updated_at, name, price, description`

	var product domain.Product
	err := r.db.QueryRow(ctx, query, args.Name, args.Price, args.Description, id).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Name,
		&product.Price,
		&product.Description,
	)
	if err != nil {
		return nil, convertErr(err, "updating product with id %d", id)
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return convertErr(err, "deleting product with id %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting product with id %d", id)
	}
	return nil
}
