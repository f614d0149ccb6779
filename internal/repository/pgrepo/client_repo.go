package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	db uow.DBTX
}

func NewClientRepository(db uow.DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, args repoargs.CreateClient) (*domain.Client, error) {
	const query = `INSERT INTO clients (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, name, email, phone, is_active`

	var client domain.Client
	err := r.db.QueryRow(ctx, query, args.Name, args.Email, args.Phone).Scan(
		&client.ID,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.IsActive,
	)
	if err != nil {
		return nil, convertErr(err, "creating client with email `%s`", args.Email)
	}
	return &client, nil
}

// GetAll возвращает клиентов отсортированных по дате создания по убыванию.
func (r *ClientRepository) GetAll(ctx context.Context) ([]domain.Client, error) {
	const query = `SELECT id, created_at, updated_at, name, email, phone, is_active
		FROM clients
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, convertErr(err, "getting clients")
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var client domain.Client
		scanErr := rows.Scan(
			&client.ID,
			&client.CreatedAt,
			&client.UpdatedAt,
			&client.Name,
			&client.Email,
			&client.Phone,
			&client.IsActive,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning client")
		}
		clients = append(clients, client)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting clients")
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	const query = `SELECT id, created_at, updated_at, name, email, phone, is_active
		FROM clients
		WHERE id = $1`

	var client domain.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.IsActive,
	)
	if err != nil {
		return nil, convertErr(err, "finding client by id %d", id)
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, id int64, args repoargs.UpdateClient) (*domain.Client, error) {
	const query = `UPDATE clients
		SET name = $1, email = $2, phone = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING id, created_at, updated_at, name, email, phone, is_active`

	var client domain.Client
	err := r.db.QueryRow(ctx, query, args.Name, args.Email, args.Phone, args.IsActive, id).Scan(
		&client.ID,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.IsActive,
	)
	if err != nil {
		return nil, convertErr(err, "updating client with id %d", id)
	}
	return &client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM clients WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return convertErr(err, "deleting client with id %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting client with id %d", id)
	}
	return nil
}
