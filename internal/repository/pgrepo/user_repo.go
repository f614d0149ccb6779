package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	user := domain.User{
		Name:         args.Name,
		Email:        args.Email,
		PasswordHash: args.PasswordHash,
		RoleID:       args.RoleID,
	}
	err := r.db.QueryRow(ctx, query, args.Name, args.Email, args.PasswordHash, args.RoleID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, convertErr(err, "creating user with email `%s`", args.Email)
	}
	return &user, nil
}

// FindByEmail возвращает юзера вместе с именем его роли.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT u.id, u.created_at, u.updated_at, u.name, u.email, u.password_hash, u.role_id, r.name
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE u.email = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.RoleName,
	)
	if err != nil {
		return nil, convertErr(err, "finding user by email `%s`", email)
	}
	return &user, nil
}
