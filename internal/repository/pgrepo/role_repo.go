package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type RoleRepository struct {
	db uow.DBTX
}

func NewRoleRepository(db uow.DBTX) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `SELECT id, name FROM roles WHERE name = $1`

	var role domain.Role
	if err := r.db.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, convertErr(err, "finding role by name `%s`", name)
	}
	return &role, nil
}

// GetPermissionCodes возвращает все коды разрешений роли.
func (r *RoleRepository) GetPermissionCodes(ctx context.Context, roleID int64) ([]string, error) {
	const query = `SELECT p.code
		FROM role_permissions rp
		JOIN permissions p ON rp.permission_id = p.id
		WHERE rp.role_id = $1`

	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, convertErr(err, "getting permission codes for role %d", roleID)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if scanErr := rows.Scan(&code); scanErr != nil {
			return nil, convertErr(scanErr, "scanning permission code for role %d", roleID)
		}
		codes = append(codes, code)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting permission codes for role %d", roleID)
	}
	return codes, nil
}
