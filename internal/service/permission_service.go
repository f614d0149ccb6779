package service

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type PermissionService struct {
	roleRepo RoleRepository
}

func NewPermissionService(u uow.UOW) (*PermissionService, error) {
	roleRepo, err := uow.GetRepositoryAs[RoleRepository](u, uow.RepositoryName(repoargs.RoleRepoName))
	if err != nil {
		return nil, err
	}
	return &PermissionService{roleRepo: roleRepo}, nil
}

// HasPermission проверяет, что роль владеет хотя бы одним из требуемых кодов.
// Роль Admin владеет всем без обращения к базе.
func (s *PermissionService) HasPermission(
	ctx context.Context,
	roleID int64,
	roleName string,
	requiredCodes ...string,
) (bool, error) {
	if roleName == domain.RoleAdmin {
		return true, nil
	}

	codes, err := s.roleRepo.GetPermissionCodes(ctx, roleID)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	granted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		granted[code] = struct{}{}
	}
	for _, required := range requiredCodes {
		if _, ok := granted[required]; ok {
			return true, nil
		}
	}
	return false, nil
}
