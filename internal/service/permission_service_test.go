package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service/mocks"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-crm/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type PermissionServiceTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockRoleRepo      *mocks.MockRoleRepository
	permissionService *PermissionService
}

func TestPermissionServiceSuite(t *testing.T) {
	suite.Run(t, new(PermissionServiceTestSuite))
}

func (s *PermissionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoleRepo = mocks.NewMockRoleRepository(s.mockCtrl)

	mockUOW := uowmocks.NewMockUOW(s.mockCtrl)
	mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.RoleRepoName)).
		Return(s.mockRoleRepo, nil)

	permissionService, servErr := NewPermissionService(mockUOW)
	s.Require().NoError(servErr)
	s.permissionService = permissionService
}

func (s *PermissionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PermissionServiceTestSuite) TestAdminBypass() {
	// для админа в базу не ходим вовсе.
	s.mockRoleRepo.EXPECT().GetPermissionCodes(gomock.Any(), gomock.Any()).Times(0)

	ok, err := s.permissionService.HasPermission(context.Background(), 1, domain.RoleAdmin, domain.PermOrdersCreate)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *PermissionServiceTestSuite) TestHasPermission() {
	s.mockRoleRepo.EXPECT().
		GetPermissionCodes(gomock.Any(), int64(2)).
		Return([]string{domain.PermOrdersCreate, domain.PermOrdersRead}, nil).Times(2)

	ok, err := s.permissionService.HasPermission(context.Background(), 2, domain.RoleSalesRep, domain.PermOrdersCreate)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.permissionService.HasPermission(context.Background(), 2, domain.RoleSalesRep, domain.PermClientsDelete)
	s.Require().NoError(err)
	s.False(ok)
}
