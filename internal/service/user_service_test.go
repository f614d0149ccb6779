package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service/mocks"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-crm/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockUserRepo *mocks.MockUserRepository
	mockRoleRepo *mocks.MockRoleRepository
	userService  *UserService
	jwtSecret    []byte
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockRoleRepo = mocks.NewMockRoleRepository(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.jwtSecret)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *UserServiceTestSuite) expectTxRun() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
}

func (s *UserServiceTestSuite) TestRegister() {
	s.expectTxRun()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.RoleRepoName)).
		Return(s.mockRoleRepo, nil)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)

	// роль по умолчанию, так как RoleName в аргументах не указан.
	s.mockRoleRepo.EXPECT().
		FindByName(gomock.Any(), domain.RoleSalesRep).
		Return(&domain.Role{ID: 2, Name: domain.RoleSalesRep}, nil)

	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
			s.Equal("alice", args.Name)
			s.Equal("alice@example.com", args.Email)
			s.Equal(int64(2), args.RoleID)
			// в репозиторий уходит bcrypt хэш, не пароль.
			s.NoError(bcrypt.CompareHashAndPassword([]byte(args.PasswordHash), []byte("password1")))
			return &domain.User{
				ID:           1,
				Name:         args.Name,
				Email:        args.Email,
				PasswordHash: args.PasswordHash,
				RoleID:       args.RoleID,
			}, nil
		})

	user, token, err := s.userService.Register(context.Background(), RegisterUserArgs{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password1",
	})

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(int64(1), user.ID)
	s.Equal(domain.RoleSalesRep, user.RoleName)
}

func (s *UserServiceTestSuite) TestRegisterUnknownRole() {
	s.expectTxRun()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.RoleRepoName)).
		Return(s.mockRoleRepo, nil)

	s.mockRoleRepo.EXPECT().
		FindByName(gomock.Any(), "Overlord").
		Return(nil, fmt.Errorf("[repository/finding role by name `Overlord`] %w", domain.ErrRecordNotFound))

	s.mockUserRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

	_, _, err := s.userService.Register(context.Background(), RegisterUserArgs{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "password1",
		RoleName: "Overlord",
	})

	s.Require().Error(err)
	var validationErr *domain.ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	s.expectTxRun()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.RoleRepoName)).
		Return(s.mockRoleRepo, nil)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)

	s.mockRoleRepo.EXPECT().
		FindByName(gomock.Any(), domain.RoleSalesRep).
		Return(&domain.Role{ID: 2, Name: domain.RoleSalesRep}, nil)

	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("[repository/creating user] %w", domain.ErrDuplicateKey))

	_, _, err := s.userService.Register(context.Background(), RegisterUserArgs{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password1",
	})

	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrDuplicateKey))
}

func (s *UserServiceTestSuite) TestLogin() {
	hash, hashErr := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	s.Require().NoError(hashErr)

	user := domain.User{
		ID:           1,
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		RoleID:       2,
		RoleName:     domain.RoleSalesRep,
	}

	s.mockUserRepo.EXPECT().
		FindByEmail(gomock.Any(), "alice@example.com").
		Return(&user, nil).Times(2)

	gotUser, token, err := s.userService.Login(context.Background(), LoginUserArgs{
		Email:    "alice@example.com",
		Password: "password1",
	})
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(user.ID, gotUser.ID)

	// неверный пароль.
	_, _, wrongErr := s.userService.Login(context.Background(), LoginUserArgs{
		Email:    "alice@example.com",
		Password: "password2",
	})
	s.Require().Error(wrongErr)
	s.True(errors.Is(wrongErr, domain.ErrPasswordMissMatch))
}

func (s *UserServiceTestSuite) TestLoginUnknownEmail() {
	s.mockUserRepo.EXPECT().
		FindByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, fmt.Errorf("[repository/finding user] %w", domain.ErrRecordNotFound))

	_, _, err := s.userService.Login(context.Background(), LoginUserArgs{
		Email:    "ghost@example.com",
		Password: "password1",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrRecordNotFound))
}
