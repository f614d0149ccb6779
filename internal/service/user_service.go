package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service/tokens"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"golang.org/x/crypto/bcrypt"
)

const JWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	jwtTokenSecret []byte
}

func NewUserService(u uow.UOW, jwtTokenSecret []byte) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Name     string
	Email    string
	Password string
	// RoleName пустой - регистрируем с ролью по умолчанию.
	RoleName string
}

// Register создает юзера с указанной ролью и сразу аутентифицирует его.
// Возвращает созданного юзера, jwt токен и ошибку. Если роль не найдена,
// вернется *domain.ValidationError; занятый email - domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	roleName := args.RoleName
	if roleName == "" {
		roleName = domain.RoleSalesRep
	}

	passwordHash, hashErr := s.hashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	var user *domain.User
	var token string

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		roleRepo, roleRepoErr := uow.GetAs[RoleRepository](tx, uow.RepositoryName(repoargs.RoleRepoName))
		if roleRepoErr != nil {
			return roleRepoErr //nolint:wrapcheck
		}
		role, roleErr := roleRepo.FindByName(c, roleName)
		if roleErr != nil {
			if errors.Is(roleErr, domain.ErrRecordNotFound) {
				return domain.NewValidationError("role `%s` not found", roleName)
			}
			return roleErr //nolint:wrapcheck
		}

		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		var userErr error
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Name:         args.Name,
			Email:        args.Email,
			PasswordHash: passwordHash,
			RoleID:       role.ID,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}
		user.RoleName = role.Name

		var tokenErr error
		token, tokenErr = tokens.GenerateUserJWT(user.ID, user.RoleID, user.RoleName, JWTTokenExpire, s.jwtTokenSecret)
		if tokenErr != nil {
			return tokenErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Email    string
	Password string
}

// Login аутентификация по паре email/пароль. При неверных данных возвращает
// domain.ErrRecordNotFound либо domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, userErr := s.userRepo.FindByEmail(ctx, args.Email)
	if userErr != nil {
		return nil, "", fmt.Errorf("logging in user: %w", userErr)
	}

	if !s.comparePasswords(user.PasswordHash, args.Password) {
		return nil, "", fmt.Errorf("logging in user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, user.RoleID, user.RoleName, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %s", err.Error())
	}
	return string(bytes), nil
}

func (s *UserService) comparePasswords(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
