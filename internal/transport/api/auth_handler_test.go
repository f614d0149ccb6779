package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/logger"
	"github.com/fsdevblog/groph-crm/internal/service"
	"github.com/fsdevblog/groph-crm/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-crm/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
	jwtSecret       []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		UserService:  s.mockUserService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	registeredUser := &domain.User{
		ID:       1,
		Name:     "John Doe",
		Email:    "john@example.com",
		RoleID:   2,
		RoleName: domain.RoleSalesRep,
	}

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "secret123",
		}).
		Return(registeredUser, "signed.jwt.token", nil).Times(1)

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{
			Name:     "Jane Doe",
			Email:    "john@example.com",
			Password: "secret123",
		}).
		Return(nil, "", domain.ErrDuplicateKey).Times(1)

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{
			Name:     "Jack Doe",
			Email:    "jack@example.com",
			Password: "secret123",
			RoleName: "Ghost",
		}).
		Return(nil, "", domain.NewValidationError("unknown role %q", "Ghost")).Times(1)

	cases := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       []byte(`{"name": "John Doe", "email": "john@example.com", "password": "secret123"}`),
			wantStatus: http.StatusCreated,
		}, {
			name:       "duplicate email",
			body:       []byte(`{"name": "Jane Doe", "email": "john@example.com", "password": "secret123"}`),
			wantStatus: http.StatusConflict,
		}, {
			name:       "unknown role",
			body:       []byte(`{"name": "Jack Doe", "email": "jack@example.com", "password": "secret123", "role": "Ghost"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "invalid email",
			body:       []byte(`{"name": "John Doe", "email": "not-an-email", "password": "secret123"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "short password",
			body:       []byte(`{"name": "John Doe", "email": "john@example.com", "password": "123"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "broken json",
			body:       []byte(`{"name": `),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AuthRegisterRoute,
				Body:   bytes.NewReader(t.body),
			}, testutils.WithHeader("Content-Type", "application/json"))
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusCreated {
				raw, readErr := io.ReadAll(res.Body)
				s.Require().NoError(readErr)

				var resp struct {
					Token string       `json:"token"`
					User  UserResponse `json:"user"`
				}
				s.Require().NoError(json.Unmarshal(raw, &resp))
				s.Equal("signed.jwt.token", resp.Token)
				s.Equal(int64(1), resp.User.ID)
				s.Equal(domain.RoleSalesRep, resp.User.Role)
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := &domain.User{
		ID:       1,
		Name:     "John Doe",
		Email:    "john@example.com",
		RoleID:   2,
		RoleName: domain.RoleSalesRep,
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Email: "john@example.com", Password: "secret123"}).
		Return(user, "signed.jwt.token", nil).Times(1)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Email: "john@example.com", Password: "wrong-pass"}).
		Return(nil, "", domain.ErrPasswordMissMatch).Times(1)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Email: "ghost@example.com", Password: "secret123"}).
		Return(nil, "", domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       []byte(`{"email": "john@example.com", "password": "secret123"}`),
			wantStatus: http.StatusOK,
		}, {
			name:       "wrong password",
			body:       []byte(`{"email": "john@example.com", "password": "wrong-pass"}`),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "unknown email",
			body:       []byte(`{"email": "ghost@example.com", "password": "secret123"}`),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "missing password",
			body:       []byte(`{"email": "john@example.com"}`),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AuthLoginRoute,
				Body:   bytes.NewReader(t.body),
			}, testutils.WithHeader("Content-Type", "application/json"))
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				raw, readErr := io.ReadAll(res.Body)
				s.Require().NoError(readErr)

				var resp struct {
					Token string       `json:"token"`
					User  UserResponse `json:"user"`
				}
				s.Require().NoError(json.Unmarshal(raw, &resp))
				s.Equal("signed.jwt.token", resp.Token)
				s.Equal("john@example.com", resp.User.Email)
			}
		})
	}
}
