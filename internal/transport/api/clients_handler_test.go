package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/logger"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/internal/service/tokens"
	"github.com/fsdevblog/groph-crm/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-crm/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ClientsHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockClientService *mocks.MockClientServicer
	mockPermissions   *mocks.MockPermissionServicer
	jwtSecret         []byte
	jwtToken          string
}

func TestClientsHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClientsHandlerTestSuite))
}

func (s *ClientsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockClientService = mocks.NewMockClientServicer(mockCtrl)
	s.mockPermissions = mocks.NewMockPermissionServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	token, tokenErr := tokens.GenerateUserJWT(1, 2, domain.RoleSalesRep, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.jwtToken = token

	s.router = New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		ClientService: s.mockClientService,
		Permissions:   s.mockPermissions,
		JWTSecretKey:  s.jwtSecret,
	})
}

func (s *ClientsHandlerTestSuite) allowAll() {
	s.mockPermissions.EXPECT().
		HasPermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).AnyTimes()
}

func (s *ClientsHandlerTestSuite) TestCreate() {
	s.allowAll()

	created := &domain.Client{
		ID:        1,
		Name:      "Acme Corp",
		Email:     "office@acme.test",
		Phone:     "+1-555-0100",
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	s.mockClientService.EXPECT().
		Create(gomock.Any(), repoargs.CreateClient{
			Name:  "Acme Corp",
			Email: "office@acme.test",
			Phone: "+1-555-0100",
		}).
		Return(created, nil).Times(1)
	s.mockClientService.EXPECT().
		Create(gomock.Any(), repoargs.CreateClient{
			Name:  "Dup Corp",
			Email: "office@acme.test",
		}).
		Return(nil, domain.ErrDuplicateKey).Times(1)

	cases := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       []byte(`{"name": "Acme Corp", "email": "office@acme.test", "phone": "+1-555-0100"}`),
			wantStatus: http.StatusCreated,
		}, {
			name:       "duplicate email",
			body:       []byte(`{"name": "Dup Corp", "email": "office@acme.test"}`),
			wantStatus: http.StatusConflict,
		}, {
			name:       "missing name",
			body:       []byte(`{"email": "office@acme.test"}`),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + ClientsRoute,
				Body:   bytes.NewReader(t.body),
			}, testutils.WithBearerToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusCreated {
				raw, readErr := io.ReadAll(res.Body)
				s.Require().NoError(readErr)

				var resp struct {
					Client ClientResponse `json:"client"`
				}
				s.Require().NoError(json.Unmarshal(raw, &resp))
				s.Equal(int64(1), resp.Client.ID)
				s.Equal("Acme Corp", resp.Client.Name)
				s.True(resp.Client.IsActive)
			}
		})
	}
}

func (s *ClientsHandlerTestSuite) TestCreateForbidden() {
	s.mockPermissions.EXPECT().
		HasPermission(gomock.Any(), int64(2), domain.RoleSalesRep, domain.PermClientsCreate).
		Return(false, nil).Times(1)
	s.mockClientService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + ClientsRoute,
		Body:   bytes.NewReader([]byte(`{"name": "Acme Corp"}`)),
	}, testutils.WithBearerToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Equal(http.StatusForbidden, res.StatusCode)
}

func (s *ClientsHandlerTestSuite) TestIndex() {
	s.allowAll()

	clients := []domain.Client{
		{ID: 1, Name: "Acme Corp", IsActive: true},
		{ID: 2, Name: "Globex", IsActive: false},
	}
	s.mockClientService.EXPECT().GetAll(gomock.Any()).Return(clients, nil).Times(1)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + ClientsRoute,
	}, testutils.WithBearerToken(s.jwtToken))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Equal(http.StatusOK, res.StatusCode)

	raw, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)

	var resp struct {
		Count   int              `json:"count"`
		Clients []ClientResponse `json:"clients"`
	}
	s.Require().NoError(json.Unmarshal(raw, &resp))
	s.Equal(2, resp.Count)
	s.Require().Len(resp.Clients, 2)
	s.Equal("Globex", resp.Clients[1].Name)
}

func (s *ClientsHandlerTestSuite) TestUpdate() {
	s.allowAll()

	updated := &domain.Client{ID: 1, Name: "Acme Corp", IsActive: false}
	s.mockClientService.EXPECT().
		Update(gomock.Any(), int64(1), repoargs.UpdateClient{Name: "Acme Corp", Email: "office@acme.test", IsActive: false}).
		Return(updated, nil).Times(1)
	s.mockClientService.EXPECT().
		Update(gomock.Any(), int64(404), gomock.Any()).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		url        string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			url:        RouteGroup + ClientsRoute + "/1",
			body:       []byte(`{"name": "Acme Corp", "email": "office@acme.test", "is_active": false}`),
			wantStatus: http.StatusOK,
		}, {
			name:       "not found",
			url:        RouteGroup + ClientsRoute + "/404",
			body:       []byte(`{"name": "Ghost", "email": "ghost@acme.test", "is_active": true}`),
			wantStatus: http.StatusNotFound,
		}, {
			name:       "missing is_active",
			url:        RouteGroup + ClientsRoute + "/1",
			body:       []byte(`{"name": "Acme Corp", "email": "office@acme.test"}`),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPut,
				URL:    t.url,
				Body:   bytes.NewReader(t.body),
			}, testutils.WithBearerToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *ClientsHandlerTestSuite) TestDestroy() {
	s.allowAll()

	s.mockClientService.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil).Times(1)
	s.mockClientService.EXPECT().Delete(gomock.Any(), int64(404)).
		Return(domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "all ok", url: RouteGroup + ClientsRoute + "/1", wantStatus: http.StatusNoContent},
		{name: "not found", url: RouteGroup + ClientsRoute + "/404", wantStatus: http.StatusNotFound},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodDelete,
				URL:    t.url,
			}, testutils.WithBearerToken(s.jwtToken))
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
