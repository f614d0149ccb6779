package service

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type ClientService struct {
	clientRepo ClientRepository
}

func NewClientService(u uow.UOW) (*ClientService, error) {
	clientRepo, err := uow.GetRepositoryAs[ClientRepository](u, uow.RepositoryName(repoargs.ClientRepoName))
	if err != nil {
		return nil, err
	}
	return &ClientService{clientRepo: clientRepo}, nil
}

// Create создает клиента. Дубликат email/телефона вернется как domain.ErrDuplicateKey.
func (s *ClientService) Create(ctx context.Context, args repoargs.CreateClient) (*domain.Client, error) {
	client, err := s.clientRepo.Create(ctx, args)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return client, nil
}

func (s *ClientService) GetAll(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return clients, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id int64, args repoargs.UpdateClient) (*domain.Client, error) {
	client, err := s.clientRepo.Update(ctx, id, args)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.clientRepo.Delete(ctx, id) //nolint:wrapcheck
}
