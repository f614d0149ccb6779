package service

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
)

type CommentService struct {
	commentRepo CommentRepository
}

func NewCommentService(u uow.UOW) (*CommentService, error) {
	commentRepo, err := uow.GetRepositoryAs[CommentRepository](u, uow.RepositoryName(repoargs.CommentRepoName))
	if err != nil {
		return nil, err
	}
	return &CommentService{commentRepo: commentRepo}, nil
}

func (s *CommentService) Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error) {
	comment, err := s.commentRepo.Create(ctx, args)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return comment, nil
}

func (s *CommentService) GetAll(ctx context.Context) ([]domain.Comment, error) {
	comments, err := s.commentRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return comments, nil
}

func (s *CommentService) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	comment, err := s.commentRepo.Update(ctx, id, content)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.commentRepo.Delete(ctx, id) //nolint:wrapcheck
}
