package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-api/internal/domains/author"
	"library-api/internal/shared/apperror"
	"library-api/internal/shared/query"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if req.DateCreation.IsZero() {
		req.DateCreation = time.Now().UTC()
	}

	created, err := s.repo.Create(ctx, &author.Author{
		ID:           uuid.New(),
		Nom:          req.Nom,
		DateCreation: req.DateCreation,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (s *authorService) List(ctx context.Context, spec query.Spec) ([]author.Author, int64, error) {
	authors, total, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return authors, total, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.Author, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	req.Apply(current)

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, author.ErrAuthorNotFound) {
		return author.NotFound()
	}
	return apperror.Internal(err)
}
