package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
	"library-api/internal/shared/apperror"
	"library-api/internal/shared/query"
)

// Service - book business logic
type Service struct {
	repo    repository.RepositoryInterface
	authors AuthorChecker
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, authors AuthorChecker) ServiceInterface {
	return &Service{repo: repo, authors: authors}
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := s.checkAuthor(ctx, req.AuteurID); err != nil {
		return nil, err
	}
	if req.DatePublication.IsZero() {
		req.DatePublication = time.Now().UTC()
	}

	created, err := s.repo.Create(ctx, &model.Book{
		ID:              uuid.New(),
		Titre:           req.Titre,
		AuteurID:        req.AuteurID,
		Genre:           req.Genre,
		DatePublication: req.DatePublication,
		NombrePages:     req.NombrePages,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return created, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return book, nil
}

func (s *Service) ListBooks(ctx context.Context, spec query.Spec) ([]model.Book, int64, error) {
	books, total, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return books, total, nil
}

func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	// Only a changed author reference is re-checked
	if req.AuteurID != nil && *req.AuteurID != current.AuteurID {
		if err := s.checkAuthor(ctx, *req.AuteurID); err != nil {
			return nil, err
		}
	}

	req.Apply(current)

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) checkAuthor(ctx context.Context, id uuid.UUID) error {
	ok, err := s.authors.Exists(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.BadRequest(model.UnknownAuthorMessage)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return model.NotFound()
	}
	return apperror.Internal(err)
}
