package service

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/query"
)

// ServiceInterface is the book business API
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, spec query.Spec) ([]model.Book, int64, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

// AuthorChecker confirms a referenced author exists
type AuthorChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
