package repository

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/query"
)

// RepositoryInterface is the book store. Reads populate Auteur.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, spec query.Spec) ([]model.Book, int64, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
