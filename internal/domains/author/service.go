package author

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/shared/query"
)

// Service is the author business API. Errors are *apperror.Error.
type Service interface {
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context, spec query.Spec) ([]Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
