package author

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/shared/query"
)

// Repository is the author store
type Repository interface {
	// Create inserts a; ID and timestamps are set by the caller
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page plus the total match count
	List(ctx context.Context, spec query.Spec) ([]Author, int64, error)

	// Update overwrites every column; ErrAuthorNotFound when absent
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete returns ErrAuthorNotFound when nothing was removed
	Delete(ctx context.Context, id uuid.UUID) error
}
