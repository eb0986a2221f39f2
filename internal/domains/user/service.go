package user

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/shared/auth"
	"library-api/internal/shared/query"
)

// Service is the business logic contract. caller is the authenticated
// identity, nil for anonymous registration.
type Service interface {
	// Authentication
	Register(ctx context.Context, caller *auth.Identity, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Users
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, spec query.Spec) ([]User, int64, error)
	Update(ctx context.Context, caller *auth.Identity, id uuid.UUID, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
