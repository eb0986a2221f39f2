package user

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/shared/auth"
	"library-api/internal/shared/query"
)

// Repository is the data access contract for utilisateurs. It also serves
// the credential verifier through FindIdentity.
type Repository interface {
	auth.IdentityLookup

	// Create returns the stored user; unique violations surface as store errors
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID returns ErrUserNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail loads the password hash too, for login
	GetByEmail(ctx context.Context, email string) (*User, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, spec query.Spec) ([]User, int64, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
