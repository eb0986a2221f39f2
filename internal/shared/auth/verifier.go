package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/apperror"
	"library-api/pkg/jwt"
)

// UnauthorizedMessage is returned for every authentication failure so the
// response never reveals which check failed.
const UnauthorizedMessage = "Non autorisé à accéder à cette ressource"

// ErrIdentityNotFound is returned by IdentityLookup when the subject no
// longer exists.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityLookup resolves a token subject to a live user, without its
// credential hash.
type IdentityLookup interface {
	FindIdentity(ctx context.Context, id uuid.UUID) (*Identity, error)
}

// TokenValidator is satisfied by *jwt.Manager
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Verifier turns an Authorization header into an Identity
type Verifier struct {
	tokens TokenValidator
	users  IdentityLookup
}

func NewVerifier(tokens TokenValidator, users IdentityLookup) *Verifier {
	return &Verifier{tokens: tokens, users: users}
}

// ExtractBearer returns the token from "Bearer <token>"
func ExtractBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Verify validates the header and loads the caller. Store failures during
// the lookup surface as Internal; everything else is Unauthorized.
func (v *Verifier) Verify(ctx context.Context, header string) (*Identity, error) {
	token, ok := ExtractBearer(header)
	if !ok {
		return nil, apperror.Unauthorized(UnauthorizedMessage)
	}

	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return nil, apperror.Unauthorized(UnauthorizedMessage)
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return nil, apperror.Unauthorized(UnauthorizedMessage)
	}

	identity, err := v.users.FindIdentity(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return nil, apperror.Unauthorized(UnauthorizedMessage)
		}
		return nil, apperror.Internal(err)
	}

	return identity, nil
}
