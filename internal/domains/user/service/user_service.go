package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domains/user"
	"library-api/internal/shared/apperror"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/query"
)

// BcryptCost balances login latency and hash strength
var BcryptCost = 12

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, time.Time, error)
}

// userService implements user.Service
type userService struct {
	repo   user.Repository
	tokens TokenIssuer
}

// NewUserService injects the repository and token issuer
func NewUserService(repo user.Repository, tokens TokenIssuer) user.Service {
	return &userService{repo: repo, tokens: tokens}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates an account. Role and isAdmin are ignored unless the
// caller is an admin.
func (s *userService) Register(ctx context.Context, caller *auth.Identity, req user.RegisterRequest) (*user.User, error) {
	// 1. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.MotDePasse), BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 2. RESOLVE ACCESS
	role, isAdmin := auth.RoleStandard, false
	if isAdminCaller(caller) {
		if req.Role != nil {
			role = *req.Role
		}
		if req.IsAdmin != nil {
			isAdmin = *req.IsAdmin
		}
		role, isAdmin = auth.Normalize(role, isAdmin)
	} else if req.Role != nil || (req.IsAdmin != nil && *req.IsAdmin) {
		log.Warn().Str("email", req.Email).Msg("ignored role fields on self-registration")
	}

	if req.DateInscription.IsZero() {
		req.DateInscription = time.Now().UTC()
	}

	// 3. PERSIST
	created, err := s.repo.Create(ctx, &user.User{
		ID:              uuid.New(),
		NomUtilisateur:  req.NomUtilisateur,
		Email:           req.Email,
		MotDePasse:      string(hash),
		Role:            role,
		IsAdmin:         isAdmin,
		DateInscription: req.DateInscription,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return created, nil
}

// Login checks the credentials and issues a 7-day token
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.MotDePasse == "" {
		return nil, apperror.BadRequest(user.MissingCredentialsMessage)
	}

	// 2. FIND USER BY EMAIL
	// Unknown email and wrong password get the same answer
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.Unauthorized(user.InvalidCredentialsMessage)
		}
		return nil, apperror.Internal(err)
	}

	// 3. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.MotDePasse), []byte(req.MotDePasse)); err != nil {
		return nil, apperror.Unauthorized(user.InvalidCredentialsMessage)
	}

	// 4. ISSUE TOKEN
	token, _, err := s.tokens.GenerateToken(u.ID, u.Identity().Role.String())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user logged in")

	return &user.LoginResponse{Token: token, Utilisateur: u.Summary()}, nil
}

// ========================================
// USERS
// ========================================

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, spec query.Spec) ([]user.User, int64, error) {
	users, total, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return users, total, nil
}

// Update applies a partial update. Changing role or isAdmin needs an admin
// caller.
func (s *userService) Update(ctx context.Context, caller *auth.Identity, id uuid.UUID, req user.UpdateUserRequest) (*user.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	if req.TouchesAccess(current) {
		if !isAdminCaller(caller) {
			return nil, apperror.Forbidden(user.RoleChangeMessage)
		}
		current.Role, current.IsAdmin = req.ResolveAccess(current)
	}

	req.Apply(current)

	// Empty keeps the stored hash
	current.MotDePasse = ""
	if req.MotDePasse != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.MotDePasse), BcryptCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		current.MotDePasse = string(hash)
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func isAdminCaller(caller *auth.Identity) bool {
	return caller != nil && caller.EffectiveRole() == auth.RoleAdmin
}

func mapError(err error) error {
	if errors.Is(err, user.ErrUserNotFound) {
		return user.NotFound()
	}
	return apperror.Internal(err)
}
