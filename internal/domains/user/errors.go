package user

import (
	"errors"

	"library-api/internal/shared/apperror"
)

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")
)

const (
	NotFoundMessage           = "Utilisateur non trouvé"
	MissingCredentialsMessage = "Veuillez fournir un email et un mot de passe"
	InvalidCredentialsMessage = "Email ou mot de passe incorrect"
	RoleChangeMessage         = "Seul un administrateur peut modifier le rôle d'un utilisateur"
)

func NotFound() *apperror.Error {
	return apperror.NotFound(NotFoundMessage)
}
