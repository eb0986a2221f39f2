package author

import (
	"errors"

	"library-api/internal/shared/apperror"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
)

const NotFoundMessage = "Auteur non trouvé"

// NotFound is the API error for a missing author
func NotFound() *apperror.Error {
	return apperror.NotFound(NotFoundMessage)
}
