package model

import (
	"errors"

	"library-api/internal/shared/apperror"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

const (
	NotFoundMessage      = "Livre non trouvé"
	UnknownAuthorMessage = "L'auteur spécifié n'existe pas"
)

func NotFound() *apperror.Error {
	return apperror.NotFound(NotFoundMessage)
}
