package model

import (
	"errors"
	"fmt"

	"library-api/internal/shared/apperror"
)

var (
	ErrLoanNotFound = errors.New("loan not found")
)

const (
	NotFoundMessage         = "Emprunt non trouvé"
	UnknownBookMessage      = "Le livre spécifié n'existe pas"
	UnknownUserMessage      = "L'utilisateur spécifié n'existe pas"
	DueBeforeLoanMessage    = "La date de retour prévue doit être après la date d'emprunt"
	ReturnBeforeLoanMessage = "La date de retour effective doit être après la date d'emprunt"
)

func NotFound() *apperror.Error {
	return apperror.NotFound(NotFoundMessage)
}

// InvalidTransition is returned when a status change is not allowed
func InvalidTransition(from, to string) *apperror.Error {
	return apperror.BadRequest(fmt.Sprintf("Impossible de passer du statut '%s' au statut '%s'", from, to))
}
