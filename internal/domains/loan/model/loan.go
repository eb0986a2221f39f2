package model

import (
	"time"

	"github.com/google/uuid"
)

// Loan records a book lent to a user. LivreID and UtilisateurID are the
// stored references; Livre and Utilisateur are their populated views and
// are nil when the referenced row is gone.
type Loan struct {
	ID                  uuid.UUID  `json:"id"`
	LivreID             uuid.UUID  `json:"-"`
	Livre               *BookRef   `json:"livre"`
	UtilisateurID       uuid.UUID  `json:"-"`
	Utilisateur         *UserRef   `json:"utilisateur"`
	DateEmprunt         time.Time  `json:"dateEmprunt"`
	DateRetourPrevue    time.Time  `json:"dateRetourPrevue"`
	DateRetourEffective *time.Time `json:"dateRetourEffective"`
	Statut              string     `json:"statut"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type BookRef struct {
	ID     uuid.UUID `json:"id"`
	Titre  string    `json:"titre"`
	Genre  string    `json:"genre"`
	Auteur uuid.UUID `json:"auteur"`
}

type UserRef struct {
	ID             uuid.UUID `json:"id"`
	NomUtilisateur string    `json:"nomUtilisateur"`
	Email          string    `json:"email"`
}

// CheckDates enforces dateRetourPrevue >= dateEmprunt and, when set,
// dateRetourEffective >= dateEmprunt.
func (l *Loan) CheckDates() []string {
	var violations []string
	if l.DateRetourPrevue.Before(l.DateEmprunt) {
		violations = append(violations, DueBeforeLoanMessage)
	}
	if l.DateRetourEffective != nil && l.DateRetourEffective.Before(l.DateEmprunt) {
		violations = append(violations, ReturnBeforeLoanMessage)
	}
	return violations
}
