package model

import (
	"time"

	"github.com/google/uuid"
)

// Genres is the closed set of book genres
var Genres = []string{
	"Fiction", "Science-fiction", "Fantasy", "Thriller", "Romance",
	"Biographie", "Histoire", "Poésie", "Jeunesse", "Autre",
}

// Book is a catalogue entry. AuteurID is what is stored; Auteur is the
// populated view and is nil when the author no longer exists.
type Book struct {
	ID              uuid.UUID  `json:"id"`
	Titre           string     `json:"titre"`
	AuteurID        uuid.UUID  `json:"-"`
	Auteur          *AuthorRef `json:"auteur"`
	Genre           string     `json:"genre"`
	DatePublication time.Time  `json:"datePublication"`
	NombrePages     int64      `json:"nombrePages"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AuthorRef is the populated author of a book
type AuthorRef struct {
	ID  uuid.UUID `json:"id"`
	Nom string    `json:"nom"`
}
