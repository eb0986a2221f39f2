package user

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared/auth"
)

// User maps 1:1 to the utilisateurs table
type User struct {
	ID             uuid.UUID `json:"id"`
	NomUtilisateur string    `json:"nomUtilisateur"`
	Email          string    `json:"email"`

	// Bcrypt hash, never serialized
	MotDePasse string `json:"-"`

	// Authorization: isAdmin mirrors role == admin
	Role    auth.Role `json:"role"`
	IsAdmin bool      `json:"isAdmin"`

	DateInscription time.Time `json:"dateInscription"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Identity is the authenticated view of u
func (u *User) Identity() *auth.Identity {
	role, isAdmin := auth.Normalize(u.Role, u.IsAdmin)
	return &auth.Identity{
		ID:       u.ID,
		Username: u.NomUtilisateur,
		Email:    u.Email,
		Role:     role,
		IsAdmin:  isAdmin,
	}
}
