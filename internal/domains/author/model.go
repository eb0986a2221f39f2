package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is a book author; Nom is unique
type Author struct {
	ID           uuid.UUID `json:"id"`
	Nom          string    `json:"nom"`
	DateCreation time.Time `json:"dateCreation"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
