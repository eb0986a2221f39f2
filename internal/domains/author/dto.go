package author

import (
	"time"

	"library-api/internal/shared/query"
	"library-api/internal/shared/validation"
)

// CreateSchema validates POST /auteurs
var CreateSchema = validation.NewSchema("auteur",
	validation.Field{
		Name:            "nom",
		Type:            validation.TypeString,
		Required:        true,
		TypeMessage:     "Le nom doit être une chaîne de caractères",
		EmptyMessage:    "Le nom ne peut pas être vide",
		RequiredMessage: "Le nom est requis",
		Checks: []validation.Check{
			validation.MinLength(3, "Le nom doit contenir au moins 3 caractères"),
			validation.MaxLength(50, "Le nom ne peut pas dépasser 50 caractères"),
		},
	},
	validation.Field{
		Name:        "dateCreation",
		Type:        validation.TypeDate,
		Default:     validation.Now,
		TypeMessage: "La date de création doit être une date valide",
	},
)

// UpdateSchema validates PUT /auteurs/:id
var UpdateSchema = CreateSchema.Partial()

// ListDefinition drives GET /auteurs
var ListDefinition = query.Definition{
	DefaultSort: "createdAt",
	Sortable: map[string]string{
		"nom":          "nom",
		"dateCreation": "date_creation",
		"createdAt":    "created_at",
		"updatedAt":    "updated_at",
	},
	Filters: []query.FilterDef{
		{Param: "nom", Column: "nom", Kind: query.Contains},
	},
}

type CreateAuthorRequest struct {
	Nom          string
	DateCreation time.Time
}

// UpdateAuthorRequest carries only the submitted fields
type UpdateAuthorRequest struct {
	Nom          *string
	DateCreation *time.Time
}

func NewCreateRequest(p validation.Payload) CreateAuthorRequest {
	nom, _ := p.String("nom")
	req := CreateAuthorRequest{Nom: nom, DateCreation: time.Now().UTC()}
	if t, ok := p.Time("dateCreation"); ok {
		req.DateCreation = t
	}
	return req
}

func NewUpdateRequest(p validation.Payload) UpdateAuthorRequest {
	return UpdateAuthorRequest{
		Nom:          p.StringPtr("nom"),
		DateCreation: p.TimePtr("dateCreation"),
	}
}

// Apply merges the submitted fields into a
func (r UpdateAuthorRequest) Apply(a *Author) {
	if r.Nom != nil {
		a.Nom = *r.Nom
	}
	if r.DateCreation != nil {
		a.DateCreation = *r.DateCreation
	}
}
