package model

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared/query"
	"library-api/internal/shared/validation"
)

var genreMessage = validation.ListMessage("Le genre doit être l'un des suivants: ", Genres)

// CreateSchema validates POST /livres
var CreateSchema = validation.NewSchema("livre",
	validation.Field{
		Name:            "titre",
		Type:            validation.TypeString,
		Required:        true,
		TypeMessage:     "Le titre doit être une chaîne de caractères",
		EmptyMessage:    "Le titre ne peut pas être vide",
		RequiredMessage: "Le titre est requis",
		Checks: []validation.Check{
			validation.MinLength(3, "Le titre doit contenir au moins 3 caractères"),
			validation.MaxLength(255, "Le titre ne peut pas dépasser 255 caractères"),
		},
	},
	validation.Field{
		Name:            "auteur",
		Type:            validation.TypeID,
		Required:        true,
		TypeMessage:     "L'auteur doit être un ID valide",
		RequiredMessage: "L'auteur est requis",
	},
	validation.Field{
		Name:            "genre",
		Type:            validation.TypeString,
		Required:        true,
		TypeMessage:     genreMessage,
		EmptyMessage:    genreMessage,
		RequiredMessage: "Le genre est requis",
		Checks:          []validation.Check{validation.OneOf(genreMessage, Genres...)},
	},
	validation.Field{
		Name:        "datePublication",
		Type:        validation.TypeDate,
		Default:     validation.Now,
		TypeMessage: "La date de publication doit être une date valide",
	},
	validation.Field{
		Name:            "nombrePages",
		Type:            validation.TypeInteger,
		Required:        true,
		TypeMessage:     "Le nombre de pages doit être un nombre",
		RequiredMessage: "Le nombre de pages est requis",
		Checks:          []validation.Check{validation.MinInt(1, "Le nombre de pages doit être au moins 1")},
	},
)

// UpdateSchema validates PUT /livres/:id
var UpdateSchema = CreateSchema.Partial()

// ListDefinition drives GET /livres
var ListDefinition = query.Definition{
	DefaultSort: "createdAt",
	Sortable: map[string]string{
		"titre":           "l.titre",
		"genre":           "l.genre",
		"datePublication": "l.date_publication",
		"nombrePages":     "l.nombre_pages",
		"createdAt":       "l.created_at",
		"updatedAt":       "l.updated_at",
	},
	Filters: []query.FilterDef{
		{Param: "titre", Column: "l.titre", Kind: query.Contains},
		{Param: "genre", Column: "l.genre", Kind: query.Exact},
		{Param: "auteur", Column: "l.auteur_id", Kind: query.Reference},
	},
}

type CreateBookRequest struct {
	Titre           string
	AuteurID        uuid.UUID
	Genre           string
	DatePublication time.Time
	NombrePages     int64
}

type UpdateBookRequest struct {
	Titre           *string
	AuteurID        *uuid.UUID
	Genre           *string
	DatePublication *time.Time
	NombrePages     *int64
}

func NewCreateRequest(p validation.Payload) CreateBookRequest {
	req := CreateBookRequest{DatePublication: time.Now().UTC()}
	req.Titre, _ = p.String("titre")
	req.AuteurID, _ = p.ID("auteur")
	req.Genre, _ = p.String("genre")
	req.NombrePages, _ = p.Int("nombrePages")
	if t, ok := p.Time("datePublication"); ok {
		req.DatePublication = t
	}
	return req
}

func NewUpdateRequest(p validation.Payload) UpdateBookRequest {
	return UpdateBookRequest{
		Titre:           p.StringPtr("titre"),
		AuteurID:        p.IDPtr("auteur"),
		Genre:           p.StringPtr("genre"),
		DatePublication: p.TimePtr("datePublication"),
		NombrePages:     p.IntPtr("nombrePages"),
	}
}

func (r UpdateBookRequest) Apply(b *Book) {
	if r.Titre != nil {
		b.Titre = *r.Titre
	}
	if r.AuteurID != nil {
		b.AuteurID = *r.AuteurID
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
	if r.DatePublication != nil {
		b.DatePublication = *r.DatePublication
	}
	if r.NombrePages != nil {
		b.NombrePages = *r.NombrePages
	}
}
