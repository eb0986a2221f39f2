package user

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared/auth"
	"library-api/internal/shared/query"
	"library-api/internal/shared/validation"
)

var roleNames = func() []string {
	names := make([]string, 0, len(auth.AllRoles()))
	for _, r := range auth.AllRoles() {
		names = append(names, r.String())
	}
	return names
}()

var roleMessage = validation.ListMessage("Le rôle doit être l'un des suivants: ", roleNames)

// CreateSchema validates POST /utilisateurs
var CreateSchema = validation.NewSchema("utilisateur",
	validation.Field{
		Name:            "nomUtilisateur",
		Type:            validation.TypeString,
		Required:        true,
		TypeMessage:     "Le nom d'utilisateur doit être une chaîne de caractères",
		EmptyMessage:    "Le nom d'utilisateur ne peut pas être vide",
		RequiredMessage: "Le nom d'utilisateur est requis",
		Checks: []validation.Check{
			validation.MinLength(3, "Le nom d'utilisateur doit contenir au moins 3 caractères"),
			validation.MaxLength(50, "Le nom d'utilisateur ne peut pas dépasser 50 caractères"),
		},
	},
	validation.Field{
		Name:            "email",
		Type:            validation.TypeEmail,
		Required:        true,
		TypeMessage:     "L'email doit être une chaîne de caractères",
		EmptyMessage:    "L'email ne peut pas être vide",
		RequiredMessage: "L'email est requis",
		Checks: []validation.Check{
			validation.MinLength(5, "L'email doit contenir au moins 5 caractères"),
			validation.MaxLength(255, "L'email ne peut pas dépasser 255 caractères"),
			validation.EmailFormat("L'email doit être une adresse email valide"),
		},
	},
	validation.Field{
		Name:            "motDePasse",
		Type:            validation.TypeString,
		Required:        true,
		NoTrim:          true,
		TypeMessage:     "Le mot de passe doit être une chaîne de caractères",
		EmptyMessage:    "Le mot de passe ne peut pas être vide",
		RequiredMessage: "Le mot de passe est requis",
		Checks: []validation.Check{
			validation.MinLength(5, "Le mot de passe doit contenir au moins 5 caractères"),
			validation.MaxLength(255, "Le mot de passe ne peut pas dépasser 255 caractères"),
		},
	},
	validation.Field{
		Name:        "isAdmin",
		Type:        validation.TypeBoolean,
		TypeMessage: "isAdmin doit être un booléen",
	},
	validation.Field{
		Name:         "role",
		Type:         validation.TypeString,
		TypeMessage:  roleMessage,
		EmptyMessage: roleMessage,
		Checks:       []validation.Check{validation.OneOf(roleMessage, roleNames...)},
	},
	validation.Field{
		Name:        "dateInscription",
		Type:        validation.TypeDate,
		Default:     validation.Now,
		TypeMessage: "La date d'inscription doit être une date valide",
	},
)

// UpdateSchema validates PUT /utilisateurs/:id
var UpdateSchema = CreateSchema.Partial()

// ListDefinition drives GET /utilisateurs
var ListDefinition = query.Definition{
	DefaultSort: "createdAt",
	Sortable: map[string]string{
		"nomUtilisateur":  "nom_utilisateur",
		"email":           "email",
		"dateInscription": "date_inscription",
		"createdAt":       "created_at",
		"updatedAt":       "updated_at",
	},
	Filters: []query.FilterDef{
		{Param: "nomUtilisateur", Column: "nom_utilisateur", Kind: query.Contains},
		{Param: "email", Column: "email", Kind: query.Contains},
	},
}

// ========================================
// REQUEST DTOs
// ========================================

// RegisterRequest - IsAdmin and Role are only honoured for admin callers
type RegisterRequest struct {
	NomUtilisateur  string
	Email           string
	MotDePasse      string
	IsAdmin         *bool
	Role            *auth.Role
	DateInscription time.Time
}

type UpdateUserRequest struct {
	NomUtilisateur  *string
	Email           *string
	MotDePasse      *string
	IsAdmin         *bool
	Role            *auth.Role
	DateInscription *time.Time
}

// LoginRequest is bound straight from the body; both fields are required
type LoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

func NewRegisterRequest(p validation.Payload) RegisterRequest {
	req := RegisterRequest{DateInscription: time.Now().UTC()}
	req.NomUtilisateur, _ = p.String("nomUtilisateur")
	req.Email, _ = p.String("email")
	req.MotDePasse, _ = p.String("motDePasse")
	req.IsAdmin = p.BoolPtr("isAdmin")
	req.Role = rolePtr(p)
	if t, ok := p.Time("dateInscription"); ok {
		req.DateInscription = t
	}
	return req
}

func NewUpdateRequest(p validation.Payload) UpdateUserRequest {
	return UpdateUserRequest{
		NomUtilisateur:  p.StringPtr("nomUtilisateur"),
		Email:           p.StringPtr("email"),
		MotDePasse:      p.StringPtr("motDePasse"),
		IsAdmin:         p.BoolPtr("isAdmin"),
		Role:            rolePtr(p),
		DateInscription: p.TimePtr("dateInscription"),
	}
}

func rolePtr(p validation.Payload) *auth.Role {
	s := p.StringPtr("role")
	if s == nil {
		return nil
	}
	r := auth.Role(*s)
	return &r
}

// TouchesAccess reports whether the update changes role or isAdmin
func (r UpdateUserRequest) TouchesAccess(u *User) bool {
	role, isAdmin := r.ResolveAccess(u)
	current, currentAdmin := auth.Normalize(u.Role, u.IsAdmin)
	return role != current || isAdmin != currentAdmin
}

// ResolveAccess computes the role and isAdmin after the update. isAdmin
// true promotes to admin; isAdmin false demotes an admin to standard.
func (r UpdateUserRequest) ResolveAccess(u *User) (auth.Role, bool) {
	role, isAdmin := auth.Normalize(u.Role, u.IsAdmin)
	if r.Role != nil {
		role, isAdmin = auth.Normalize(*r.Role, false)
	}
	if r.IsAdmin != nil {
		if *r.IsAdmin {
			return auth.Normalize(role, true)
		}
		if role == auth.RoleAdmin {
			role = auth.RoleStandard
		}
		isAdmin = false
	}
	return auth.Normalize(role, isAdmin)
}

// Apply merges the profile fields; access fields and the password hash are
// set by the service.
func (r UpdateUserRequest) Apply(u *User) {
	if r.NomUtilisateur != nil {
		u.NomUtilisateur = *r.NomUtilisateur
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.DateInscription != nil {
		u.DateInscription = *r.DateInscription
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

// Summary is the user block returned by login
type Summary struct {
	ID             uuid.UUID `json:"id"`
	NomUtilisateur string    `json:"nomUtilisateur"`
	Email          string    `json:"email"`
	IsAdmin        bool      `json:"isAdmin"`
	Role           auth.Role `json:"role"`
}

type LoginResponse struct {
	Token       string  `json:"token"`
	Utilisateur Summary `json:"utilisateur"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:             u.ID,
		NomUtilisateur: u.NomUtilisateur,
		Email:          u.Email,
		IsAdmin:        u.IsAdmin,
		Role:           u.Role,
	}
}
