package model

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared/query"
	"library-api/internal/shared/validation"
)

var statusMessage = validation.ListMessage("Le statut doit être l'un des suivants: ", Statuses)

var fields = []validation.Field{
	{
		Name:            "livre",
		Type:            validation.TypeID,
		Required:        true,
		TypeMessage:     "Le livre doit être un ID valide",
		RequiredMessage: "Le livre est requis",
	},
	{
		Name:            "utilisateur",
		Type:            validation.TypeID,
		Required:        true,
		TypeMessage:     "L'utilisateur doit être un ID valide",
		RequiredMessage: "L'utilisateur est requis",
	},
	{
		Name:        "dateEmprunt",
		Type:        validation.TypeDate,
		Default:     validation.Now,
		TypeMessage: "La date d'emprunt doit être une date valide",
	},
	{
		Name:            "dateRetourPrevue",
		Type:            validation.TypeDate,
		Required:        true,
		TypeMessage:     "La date de retour prévue doit être une date valide",
		RequiredMessage: "La date de retour prévue est requise",
	},
	{
		Name:        "dateRetourEffective",
		Type:        validation.TypeDate,
		Nullable:    true,
		TypeMessage: "La date de retour effective doit être une date valide",
	},
	{
		Name:         "statut",
		Type:         validation.TypeString,
		TypeMessage:  statusMessage,
		EmptyMessage: statusMessage,
		Checks:       []validation.Check{validation.OneOf(statusMessage, Statuses...)},
	},
}

// CreateSchema validates POST /emprunts
var CreateSchema = validation.NewSchema("emprunt", fields...).WithCrossRules(
	validation.NotBefore("dateRetourPrevue", "dateEmprunt", DueBeforeLoanMessage),
	validation.NotBefore("dateRetourEffective", "dateEmprunt", ReturnBeforeLoanMessage),
)

// UpdateSchema validates PUT /emprunts/:id. Cross rules only see the
// submitted dates; the service re-checks against the stored loan.
var UpdateSchema = CreateSchema.Partial()

// ListDefinition drives GET /emprunts
var ListDefinition = query.Definition{
	DefaultSort: "dateEmprunt",
	Sortable: map[string]string{
		"dateEmprunt":         "e.date_emprunt",
		"dateRetourPrevue":    "e.date_retour_prevue",
		"dateRetourEffective": "e.date_retour_effective",
		"statut":              "e.statut",
		"createdAt":           "e.created_at",
		"updatedAt":           "e.updated_at",
	},
	Filters: []query.FilterDef{
		{Param: "livre", Column: "e.livre_id", Kind: query.Reference},
		{Param: "utilisateur", Column: "e.utilisateur_id", Kind: query.Reference},
		{Param: "statut", Column: "e.statut", Kind: query.Exact},
	},
}

type CreateLoanRequest struct {
	LivreID             uuid.UUID
	UtilisateurID       uuid.UUID
	DateEmprunt         time.Time
	DateRetourPrevue    time.Time
	DateRetourEffective *time.Time
	Statut              string
}

// InitialStatus is the submitted status, otherwise Retourné when a return
// date is present and Emprunté when not.
func (r CreateLoanRequest) InitialStatus() string {
	if r.Statut != "" {
		return r.Statut
	}
	if r.DateRetourEffective != nil {
		return StatusReturned
	}
	return StatusBorrowed
}

// UpdateLoanRequest holds the submitted fields. ClearRetourEffective is set
// when dateRetourEffective was sent as null.
type UpdateLoanRequest struct {
	LivreID              *uuid.UUID
	UtilisateurID        *uuid.UUID
	DateEmprunt          *time.Time
	DateRetourPrevue     *time.Time
	DateRetourEffective  *time.Time
	ClearRetourEffective bool
	Statut               *string
}

// NewCreateRequest leaves Statut empty when none was submitted; see
// InitialStatus.
func NewCreateRequest(p validation.Payload) CreateLoanRequest {
	req := CreateLoanRequest{
		DateEmprunt: time.Now().UTC(),
	}
	req.LivreID, _ = p.ID("livre")
	req.UtilisateurID, _ = p.ID("utilisateur")
	req.DateRetourPrevue, _ = p.Time("dateRetourPrevue")
	req.DateRetourEffective = p.TimePtr("dateRetourEffective")
	if t, ok := p.Time("dateEmprunt"); ok {
		req.DateEmprunt = t
	}
	if s, ok := p.String("statut"); ok {
		req.Statut = s
	}
	return req
}

func NewUpdateRequest(p validation.Payload) UpdateLoanRequest {
	return UpdateLoanRequest{
		LivreID:              p.IDPtr("livre"),
		UtilisateurID:        p.IDPtr("utilisateur"),
		DateEmprunt:          p.TimePtr("dateEmprunt"),
		DateRetourPrevue:     p.TimePtr("dateRetourPrevue"),
		DateRetourEffective:  p.TimePtr("dateRetourEffective"),
		ClearRetourEffective: p.IsNull("dateRetourEffective"),
		Statut:               p.StringPtr("statut"),
	}
}

// Apply merges the submitted fields into l, leaving the status alone
func (r UpdateLoanRequest) Apply(l *Loan) {
	if r.LivreID != nil {
		l.LivreID = *r.LivreID
	}
	if r.UtilisateurID != nil {
		l.UtilisateurID = *r.UtilisateurID
	}
	if r.DateEmprunt != nil {
		l.DateEmprunt = *r.DateEmprunt
	}
	if r.DateRetourPrevue != nil {
		l.DateRetourPrevue = *r.DateRetourPrevue
	}
	if r.DateRetourEffective != nil {
		l.DateRetourEffective = r.DateRetourEffective
	} else if r.ClearRetourEffective {
		l.DateRetourEffective = nil
	}
}

// TargetStatus is the status the loan ends in after the update. A return
// date submitted without a status marks the loan as returned.
func (r UpdateLoanRequest) TargetStatus(current string) string {
	if r.Statut != nil {
		return *r.Statut
	}
	if r.DateRetourEffective != nil {
		return StatusReturned
	}
	return current
}
