package repository

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/loan/model"
	"library-api/internal/shared/query"
)

// RepositoryInterface is the loan store. Reads populate Livre and
// Utilisateur.
type RepositoryInterface interface {
	Create(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	List(ctx context.Context, spec query.Spec) ([]model.Loan, int64, error)
	Update(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
