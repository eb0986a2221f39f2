package service

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/loan/model"
	"library-api/internal/shared/query"
)

type ServiceInterface interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (*model.Loan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ListLoans(ctx context.Context, spec query.Spec) ([]model.Loan, int64, error)
	UpdateLoan(ctx context.Context, id uuid.UUID, req model.UpdateLoanRequest) (*model.Loan, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
}

// ReferenceChecker confirms a referenced row exists. Satisfied by the book
// and user repositories.
type ReferenceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
