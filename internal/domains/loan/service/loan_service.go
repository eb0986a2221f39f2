package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-api/internal/domains/loan/model"
	"library-api/internal/domains/loan/repository"
	"library-api/internal/shared/apperror"
	"library-api/internal/shared/query"
)

type loanService struct {
	repo  repository.RepositoryInterface
	books ReferenceChecker
	users ReferenceChecker
}

func NewLoanService(repo repository.RepositoryInterface, books, users ReferenceChecker) ServiceInterface {
	return &loanService{repo: repo, books: books, users: users}
}

func (s *loanService) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (*model.Loan, error) {
	if err := s.checkReferences(ctx, &req.LivreID, &req.UtilisateurID); err != nil {
		return nil, err
	}

	loan := &model.Loan{
		ID:                  uuid.New(),
		LivreID:             req.LivreID,
		UtilisateurID:       req.UtilisateurID,
		DateEmprunt:         req.DateEmprunt,
		DateRetourPrevue:    req.DateRetourPrevue,
		DateRetourEffective: req.DateRetourEffective,
		Statut:              req.InitialStatus(),
	}
	if loan.DateEmprunt.IsZero() {
		loan.DateEmprunt = time.Now().UTC()
	}
	if violations := loan.CheckDates(); len(violations) > 0 {
		return nil, apperror.BadRequest(violations...)
	}

	created, err := s.repo.Create(ctx, loan)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return created, nil
}

func (s *loanService) GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	loan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, spec query.Spec) ([]model.Loan, int64, error) {
	loans, total, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return loans, total, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, id uuid.UUID, req model.UpdateLoanRequest) (*model.Loan, error) {
	// 1. Load current state
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	// 2. Changed references must exist
	var bookID, userID *uuid.UUID
	if req.LivreID != nil && *req.LivreID != current.LivreID {
		bookID = req.LivreID
	}
	if req.UtilisateurID != nil && *req.UtilisateurID != current.UtilisateurID {
		userID = req.UtilisateurID
	}
	if err := s.checkReferences(ctx, bookID, userID); err != nil {
		return nil, err
	}

	// 3. Status transition
	target := req.TargetStatus(current.Statut)
	if !model.CanTransition(current.Statut, target) {
		return nil, model.InvalidTransition(current.Statut, target)
	}

	// 4. Merge and re-check date ordering on the merged loan
	req.Apply(current)
	current.Statut = target
	if violations := current.CheckDates(); len(violations) > 0 {
		return nil, apperror.BadRequest(violations...)
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// checkReferences verifies the non-nil ids; both misses are reported
func (s *loanService) checkReferences(ctx context.Context, bookID, userID *uuid.UUID) error {
	var violations []string

	if bookID != nil {
		ok, err := s.books.Exists(ctx, *bookID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			violations = append(violations, model.UnknownBookMessage)
		}
	}

	if userID != nil {
		ok, err := s.users.Exists(ctx, *userID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			violations = append(violations, model.UnknownUserMessage)
		}
	}

	if len(violations) > 0 {
		return apperror.BadRequest(violations...)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, model.ErrLoanNotFound) {
		return model.NotFound()
	}
	return apperror.Internal(err)
}
