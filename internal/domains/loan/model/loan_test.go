package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperror"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusBorrowed, StatusReturned, true},
		{StatusBorrowed, StatusOverdue, true},
		{StatusOverdue, StatusReturned, true},
		{StatusOverdue, StatusBorrowed, true},
		{StatusReturned, StatusBorrowed, false},
		{StatusReturned, StatusOverdue, false},
		{StatusReturned, StatusReturned, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTargetStatus(t *testing.T) {
	now := time.Now()
	overdue := StatusOverdue

	assert.Equal(t, StatusReturned, UpdateLoanRequest{DateRetourEffective: &now}.TargetStatus(StatusBorrowed))
	assert.Equal(t, StatusOverdue, UpdateLoanRequest{DateRetourEffective: &now, Statut: &overdue}.TargetStatus(StatusBorrowed))
	assert.Equal(t, StatusBorrowed, UpdateLoanRequest{}.TargetStatus(StatusBorrowed))
}

func TestCreateSchema(t *testing.T) {
	t.Run("defaults status and loan date", func(t *testing.T) {
		due := time.Now().Add(14 * 24 * time.Hour).UTC().Format(time.RFC3339)
		p, err := CreateSchema.Validate(map[string]interface{}{
			"livre":            "0b9f5c1e-8d4a-4f2b-9a61-3c2d7e8f9a10",
			"utilisateur":      "5a7e2c44-1b3d-4e5f-8a9b-0c1d2e3f4a5b",
			"dateRetourPrevue": due,
		})
		require.NoError(t, err)

		req := NewCreateRequest(p)
		assert.Empty(t, req.Statut)
		assert.Equal(t, StatusBorrowed, req.InitialStatus())
		assert.False(t, req.DateEmprunt.IsZero())
		assert.Nil(t, req.DateRetourEffective)
	})

	t.Run("return date without status marks the loan returned", func(t *testing.T) {
		p, err := CreateSchema.Validate(map[string]interface{}{
			"livre":               "0b9f5c1e-8d4a-4f2b-9a61-3c2d7e8f9a10",
			"utilisateur":         "5a7e2c44-1b3d-4e5f-8a9b-0c1d2e3f4a5b",
			"dateEmprunt":         "2030-01-01",
			"dateRetourPrevue":    "2030-01-15",
			"dateRetourEffective": "2030-01-10",
		})
		require.NoError(t, err)

		req := NewCreateRequest(p)
		require.NotNil(t, req.DateRetourEffective)
		assert.Equal(t, StatusReturned, req.InitialStatus())

		returned := *req.DateRetourEffective
		update := UpdateLoanRequest{DateRetourEffective: &returned}
		assert.Equal(t, update.TargetStatus(StatusBorrowed), req.InitialStatus())
	})

	t.Run("submitted status wins over the return date", func(t *testing.T) {
		p, err := CreateSchema.Validate(map[string]interface{}{
			"livre":               "0b9f5c1e-8d4a-4f2b-9a61-3c2d7e8f9a10",
			"utilisateur":         "5a7e2c44-1b3d-4e5f-8a9b-0c1d2e3f4a5b",
			"dateEmprunt":         "2030-01-01",
			"dateRetourPrevue":    "2030-01-15",
			"dateRetourEffective": "2030-01-10",
			"statut":              StatusOverdue,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusOverdue, NewCreateRequest(p).InitialStatus())
	})

	t.Run("due date before defaulted loan date", func(t *testing.T) {
		_, err := CreateSchema.Validate(map[string]interface{}{
			"livre":            "0b9f5c1e-8d4a-4f2b-9a61-3c2d7e8f9a10",
			"utilisateur":      "5a7e2c44-1b3d-4e5f-8a9b-0c1d2e3f4a5b",
			"dateRetourPrevue": "2001-01-01",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
		assert.Contains(t, err.Error(), DueBeforeLoanMessage)
	})

	t.Run("collects every violation", func(t *testing.T) {
		_, err := CreateSchema.Validate(map[string]interface{}{
			"livre":  "not-an-id",
			"statut": "Perdu",
		})
		require.Error(t, err)

		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Messages, "Le livre doit être un ID valide")
		assert.Contains(t, appErr.Messages, "L'utilisateur est requis")
		assert.Contains(t, appErr.Messages, "La date de retour prévue est requise")
		assert.Contains(t, appErr.Messages, "Le statut doit être l'un des suivants: Emprunté, Retourné, En retard")
	})
}

func TestUpdateRequestClearsReturnDate(t *testing.T) {
	p, err := UpdateSchema.Validate(map[string]interface{}{"dateRetourEffective": nil})
	require.NoError(t, err)

	req := NewUpdateRequest(p)
	assert.True(t, req.ClearRetourEffective)

	returned := time.Now()
	loan := &Loan{DateRetourEffective: &returned}
	req.Apply(loan)
	assert.Nil(t, loan.DateRetourEffective)
}
