package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-api/internal/domains/loan/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/query"
)

const selectLoan = `
    SELECT e.id, e.livre_id, e.utilisateur_id, e.date_emprunt, e.date_retour_prevue,
           e.date_retour_effective, e.statut, e.created_at, e.updated_at,
           l.id, l.titre, l.genre, l.auteur_id,
           u.id, u.nom_utilisateur, u.email
    FROM emprunts e
    LEFT JOIN livres l ON l.id = e.livre_id
    LEFT JOIN utilisateurs u ON u.id = e.utilisateur_id`

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var (
		loan                 model.Loan
		bookID, bookAuthor   *uuid.UUID
		bookTitle, bookGenre *string
		userID               *uuid.UUID
		userName, userEmail  *string
	)
	err := row.Scan(
		&loan.ID, &loan.LivreID, &loan.UtilisateurID, &loan.DateEmprunt, &loan.DateRetourPrevue,
		&loan.DateRetourEffective, &loan.Statut, &loan.CreatedAt, &loan.UpdatedAt,
		&bookID, &bookTitle, &bookGenre, &bookAuthor,
		&userID, &userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}

	if bookID != nil {
		loan.Livre = &model.BookRef{ID: *bookID, Titre: deref(bookTitle), Genre: deref(bookGenre)}
		if bookAuthor != nil {
			loan.Livre.Auteur = *bookAuthor
		}
	}
	if userID != nil {
		loan.Utilisateur = &model.UserRef{ID: *userID, NomUtilisateur: deref(userName), Email: deref(userEmail)}
	}
	return &loan, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO emprunts (id, livre_id, utilisateur_id, date_emprunt, date_retour_prevue,
                              date_retour_effective, statut, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
		loan.ID, loan.LivreID, loan.UtilisateurID, loan.DateEmprunt, loan.DateRetourPrevue,
		loan.DateRetourEffective, loan.Statut,
	)
	if err != nil {
		return nil, database.WrapStore("create loan", err)
	}
	return r.GetByID(ctx, loan.ID)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	loan, err := scanLoan(r.db.QueryRow(ctx, selectLoan+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, database.WrapStore("get loan", err)
	}
	return loan, nil
}

func (r *postgresRepository) List(ctx context.Context, spec query.Spec) ([]model.Loan, int64, error) {
	q := database.NewListQuery(spec)
	page, args := q.Page(spec, "e.id")

	rows, err := r.db.Query(ctx, selectLoan+q.Where()+page, args...)
	if err != nil {
		return nil, 0, database.WrapStore("list loans", err)
	}
	defer rows.Close()

	loans := make([]model.Loan, 0, spec.Limit)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, 0, database.WrapStore("scan loan", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapStore("iterate loans", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM emprunts e`+q.Where(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, database.WrapStore("count loans", err)
	}

	return loans, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE emprunts
        SET livre_id = $1, utilisateur_id = $2, date_emprunt = $3, date_retour_prevue = $4,
            date_retour_effective = $5, statut = $6, updated_at = NOW()
        WHERE id = $7`,
		loan.LivreID, loan.UtilisateurID, loan.DateEmprunt, loan.DateRetourPrevue,
		loan.DateRetourEffective, loan.Statut, loan.ID,
	)
	if err != nil {
		return nil, database.WrapStore("update loan", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrLoanNotFound
	}
	return r.GetByID(ctx, loan.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM emprunts WHERE id = $1`, id)
	if err != nil {
		return database.WrapStore("delete loan", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLoanNotFound
	}
	return nil
}
