package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/query"
)

// Books are always read joined to their author; a.id is NULL when the
// author row is gone.
const selectBook = `
    SELECT l.id, l.titre, l.auteur_id, l.genre, l.date_publication, l.nombre_pages,
           l.created_at, l.updated_at, a.id, a.nom
    FROM livres l
    LEFT JOIN auteurs a ON a.id = l.auteur_id`

type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b         model.Book
		authorID  *uuid.UUID
		authorNom *string
	)
	err := row.Scan(
		&b.ID, &b.Titre, &b.AuteurID, &b.Genre, &b.DatePublication, &b.NombrePages,
		&b.CreatedAt, &b.UpdatedAt, &authorID, &authorNom,
	)
	if err != nil {
		return nil, err
	}
	if authorID != nil {
		b.Auteur = &model.AuthorRef{ID: *authorID}
		if authorNom != nil {
			b.Auteur.Nom = *authorNom
		}
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO livres (id, titre, auteur_id, genre, date_publication, nombre_pages, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		b.ID, b.Titre, b.AuteurID, b.Genre, b.DatePublication, b.NombrePages,
	)
	if err != nil {
		return nil, database.WrapStore("create book", err)
	}
	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := scanBook(r.db.QueryRow(ctx, selectBook+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, database.WrapStore("get book", err)
	}
	return b, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM livres WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, database.WrapStore("check book", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, spec query.Spec) ([]model.Book, int64, error) {
	q := database.NewListQuery(spec)
	page, args := q.Page(spec, "l.id")

	rows, err := r.db.Query(ctx, selectBook+q.Where()+page, args...)
	if err != nil {
		return nil, 0, database.WrapStore("list books", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, spec.Limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, database.WrapStore("scan book", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapStore("iterate books", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM livres l`+q.Where(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, database.WrapStore("count books", err)
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE livres
        SET titre = $1, auteur_id = $2, genre = $3, date_publication = $4,
            nombre_pages = $5, updated_at = NOW()
        WHERE id = $6`,
		b.Titre, b.AuteurID, b.Genre, b.DatePublication, b.NombrePages, b.ID,
	)
	if err != nil {
		return nil, database.WrapStore("update book", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrBookNotFound
	}
	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM livres WHERE id = $1`, id)
	if err != nil {
		return database.WrapStore("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
