package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-api/internal/domains/author"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/query"
)

const authorColumns = `id, nom, date_creation, created_at, updated_at`

// postgresRepository implements author.Repository
type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) author.Repository {
	return &postgresRepository{db: db}
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	if err := row.Scan(&a.ID, &a.Nom, &a.DateCreation, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO auteurs (id, nom, date_creation, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING `+authorColumns,
		a.ID, a.Nom, a.DateCreation,
	)

	created, err := scanAuthor(row)
	if err != nil {
		return nil, database.WrapStore("create author", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	row := r.db.QueryRow(ctx, `SELECT `+authorColumns+` FROM auteurs WHERE id = $1`, id)

	a, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, database.WrapStore("get author", err)
	}
	return a, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM auteurs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, database.WrapStore("check author", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, spec query.Spec) ([]author.Author, int64, error) {
	q := database.NewListQuery(spec)
	page, args := q.Page(spec, "id")

	rows, err := r.db.Query(ctx, `SELECT `+authorColumns+` FROM auteurs`+q.Where()+page, args...)
	if err != nil {
		return nil, 0, database.WrapStore("list authors", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0, spec.Limit)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, database.WrapStore("scan author", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapStore("iterate authors", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM auteurs`+q.Where(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, database.WrapStore("count authors", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE auteurs
        SET nom = $1, date_creation = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING `+authorColumns,
		a.Nom, a.DateCreation, a.ID,
	)

	updated, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, database.WrapStore("update author", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM auteurs WHERE id = $1`, id)
	if err != nil {
		return database.WrapStore("delete author", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}
