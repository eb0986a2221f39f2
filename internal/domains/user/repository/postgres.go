package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-api/internal/domains/user"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/query"
)

// Public columns; the password hash is only selected by GetByEmail
const userColumns = `id, nom_utilisateur, email, role, is_admin, date_inscription, created_at, updated_at`

type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository works over the pool or a transaction
func NewPostgresRepository(db database.Querier) user.Repository {
	return &postgresRepository{db: db}
}

func scanUser(row pgx.Row, extra ...interface{}) (*user.User, error) {
	var u user.User
	dest := append([]interface{}{
		&u.ID, &u.NomUtilisateur, &u.Email, &u.Role, &u.IsAdmin,
		&u.DateInscription, &u.CreatedAt, &u.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// BASIC CRUD
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO utilisateurs (id, nom_utilisateur, email, mot_de_passe, role, is_admin,
                                  date_inscription, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING `+userColumns,
		u.ID, u.NomUtilisateur, u.Email, u.MotDePasse, u.Role, u.IsAdmin, u.DateInscription,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, database.WrapStore("create user", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM utilisateurs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, database.WrapStore("get user", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var hash string
	u, err := scanUser(
		r.db.QueryRow(ctx, `SELECT `+userColumns+`, mot_de_passe FROM utilisateurs WHERE email = $1`, email),
		&hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, database.WrapStore("get user by email", err)
	}
	u.MotDePasse = hash
	return u, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM utilisateurs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, database.WrapStore("check user", err)
	}
	return exists, nil
}

// FindIdentity resolves a token subject for the credential verifier
func (r *postgresRepository) FindIdentity(ctx context.Context, id uuid.UUID) (*auth.Identity, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}
	return u.Identity(), nil
}

func (r *postgresRepository) List(ctx context.Context, spec query.Spec) ([]user.User, int64, error) {
	q := database.NewListQuery(spec)
	page, args := q.Page(spec, "id")

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM utilisateurs`+q.Where()+page, args...)
	if err != nil {
		return nil, 0, database.WrapStore("list users", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, spec.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, database.WrapStore("scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapStore("iterate users", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM utilisateurs`+q.Where(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, database.WrapStore("count users", err)
	}

	return users, total, nil
}

// Update writes every column; an empty MotDePasse keeps the stored hash
func (r *postgresRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE utilisateurs
        SET nom_utilisateur = $1, email = $2,
            mot_de_passe = COALESCE(NULLIF($3, ''), mot_de_passe),
            role = $4, is_admin = $5, date_inscription = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING `+userColumns,
		u.NomUtilisateur, u.Email, u.MotDePasse, u.Role, u.IsAdmin, u.DateInscription, u.ID,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, database.WrapStore("update user", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM utilisateurs WHERE id = $1`, id)
	if err != nil {
		return database.WrapStore("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
