package repository

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/book/model"
)

// fakeRow scans fixed column values; a nil value leaves a pointer
// destination nil, as pgx does for NULL.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range r.values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		value := reflect.ValueOf(v)
		if target.Kind() == reflect.Ptr && value.Type() != target.Type() {
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(value)
			target.Set(p)
			continue
		}
		target.Set(value)
	}
	return nil
}

type fakeDB struct {
	row      fakeRow
	execSQL  string
	execArgs []any
	querySQL string
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execSQL, db.execArgs = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.querySQL = sql
	return db.row
}

var stamp = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func bookRow(b *model.Book, authorID, authorNom any) fakeRow {
	return fakeRow{values: []any{
		b.ID, b.Titre, b.AuteurID, b.Genre, b.DatePublication, b.NombrePages,
		stamp, stamp, authorID, authorNom,
	}}
}

func TestCreateReadsBackPopulatedAuthor(t *testing.T) {
	authorID := uuid.New()
	book := &model.Book{
		ID: uuid.New(), Titre: "Les Misérables", AuteurID: authorID,
		Genre: "Fiction", DatePublication: stamp, NombrePages: 1900,
	}
	db := &fakeDB{row: bookRow(book, authorID, "Victor Hugo")}
	repo := NewPostgresRepository(db)

	created, err := repo.Create(context.Background(), book)
	require.NoError(t, err)

	assert.Contains(t, db.execSQL, "INSERT INTO livres")
	assert.Equal(t, authorID, db.execArgs[2])
	assert.Contains(t, db.querySQL, "LEFT JOIN auteurs a ON a.id = l.auteur_id")

	require.NotNil(t, created.Auteur)
	assert.Equal(t, authorID, created.Auteur.ID)
	assert.Equal(t, "Victor Hugo", created.Auteur.Nom)

	raw, err := json.Marshal(created)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, map[string]any{"id": authorID.String(), "nom": "Victor Hugo"}, body["auteur"])
	assert.NotContains(t, body, "auteurId")
}

func TestGetByIDWithDeletedAuthorRendersNull(t *testing.T) {
	book := &model.Book{ID: uuid.New(), Titre: "Orphelin", AuteurID: uuid.New(), Genre: "Autre", NombrePages: 10}
	repo := NewPostgresRepository(&fakeDB{row: bookRow(book, nil, nil)})

	got, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Auteur)
	assert.Equal(t, book.AuteurID, got.AuteurID)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"auteur":null`)
}

func TestGetByIDMissingBook(t *testing.T) {
	repo := NewPostgresRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}
