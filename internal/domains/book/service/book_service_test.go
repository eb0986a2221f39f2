package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/apperror"
	"library-api/internal/shared/query"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, *model.Book) *model.Book); ok {
		return fn(ctx, b), args.Error(1)
	}
	if v := args.Get(0); v != nil {
		return v.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, spec query.Spec) ([]model.Book, int64, error) {
	args := m.Called(ctx, spec)
	if v := args.Get(0); v != nil {
		return v.([]model.Book), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, *model.Book) *model.Book); ok {
		return fn(ctx, b), args.Error(1)
	}
	if v := args.Get(0); v != nil {
		return v.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthors struct {
	mock.Mock
}

func (m *MockAuthors) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func echo(ctx context.Context, b *model.Book) *model.Book { return b }

func TestCreateBook(t *testing.T) {
	authorID := uuid.New()

	t.Run("existing author", func(t *testing.T) {
		repo, authors := new(MockRepository), new(MockAuthors)
		svc := NewService(repo, authors)

		authors.On("Exists", mock.Anything, authorID).Return(true, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.ID != uuid.Nil && b.AuteurID == authorID && !b.DatePublication.IsZero()
		})).Return(echo, nil)

		book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
			Titre: "Les Misérables", AuteurID: authorID, Genre: "Fiction", NombrePages: 1488,
		})
		require.NoError(t, err)
		assert.Equal(t, "Les Misérables", book.Titre)
		repo.AssertExpectations(t)
	})

	t.Run("unknown author", func(t *testing.T) {
		repo, authors := new(MockRepository), new(MockAuthors)
		svc := NewService(repo, authors)

		authors.On("Exists", mock.Anything, authorID).Return(false, nil)

		_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{AuteurID: authorID})
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
		assert.Equal(t, model.UnknownAuthorMessage, err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("author lookup fails", func(t *testing.T) {
		repo, authors := new(MockRepository), new(MockAuthors)
		svc := NewService(repo, authors)

		authors.On("Exists", mock.Anything, authorID).Return(false, errors.New("connection reset"))

		_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{AuteurID: authorID})
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestUpdateBookChecksOnlyChangedAuthor(t *testing.T) {
	id, authorID := uuid.New(), uuid.New()
	stored := func() *model.Book {
		return &model.Book{ID: id, Titre: "Notre-Dame", AuteurID: authorID, Genre: "Fiction", NombrePages: 500}
	}

	t.Run("same author is not re-checked", func(t *testing.T) {
		repo, authors := new(MockRepository), new(MockAuthors)
		svc := NewService(repo, authors)

		repo.On("GetByID", mock.Anything, id).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

		pages := int64(940)
		book, err := svc.UpdateBook(context.Background(), id, model.UpdateBookRequest{AuteurID: &authorID, NombrePages: &pages})
		require.NoError(t, err)
		assert.Equal(t, int64(940), book.NombrePages)
		assert.Equal(t, "Notre-Dame", book.Titre)
		authors.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("new author must exist", func(t *testing.T) {
		repo, authors := new(MockRepository), new(MockAuthors)
		svc := NewService(repo, authors)
		other := uuid.New()

		repo.On("GetByID", mock.Anything, id).Return(stored(), nil)
		authors.On("Exists", mock.Anything, other).Return(false, nil)

		_, err := svc.UpdateBook(context.Background(), id, model.UpdateBookRequest{AuteurID: &other})
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestGetBookNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockAuthors))
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrBookNotFound)

	_, err := svc.GetBook(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Livre non trouvé", err.Error())
}

func TestDeleteBookTwice(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockAuthors))
	id := uuid.New()

	repo.On("Delete", mock.Anything, id).Return(nil).Once()
	repo.On("Delete", mock.Anything, id).Return(model.ErrBookNotFound).Once()

	require.NoError(t, svc.DeleteBook(context.Background(), id))
	assert.ErrorIs(t, svc.DeleteBook(context.Background(), id), apperror.ErrNotFound)
}

func TestListBooksByGenre(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockAuthors))
	spec := model.ListDefinition.Build(map[string][]string{"genre": {"Fantasy"}})

	require.Len(t, spec.Filters, 1)
	assert.Equal(t, query.Exact, spec.Filters[0].Kind)
	assert.Equal(t, "l.created_at", spec.SortField)
	assert.True(t, spec.SortDescending)

	repo.On("List", mock.Anything, spec).Return([]model.Book{{Titre: "Le Hobbit", Genre: "Fantasy"}}, int64(1), nil)

	books, total, err := svc.ListBooks(context.Background(), spec)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, int64(1), total)
}
