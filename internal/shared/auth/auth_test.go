package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperror"
	"library-api/pkg/jwt"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) FindIdentity(ctx context.Context, id uuid.UUID) (*Identity, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

// ========================================
// AUTHORIZER
// ========================================

func TestDecideAdminAlwaysAllowed(t *testing.T) {
	admin := &Identity{ID: uuid.New(), IsAdmin: true}
	allowLists := [][]Role{
		nil,
		{},
		{RoleStandard},
		{RolePrivileged},
		{RoleAdmin},
		{RoleStaff, RoleAdmin},
		{Role("unknown")},
	}

	for _, allowed := range allowLists {
		d := Decide(admin, allowed...)
		assert.True(t, d.Allowed, "allowed=%v", allowed)
		assert.Equal(t, RoleAdmin, d.Role)
	}
}

func TestDecideRoleHierarchy(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{"standard on standard route", RoleStandard, []Role{RoleStandard}, true},
		{"standard on privileged route", RoleStandard, []Role{RolePrivileged, RoleAdmin}, false},
		{"standard on admin route", RoleStandard, []Role{RoleAdmin}, false},
		{"staff on privileged route", RoleStaff, []Role{RolePrivileged, RoleAdmin}, true},
		{"staff on standard route", RoleStaff, []Role{RoleStandard}, true},
		{"staff on admin route", RoleStaff, []Role{RoleAdmin}, false},
		{"standard with empty allow-list", RoleStandard, nil, false},
		{"unknown stored role counts as standard", Role("librarian"), []Role{RoleStandard}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(&Identity{ID: uuid.New(), Role: tc.role}, tc.allowed...)
			assert.Equal(t, tc.want, d.Allowed)
		})
	}
}

func TestAuthorizeErrors(t *testing.T) {
	err := Authorize(&Identity{Role: RoleStandard}, RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Contains(t, err.Error(), "standard")

	err = Authorize(nil, RoleStandard)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	assert.NoError(t, Authorize(&Identity{Role: RoleStaff}, RolePrivileged))
}

func TestNormalize(t *testing.T) {
	role, isAdmin := Normalize(RoleStaff, true)
	assert.Equal(t, RoleAdmin, role)
	assert.True(t, isAdmin)

	role, isAdmin = Normalize(RoleAdmin, false)
	assert.Equal(t, RoleAdmin, role)
	assert.True(t, isAdmin)

	role, isAdmin = Normalize("", false)
	assert.Equal(t, RoleStandard, role)
	assert.False(t, isAdmin)
}

// ========================================
// VERIFIER
// ========================================

func TestVerifyResolvesIssuedIdentity(t *testing.T) {
	tokens := jwt.NewManager("secret")
	users := new(mockLookup)
	verifier := NewVerifier(tokens, users)

	id := uuid.New()
	want := &Identity{ID: id, Username: "alice", Role: RoleStaff}
	users.On("FindIdentity", mock.Anything, id).Return(want, nil)

	token, _, err := tokens.GenerateToken(id, string(RoleStaff))
	require.NoError(t, err)

	got, err := verifier.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	users.AssertExpectations(t)
}

func TestVerifyRejectsBadHeaders(t *testing.T) {
	verifier := NewVerifier(jwt.NewManager("secret"), new(mockLookup))

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer a b", "bearer abc", "Bearer not-a-jwt"} {
		_, err := verifier.Verify(context.Background(), header)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized, "header=%q", header)
	}
}

func TestVerifyRejectsDeletedUser(t *testing.T) {
	tokens := jwt.NewManager("secret")
	users := new(mockLookup)
	id := uuid.New()
	users.On("FindIdentity", mock.Anything, id).Return(nil, ErrIdentityNotFound)

	token, _, err := tokens.GenerateToken(id, string(RoleStandard))
	require.NoError(t, err)

	_, err = NewVerifier(tokens, users).Verify(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestVerifySurfacesStoreFailure(t *testing.T) {
	tokens := jwt.NewManager("secret")
	users := new(mockLookup)
	id := uuid.New()
	users.On("FindIdentity", mock.Anything, id).Return(nil, errors.New("connection reset"))

	token, _, err := tokens.GenerateToken(id, string(RoleStandard))
	require.NoError(t, err)

	_, err = NewVerifier(tokens, users).Verify(context.Background(), "Bearer "+token)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := &Identity{ID: uuid.New()}
	got, ok := FromContext(WithIdentity(context.Background(), id))
	assert.True(t, ok)
	assert.Same(t, id, got)
}
