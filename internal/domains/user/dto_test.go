package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperror"
	"library-api/internal/shared/auth"
)

func TestCreateSchemaNormalizesEmail(t *testing.T) {
	p, err := CreateSchema.Validate(map[string]interface{}{
		"nomUtilisateur": "  lecteur ",
		"email":          " Lecteur@Example.COM ",
		"motDePasse":     " pass word ",
	})
	require.NoError(t, err)

	req := NewRegisterRequest(p)
	assert.Equal(t, "lecteur", req.NomUtilisateur)
	assert.Equal(t, "lecteur@example.com", req.Email)
	assert.Equal(t, " pass word ", req.MotDePasse)
	assert.Nil(t, req.IsAdmin)
	assert.Nil(t, req.Role)
}

func TestCreateSchemaShortUsername(t *testing.T) {
	_, err := CreateSchema.Validate(map[string]interface{}{
		"nomUtilisateur": "ab",
		"email":          "x@y.fr",
		"motDePasse":     "secret",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Equal(t, "Le nom d'utilisateur doit contenir au moins 3 caractères", err.Error())
}

func TestCreateSchemaRejectsUnknownRole(t *testing.T) {
	_, err := CreateSchema.Validate(map[string]interface{}{
		"nomUtilisateur": "lecteur",
		"email":          "lecteur@example.com",
		"motDePasse":     "secret",
		"role":           "root",
	})
	require.Error(t, err)
	assert.Equal(t, "Le rôle doit être l'un des suivants: standard, staff, admin", err.Error())
}

func TestResolveAccess(t *testing.T) {
	staff := &User{Role: auth.RoleStaff}
	admin := &User{Role: auth.RoleAdmin, IsAdmin: true}
	yes, no := true, false
	toStaff := auth.RoleStaff

	role, isAdmin := UpdateUserRequest{IsAdmin: &yes}.ResolveAccess(staff)
	assert.Equal(t, auth.RoleAdmin, role)
	assert.True(t, isAdmin)

	role, isAdmin = UpdateUserRequest{IsAdmin: &no}.ResolveAccess(admin)
	assert.Equal(t, auth.RoleStandard, role)
	assert.False(t, isAdmin)

	role, isAdmin = UpdateUserRequest{Role: &toStaff}.ResolveAccess(admin)
	assert.Equal(t, auth.RoleStaff, role)
	assert.False(t, isAdmin)

	assert.False(t, UpdateUserRequest{IsAdmin: &no}.TouchesAccess(staff))
	assert.True(t, UpdateUserRequest{Role: &toStaff}.TouchesAccess(admin))
}
