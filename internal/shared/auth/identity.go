package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role is the persisted access tier of a user.
// Hierarchy: admin > staff > standard
type Role string

const (
	RoleStandard Role = "standard"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"

	// RolePrivileged is the route-level marker for "staff or above"
	RolePrivileged = RoleStaff
)

var roleRank = map[Role]int{
	RoleStandard: 1,
	RoleStaff:    2,
	RoleAdmin:    3,
}

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleStandard, RoleStaff, RoleAdmin}
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Rank orders roles; unknown roles rank below standard
func (r Role) Rank() int {
	return roleRank[r]
}

// Normalize keeps isAdmin and role consistent: isAdmin wins upward,
// and an admin role implies isAdmin.
func Normalize(role Role, isAdmin bool) (Role, bool) {
	if isAdmin {
		return RoleAdmin, true
	}
	if !role.IsValid() {
		role = RoleStandard
	}
	return role, role == RoleAdmin
}

// Identity is the authenticated caller of one request
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"nomUtilisateur"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	IsAdmin  bool      `json:"isAdmin"`
}

// EffectiveRole is the role used for authorization decisions
func (i *Identity) EffectiveRole() Role {
	role, _ := Normalize(i.Role, i.IsAdmin)
	return role
}

type identityKey struct{}

// WithIdentity stores the identity on a request context
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity resolved for this request, if any
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
