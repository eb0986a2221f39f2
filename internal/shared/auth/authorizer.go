package auth

import (
	"fmt"

	"library-api/internal/shared/apperror"
)

// Decision is the outcome of an access check together with the role that
// was attributed to the caller.
type Decision struct {
	Allowed bool
	Role    Role
}

// Decide applies the role hierarchy. Admins pass every check, including an
// empty allow-list. Anyone else passes when their rank reaches the rank of
// at least one allowed role.
func Decide(identity *Identity, allowed ...Role) Decision {
	if identity == nil {
		return Decision{Allowed: false}
	}

	role := identity.EffectiveRole()
	if role == RoleAdmin {
		return Decision{Allowed: true, Role: role}
	}

	for _, r := range allowed {
		if r.IsValid() && role.Rank() >= r.Rank() {
			return Decision{Allowed: true, Role: role}
		}
	}

	return Decision{Allowed: false, Role: role}
}

// Authorize is Decide returning a Forbidden error on deny. A nil identity
// means authentication did not run and is reported as Unauthorized.
func Authorize(identity *Identity, allowed ...Role) error {
	if identity == nil {
		return apperror.Unauthorized(UnauthorizedMessage)
	}

	decision := Decide(identity, allowed...)
	if !decision.Allowed {
		return apperror.Forbidden(fmt.Sprintf("Le rôle %s n'est pas autorisé à accéder à cette ressource", decision.Role))
	}
	return nil
}
