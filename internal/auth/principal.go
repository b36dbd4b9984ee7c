package auth

import (
	"imagehub/internal/rbac"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to a request. It is
// immutable for the lifetime of the request.
//
// A root principal carries no credential, user, or team identifiers; it is
// synthesized when the presented secret matches the configured root secret.
type Principal struct {
	CredentialID uuid.UUID
	UserID       uuid.UUID
	TeamID       uuid.UUID
	Role         rbac.Role
}

// IsRoot reports whether the principal was authenticated with the root
// secret. Stored credentials can never carry the root role.
func (p *Principal) IsRoot() bool {
	return p.Role == rbac.RoleRoot
}

func rootPrincipal() *Principal {
	return &Principal{Role: rbac.RoleRoot}
}
