package credential

import (
	"time"

	"imagehub/internal/rbac"

	"github.com/google/uuid"
)

// Credential is the stored form of an issued API key. The raw secret is
// returned to the caller exactly once at issuance and never persisted; only
// the salted PBKDF2 hash and the indexed prefix survive.
type Credential struct {
	ID         uuid.UUID
	TeamID     uuid.UUID
	UserID     uuid.UUID
	Name       string
	KeyPrefix  string
	KeyHash    string
	KeySalt    string
	Role       rbac.Role
	ExpiresAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the credential has an expiry in the past.
// A nil ExpiresAt means the credential never expires.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

type CreateCredentialInput struct {
	TeamID    uuid.UUID
	UserID    uuid.UUID
	Name      string
	KeyPrefix string
	KeyHash   string
	KeySalt   string
	Role      rbac.Role
	ExpiresAt *time.Time
}

type UpdateCredentialInput struct {
	Name      *string
	ExpiresAt *time.Time
}
