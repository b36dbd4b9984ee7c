package repository

import (
	"context"

	"imagehub/internal/domain/credential"
	"imagehub/internal/domain/image"
	"imagehub/internal/domain/user"

	"github.com/google/uuid"
)

// CredentialRepository defines the credential lookups the authentication and
// authorization engines depend on. Handlers declare their own wider store
// interfaces next to the code that uses them.
type CredentialRepository interface {
	GetByPrefix(ctx context.Context, prefix string) ([]*credential.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (*credential.Credential, error)
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the user lookup the authorization engine depends on.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// ImageRepository defines the image lookup the authorization engine depends on.
type ImageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*image.Image, error)
}
