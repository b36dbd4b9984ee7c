package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"imagehub/internal/domain/credential"
	"imagehub/internal/rbac"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRootSecret = "root-secret-for-tests-0123456789"

type fakeCredentialRepo struct {
	byPrefix map[string][]*credential.Credential
	err      error
	lookups  int
	lastUsed []uuid.UUID
}

func (f *fakeCredentialRepo) GetByPrefix(_ context.Context, prefix string) ([]*credential.Credential, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.byPrefix[prefix], nil
}

func (f *fakeCredentialRepo) GetByID(_ context.Context, id uuid.UUID) (*credential.Credential, error) {
	for _, creds := range f.byPrefix {
		for _, c := range creds {
			if c.ID == id {
				return c, nil
			}
		}
	}
	return nil, apperrors.NotFound("API key not found")
}

func (f *fakeCredentialRepo) UpdateLastUsed(_ context.Context, id uuid.UUID) error {
	f.lastUsed = append(f.lastUsed, id)
	return nil
}

// issueTestCredential builds a stored credential plus its raw secret the same
// way the issuance handler does.
func issueTestCredential(t *testing.T, role rbac.Role, expiresAt *time.Time) (*credential.Credential, string) {
	t.Helper()

	secret, err := GenerateSecret()
	require.NoError(t, err)
	salt, err := GenerateSalt()
	require.NoError(t, err)

	return &credential.Credential{
		ID:        uuid.New(),
		TeamID:    uuid.New(),
		UserID:    uuid.New(),
		Name:      "test key",
		KeyPrefix: SecretPrefixOf(secret, DefaultPrefixLength),
		KeyHash:   DeriveHash(secret, salt, MinIterations),
		KeySalt:   salt,
		Role:      role,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, secret
}

func newTestAuthenticator(t *testing.T, repo *fakeCredentialRepo) *Authenticator {
	t.Helper()

	a, err := NewAuthenticator(Config{RootSecret: testRootSecret}, repo, zerolog.Nop())
	require.NoError(t, err)
	return a
}

func TestNewAuthenticatorConfig(t *testing.T) {
	repo := &fakeCredentialRepo{}

	_, err := NewAuthenticator(Config{}, repo, zerolog.Nop())
	assert.Error(t, err, "missing root secret must be rejected")

	_, err = NewAuthenticator(Config{RootSecret: testRootSecret, Iterations: 1000}, repo, zerolog.Nop())
	assert.Error(t, err, "iteration counts below the floor must be rejected")

	_, err = NewAuthenticator(Config{RootSecret: testRootSecret, PrefixLength: 3}, repo, zerolog.Nop())
	assert.Error(t, err, "prefix must extend past the sk_ marker")

	a, err := NewAuthenticator(Config{RootSecret: testRootSecret}, repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefixLength, a.PrefixLength())
	assert.Equal(t, DefaultIterations, a.Iterations())
}

func TestAuthenticateMissingSecret(t *testing.T) {
	a := newTestAuthenticator(t, &fakeCredentialRepo{})

	_, err := a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticateRootSecret(t *testing.T) {
	repo := &fakeCredentialRepo{}
	a := newTestAuthenticator(t, repo)

	p, err := a.Authenticate(context.Background(), testRootSecret)
	require.NoError(t, err)

	assert.True(t, p.IsRoot())
	assert.Equal(t, rbac.RoleRoot, p.Role)
	assert.Equal(t, uuid.Nil, p.UserID)
	assert.Equal(t, uuid.Nil, p.TeamID)
	assert.Zero(t, repo.lookups, "root authentication must not touch the store")
}

func TestAuthenticateValidSecret(t *testing.T) {
	stored, secret := issueTestCredential(t, rbac.RoleAdmin, nil)
	repo := &fakeCredentialRepo{byPrefix: map[string][]*credential.Credential{
		stored.KeyPrefix: {stored},
	}}
	a := newTestAuthenticator(t, repo)

	p, err := a.Authenticate(context.Background(), secret)
	require.NoError(t, err)

	assert.False(t, p.IsRoot())
	assert.Equal(t, stored.ID, p.CredentialID)
	assert.Equal(t, stored.UserID, p.UserID)
	assert.Equal(t, stored.TeamID, p.TeamID)
	assert.Equal(t, rbac.RoleAdmin, p.Role)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	stored, secret := issueTestCredential(t, rbac.RoleUser, nil)
	repo := &fakeCredentialRepo{byPrefix: map[string][]*credential.Credential{
		stored.KeyPrefix: {stored},
	}}
	a := newTestAuthenticator(t, repo)

	tests := []struct {
		name   string
		secret string
	}{
		{"unknown prefix", "sk_ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ"},
		{"shorter than prefix", secret[:DefaultPrefixLength-1]},
		{"tampered suffix with matching prefix", secret[:len(secret)-1] + "!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), tt.secret)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}

func TestAuthenticatePrefixCollision(t *testing.T) {
	first, firstSecret := issueTestCredential(t, rbac.RoleUser, nil)

	// A second credential sharing the stored prefix but hashed from a
	// different secret. Only the matching hash may win.
	otherSecret, err := GenerateSecret()
	require.NoError(t, err)
	otherSalt, err := GenerateSalt()
	require.NoError(t, err)
	second := &credential.Credential{
		ID:        uuid.New(),
		TeamID:    uuid.New(),
		UserID:    uuid.New(),
		KeyPrefix: first.KeyPrefix,
		KeyHash:   DeriveHash(otherSecret, otherSalt, MinIterations),
		KeySalt:   otherSalt,
		Role:      rbac.RoleAdmin,
	}

	repo := &fakeCredentialRepo{byPrefix: map[string][]*credential.Credential{
		first.KeyPrefix: {second, first},
	}}
	a := newTestAuthenticator(t, repo)

	p, err := a.Authenticate(context.Background(), firstSecret)
	require.NoError(t, err)
	assert.Equal(t, first.ID, p.CredentialID)
}

func TestAuthenticateExpiredCredential(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	stored, secret := issueTestCredential(t, rbac.RoleUser, &expiry)
	repo := &fakeCredentialRepo{byPrefix: map[string][]*credential.Credential{
		stored.KeyPrefix: {stored},
	}}
	a := newTestAuthenticator(t, repo)

	_, err := a.Authenticate(context.Background(), secret)
	assert.ErrorIs(t, err, apperrors.ErrExpired)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	repo := &fakeCredentialRepo{err: errors.New("connection refused")}
	a := newTestAuthenticator(t, repo)

	_, err := a.Authenticate(context.Background(), "sk_AbCdEfGh12345")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable,
		"store failures must not be reported as an authentication verdict")
}
