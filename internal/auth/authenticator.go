package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"imagehub/internal/repository"
	apperrors "imagehub/pkg/errors"

	"github.com/rs/zerolog"
)

// Config carries the authentication parameters. It is injected at
// construction; nothing in this package reads process-global state.
type Config struct {
	// RootSecret is compared directly against presented secrets and, on
	// match, yields the synthetic root principal.
	RootSecret string

	// PrefixLength is the number of leading secret bytes stored for the
	// indexed candidate lookup.
	PrefixLength int

	// Iterations is the PBKDF2 work factor used both at issuance and at
	// verification.
	Iterations int
}

func (c Config) withDefaults() Config {
	if c.PrefixLength <= 0 {
		c.PrefixLength = DefaultPrefixLength
	}
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
	return c
}

func (c Config) validate() error {
	if c.RootSecret == "" {
		return errors.New(msgRootSecretRequired)
	}
	if c.PrefixLength <= len(SecretPrefix) {
		return fmt.Errorf("prefix length %d does not cover the %q marker", c.PrefixLength, SecretPrefix)
	}
	if c.Iterations < MinIterations {
		return fmt.Errorf("iteration count %d below minimum %d", c.Iterations, MinIterations)
	}
	return nil
}

// Authenticator resolves presented secrets into principals.
type Authenticator struct {
	cfg    Config
	creds  repository.CredentialRepository
	logger zerolog.Logger
}

func NewAuthenticator(cfg Config, creds repository.CredentialRepository, logger zerolog.Logger) (*Authenticator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &Authenticator{
		cfg:    cfg,
		creds:  creds,
		logger: logger,
	}, nil
}

// PrefixLength exposes the configured lookup prefix length for issuance.
func (a *Authenticator) PrefixLength() int { return a.cfg.PrefixLength }

// Iterations exposes the configured PBKDF2 work factor for issuance.
func (a *Authenticator) Iterations() int { return a.cfg.Iterations }

// Authenticate resolves a presented secret into a Principal.
//
// The root secret is matched by direct comparison and never consults the
// store. All other secrets are narrowed by their stored prefix, then each
// candidate's hash is recomputed with the candidate's own salt and compared
// in constant time. Store failures surface as dependency errors, never as an
// authentication verdict.
func (a *Authenticator) Authenticate(ctx context.Context, secret string) (*Principal, error) {
	if secret == "" {
		return nil, apperrors.Unauthenticated(msgMissingAPIKey)
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(a.cfg.RootSecret)) == 1 {
		return rootPrincipal(), nil
	}

	if len(secret) < a.cfg.PrefixLength {
		return nil, apperrors.Unauthenticated(msgInvalidAPIKey)
	}

	candidates, err := a.creds.GetByPrefix(ctx, secret[:a.cfg.PrefixLength])
	if err != nil {
		a.logger.Error().Err(err).Msg("credential lookup failed")
		return nil, apperrors.Unavailable(msgCredentialLookup)
	}

	for _, cand := range candidates {
		computed := DeriveHash(secret, cand.KeySalt, a.cfg.Iterations)
		if !constantTimeEquals(computed, cand.KeyHash) {
			continue
		}

		if cand.Expired(time.Now()) {
			return nil, apperrors.Expired(msgAPIKeyExpired)
		}

		return &Principal{
			CredentialID: cand.ID,
			UserID:       cand.UserID,
			TeamID:       cand.TeamID,
			Role:         cand.Role,
		}, nil
	}

	return nil, apperrors.Unauthenticated(msgInvalidAPIKey)
}
