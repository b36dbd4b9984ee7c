package postgres

import (
	"context"
	"imagehub/internal/domain/credential"
	apperrors "imagehub/pkg/errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CredentialRepository struct {
	db *DB
}

func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, input credential.CreateCredentialInput) (*credential.Credential, error) {
	query := `
		INSERT INTO api_keys (team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at, last_used_at, created_at
	`

	c := &credential.Credential{}
	err := r.db.Pool.QueryRow(ctx, query, input.TeamID, input.UserID, input.Name, input.KeyPrefix, input.KeyHash, input.KeySalt, input.Role, input.ExpiresAt).Scan(
		&c.ID, &c.TeamID, &c.UserID, &c.Name, &c.KeyPrefix, &c.KeyHash, &c.KeySalt, &c.Role, &c.ExpiresAt, &c.LastUsedAt, &c.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateAPIKey(err)
	}

	return c, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*credential.Credential, error) {
	query := `
		SELECT id, team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at, last_used_at, created_at
		FROM api_keys WHERE id = $1
	`

	c := &credential.Credential{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TeamID, &c.UserID, &c.Name, &c.KeyPrefix, &c.KeyHash, &c.KeySalt, &c.Role, &c.ExpiresAt, &c.LastUsedAt, &c.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAPIKeyNotFound)
		}
		return nil, errFailedGetAPIKey(err)
	}

	return c, nil
}

// GetByPrefix returns every credential sharing the prefix. Prefixes are not
// unique, so callers must verify the presented secret against each candidate.
func (r *CredentialRepository) GetByPrefix(ctx context.Context, prefix string) ([]*credential.Credential, error) {
	if prefix == "" {
		return nil, apperrors.InvalidInput(errPrefixEmpty)
	}

	query := `
		SELECT id, team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at, last_used_at, created_at
		FROM api_keys WHERE key_prefix = $1
	`

	rows, err := r.db.Pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, errFailedListAPIKeys(err)
	}
	defer rows.Close()

	var creds []*credential.Credential
	for rows.Next() {
		c := &credential.Credential{}
		if err := rows.Scan(
			&c.ID, &c.TeamID, &c.UserID, &c.Name, &c.KeyPrefix, &c.KeyHash, &c.KeySalt, &c.Role, &c.ExpiresAt, &c.LastUsedAt, &c.CreatedAt,
		); err != nil {
			return nil, errFailedScanAPIKey(err)
		}
		creds = append(creds, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateAPIKeys(err)
	}

	return creds, nil
}

func (r *CredentialRepository) ListByTeamID(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*credential.Credential, error) {
	query := `
		SELECT id, team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at, last_used_at, created_at
		FROM api_keys WHERE team_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, teamID, limit, offset)
	if err != nil {
		return nil, errFailedListAPIKeys(err)
	}
	defer rows.Close()

	var creds []*credential.Credential
	for rows.Next() {
		c := &credential.Credential{}
		if err := rows.Scan(
			&c.ID, &c.TeamID, &c.UserID, &c.Name, &c.KeyPrefix, &c.KeyHash, &c.KeySalt, &c.Role, &c.ExpiresAt, &c.LastUsedAt, &c.CreatedAt,
		); err != nil {
			return nil, errFailedScanAPIKey(err)
		}
		creds = append(creds, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateAPIKeys(err)
	}

	return creds, nil
}

func (r *CredentialRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*credential.Credential, error) {
	query := `
		SELECT id, team_id, user_id, name, key_prefix, key_hash, key_salt, role, expires_at, last_used_at, created_at
		FROM api_keys WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, errFailedListAPIKeys(err)
	}
	defer rows.Close()

	var creds []*credential.Credential
	for rows.Next() {
		c := &credential.Credential{}
		if err := rows.Scan(
			&c.ID, &c.TeamID, &c.UserID, &c.Name, &c.KeyPrefix, &c.KeyHash, &c.KeySalt, &c.Role, &c.ExpiresAt, &c.LastUsedAt, &c.CreatedAt,
		); err != nil {
			return nil, errFailedScanAPIKey(err)
		}
		creds = append(creds, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateAPIKeys(err)
	}

	return creds, nil
}

func (r *CredentialRepository) Update(ctx context.Context, id uuid.UUID, input credential.UpdateCredentialInput) error {
	query := "UPDATE api_keys SET name = COALESCE($2, name), expires_at = COALESCE($3, expires_at) WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id, input.Name, input.ExpiresAt)
	if err != nil {
		return errFailedUpdateAPIKey(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errAPIKeyNotFound)
	}

	return nil
}

func (r *CredentialRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE api_keys SET last_used_at = $1 WHERE id = $2"
	_, err := r.db.Pool.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return errFailedUpdateLastUsed(err)
	}

	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM api_keys WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteAPIKey(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errAPIKeyNotFound)
	}

	return nil
}
