package postgres

import (
	"context"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
)

// DeleteUserTransaction removes a user and every credential issued to them
// in a single transaction.
func (db *DB) DeleteUserTransaction(ctx context.Context, userID uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM api_keys WHERE user_id = $1", userID); err != nil {
		return errFailedDeleteUserAPIKeys(err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return errFailedDeleteUser(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return errFailedCommitTransaction(err)
	}

	return nil
}

// DeleteTeamTransaction removes a team together with its image rows and
// returns the object keys of the removed images so the caller can clean up
// the backing blobs. Teams that still have users are refused; the count
// check runs inside the transaction so a concurrent user insert cannot
// slip past it.
func (db *DB) DeleteTeamTransaction(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	var userCount int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE team_id = $1", teamID).Scan(&userCount); err != nil {
		return nil, errFailedCountUsers(err)
	}

	if userCount > 0 {
		return nil, apperrors.BadRequest(errTeamHasUsers)
	}

	rows, err := tx.Query(ctx, "DELETE FROM images WHERE team_id = $1 RETURNING object_key", teamID)
	if err != nil {
		return nil, errFailedDeleteTeamImages(err)
	}

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, errFailedScanImage(err)
		}
		keys = append(keys, key)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, errIterateImages(err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM teams WHERE id = $1", teamID)
	if err != nil {
		return nil, errFailedDeleteTeam(err)
	}

	if result.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errTeamNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return keys, nil
}
