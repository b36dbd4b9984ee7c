package postgres

import (
	"context"
	"fmt"
	"imagehub/internal/domain/team"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, input team.CreateTeamInput) (*team.Team, error) {
	query := `
		INSERT INTO teams (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	t := &team.Team{}
	err := r.db.Pool.QueryRow(ctx, query, input.Name, input.Description).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Team name already exists")
		}
		return nil, errFailedCreateTeam(err)
	}

	return t, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	t := &team.Team{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTeamNotFound)
		}
		return nil, errFailedGetTeam(err)
	}

	return t, nil
}

func (r *TeamRepository) List(ctx context.Context, limit, offset int) ([]*team.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, errFailedListTeams(err)
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		t := &team.Team{}
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, errFailedScanTeam(err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateTeams(err)
	}

	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, id uuid.UUID, input team.UpdateTeamInput) error {
	query := "UPDATE teams SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}

	if input.Description != nil {
		argCount++
		query += fmt.Sprintf(", description = $%d", argCount)
		args = append(args, *input.Description)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("Team name already exists")
		}
		return errFailedUpdateTeam(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errTeamNotFound)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM teams WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteTeam(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errTeamNotFound)
	}

	return nil
}
