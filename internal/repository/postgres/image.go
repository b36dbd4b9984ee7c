package postgres

import (
	"context"
	"fmt"
	"imagehub/internal/domain/image"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ImageRepository struct {
	db *DB
}

func NewImageRepository(db *DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, input image.CreateImageInput) (*image.Image, error) {
	query := `
		INSERT INTO images (id, team_id, user_id, title, description, filename, object_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, team_id, user_id, title, description, filename, object_key, content_type, size_bytes, created_at, updated_at
	`

	img := &image.Image{}
	err := r.db.Pool.QueryRow(ctx, query, input.ID, input.TeamID, input.UserID, input.Title, input.Description, input.Filename, input.ObjectKey, input.ContentType, input.SizeBytes).Scan(
		&img.ID, &img.TeamID, &img.UserID, &img.Title, &img.Description, &img.Filename, &img.ObjectKey, &img.ContentType, &img.SizeBytes, &img.CreatedAt, &img.UpdatedAt,
	)

	if err != nil {
		return nil, errFailedCreateImage(err)
	}

	return img, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*image.Image, error) {
	query := `
		SELECT id, team_id, user_id, title, description, filename, object_key, content_type, size_bytes, created_at, updated_at
		FROM images WHERE id = $1
	`

	img := &image.Image{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.TeamID, &img.UserID, &img.Title, &img.Description, &img.Filename, &img.ObjectKey, &img.ContentType, &img.SizeBytes, &img.CreatedAt, &img.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errImageNotFound)
		}
		return nil, errFailedGetImage(err)
	}

	return img, nil
}

func (r *ImageRepository) List(ctx context.Context, filter image.ListImagesFilter) ([]*image.Image, error) {
	query := `
		SELECT id, team_id, user_id, title, description, filename, object_key, content_type, size_bytes, created_at, updated_at
		FROM images WHERE team_id = $1
	`
	args := []interface{}{filter.TeamID}

	if filter.UserID != nil {
		query += " AND user_id = $2"
		args = append(args, *filter.UserID)
	}

	query += " ORDER BY created_at DESC LIMIT $" + fmt.Sprintf("%d", len(args)+1) + " OFFSET $" + fmt.Sprintf("%d", len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListImages(err)
	}
	defer rows.Close()

	var images []*image.Image
	for rows.Next() {
		img := &image.Image{}
		if err := rows.Scan(
			&img.ID, &img.TeamID, &img.UserID, &img.Title, &img.Description, &img.Filename, &img.ObjectKey, &img.ContentType, &img.SizeBytes, &img.CreatedAt, &img.UpdatedAt,
		); err != nil {
			return nil, errFailedScanImage(err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateImages(err)
	}

	return images, nil
}

func (r *ImageRepository) Update(ctx context.Context, id uuid.UUID, input image.UpdateImageInput) error {
	query := "UPDATE images SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Title != nil {
		argCount++
		query += fmt.Sprintf(", title = $%d", argCount)
		args = append(args, *input.Title)
	}

	if input.Description != nil {
		argCount++
		query += fmt.Sprintf(", description = $%d", argCount)
		args = append(args, *input.Description)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateImage(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errImageNotFound)
	}

	return nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM images WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteImage(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errImageNotFound)
	}

	return nil
}
