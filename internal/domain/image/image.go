package image

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	UserID      uuid.UUID // uploader; zero when uploaded with the root key
	Title       string
	Description string
	Filename    string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateImageInput carries the caller-chosen ID so the object key, which
// embeds it, can be built before the row exists.
type CreateImageInput struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Filename    string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
}

type UpdateImageInput struct {
	Title       *string
	Description *string
}

type ListImagesFilter struct {
	TeamID uuid.UUID
	UserID *uuid.UUID
	Limit  int
	Offset int
}
