package team

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTeamInput struct {
	Name        string
	Description string
}

type UpdateTeamInput struct {
	Name        *string
	Description *string
}
