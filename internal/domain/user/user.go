package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a team member record. Users carry no role of their own; privilege
// is a property of the API keys issued to them.
type User struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserInput struct {
	TeamID   uuid.UUID
	Username string
	Email    string
}

type UpdateUserInput struct {
	Username *string
	Email    *string
}
