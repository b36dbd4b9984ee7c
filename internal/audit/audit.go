package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const logTimeout = 2 * time.Second

// Status classifies the outcome of a recorded request.
type Status string

const (
	StatusSuccess Status = "success"
	StatusDenied  Status = "denied"
	StatusFailure Status = "failure"
)

// Event is one audit trail entry. Every request that reaches the service
// produces one, including requests rejected before they reach a handler.
type Event struct {
	ID           uuid.UUID
	ActorID      *uuid.UUID
	ActorRole    string
	Action       string
	Path         string
	ResourceType string
	ResourceID   string
	Status       Status
	StatusCode   int
	Reason       string
	IPAddress    string
	UserAgent    string
	RequestID    string
	DurationMS   int64
	CreatedAt    time.Time
}

// Logger persists audit events.
type Logger struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewLogger(pool *pgxpool.Pool, log zerolog.Logger) *Logger {
	return &Logger{
		pool: pool,
		log:  log.With().Str("component", "audit").Logger(),
	}
}

// Log records a single audit event.
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_events (
			id, actor_id, actor_role, action, path, resource_type, resource_id,
			status, status_code, reason, ip_address, user_agent, request_id, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := l.pool.Exec(ctx, query,
		event.ID,
		event.ActorID,
		event.ActorRole,
		event.Action,
		event.Path,
		event.ResourceType,
		event.ResourceID,
		event.Status,
		event.StatusCode,
		event.Reason,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		event.DurationMS,
		event.CreatedAt,
	)

	return err
}

// LogAsync records the event on a background goroutine so responses never
// block on the audit store. Write failures are logged and dropped.
func (l *Logger) LogAsync(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			l.log.Error().Err(err).Str("path", event.Path).Msg("audit write failed")
		}
	}()
}

// QueryFilter narrows a trail query. Nil fields are ignored.
type QueryFilter struct {
	ActorID      *uuid.UUID
	ResourceType *string
	Action       *string
	Status       *Status
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// Query retrieves audit events, newest first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query := `
		SELECT id, actor_id, actor_role, action, path, resource_type, resource_id,
		       status, status_code, reason, ip_address, user_agent, request_id, duration_ms, created_at
		FROM audit_events
		WHERE 1=1
	`
	args := []any{}
	argCount := 1

	if filter.ActorID != nil {
		query += fmt.Sprintf(" AND actor_id = $%d", argCount)
		args = append(args, filter.ActorID)
		argCount++
	}

	if filter.ResourceType != nil {
		query += fmt.Sprintf(" AND resource_type = $%d", argCount)
		args = append(args, filter.ResourceType)
		argCount++
	}

	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argCount)
		args = append(args, filter.Action)
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filter.From)
		argCount++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, filter.To)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	} else {
		query += " LIMIT 100"
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}

		err := rows.Scan(
			&event.ID,
			&event.ActorID,
			&event.ActorRole,
			&event.Action,
			&event.Path,
			&event.ResourceType,
			&event.ResourceID,
			&event.Status,
			&event.StatusCode,
			&event.Reason,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&event.DurationMS,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, rows.Err()
}
