package handler

import (
	"net/http"
	"time"

	"imagehub/internal/audit"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	trail    AuditQuerier
	pageSize int
}

func NewAuditHandler(trail AuditQuerier, pageSize int) *AuditHandler {
	return &AuditHandler{
		trail:    trail,
		pageSize: pageSize,
	}
}

type AuditEventResponse struct {
	ID           string    `json:"id"`
	ActorID      string    `json:"actor_id,omitempty"`
	ActorRole    string    `json:"actor_role"`
	Action       string    `json:"action"`
	Path         string    `json:"path"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Status       string    `json:"status"`
	StatusCode   int       `json:"status_code"`
	Reason       string    `json:"reason,omitempty"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	RequestID    string    `json:"request_id"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	filter := audit.QueryFilter{
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.QueryParam(queryParamUserID); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.BadRequest(msgInvalidUserID)
		}
		filter.ActorID = &actorID
	}
	if raw := c.QueryParam(queryParamResourceType); raw != "" {
		filter.ResourceType = &raw
	}
	if raw := c.QueryParam(queryParamAction); raw != "" {
		filter.Action = &raw
	}
	if raw := c.QueryParam(queryParamStatus); raw != "" {
		status := audit.Status(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam(queryParamFromDate); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.BadRequest(msgInvalidDateFilter)
		}
		filter.From = &from
	}
	if raw := c.QueryParam(queryParamToDate); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.BadRequest(msgInvalidDateFilter)
		}
		filter.To = &to
	}

	events, err := h.trail.Query(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuditEventResponses(events))
}

func toAuditEventResponse(evt *audit.Event) AuditEventResponse {
	resp := AuditEventResponse{
		ID:           evt.ID.String(),
		ActorRole:    evt.ActorRole,
		Action:       evt.Action,
		Path:         evt.Path,
		ResourceType: evt.ResourceType,
		ResourceID:   evt.ResourceID,
		Status:       string(evt.Status),
		StatusCode:   evt.StatusCode,
		Reason:       evt.Reason,
		IPAddress:    evt.IPAddress,
		UserAgent:    evt.UserAgent,
		RequestID:    evt.RequestID,
		DurationMS:   evt.DurationMS,
		CreatedAt:    evt.CreatedAt,
	}
	if evt.ActorID != nil {
		resp.ActorID = evt.ActorID.String()
	}
	return resp
}

func toAuditEventResponses(events []*audit.Event) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, evt := range events {
		out = append(out, toAuditEventResponse(evt))
	}
	return out
}
