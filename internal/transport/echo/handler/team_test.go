package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imagehub/internal/domain/team"
	"imagehub/internal/infra/cache"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamStore struct {
	teams map[uuid.UUID]*team.Team
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[uuid.UUID]*team.Team)}
}

func (f *fakeTeamStore) Create(_ context.Context, input team.CreateTeamInput) (*team.Team, error) {
	for _, t := range f.teams {
		if t.Name == input.Name {
			return nil, apperrors.Conflict("Team name already exists")
		}
	}
	t := &team.Team{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.teams[t.ID] = t
	return t, nil
}

func (f *fakeTeamStore) GetByID(_ context.Context, id uuid.UUID) (*team.Team, error) {
	if t, ok := f.teams[id]; ok {
		return t, nil
	}
	return nil, apperrors.NotFound("Team not found")
}

func (f *fakeTeamStore) List(_ context.Context, _, _ int) ([]*team.Team, error) {
	out := make([]*team.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeamStore) Update(_ context.Context, id uuid.UUID, input team.UpdateTeamInput) error {
	t, ok := f.teams[id]
	if !ok {
		return apperrors.NotFound("Team not found")
	}
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	return nil
}

type fakeTransactionExecutor struct {
	deletedUsers []uuid.UUID
	deletedTeams []uuid.UUID
	objectKeys   []string
	err          error
}

func (f *fakeTransactionExecutor) DeleteUserTransaction(_ context.Context, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeTransactionExecutor) DeleteTeamTransaction(_ context.Context, teamID uuid.UUID) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletedTeams = append(f.deletedTeams, teamID)
	return f.objectKeys, nil
}

type fakeObjectStore struct {
	uploaded []string
	deleted  []string
}

func (f *fakeObjectStore) Upload(_ io.Reader, objectKey, _ string) error {
	f.uploaded = append(f.uploaded, objectKey)
	return nil
}

func (f *fakeObjectStore) PresignDownload(objectKey, _ string, _ *cache.URLCache) (string, error) {
	return "https://signed.example/" + objectKey, nil
}

func (f *fakeObjectStore) Delete(objectKey string, _ *cache.URLCache) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newTeamContext(t *testing.T, method, body string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return c, rec
}

func newTestTeamHandler(teams *fakeTeamStore, tx *fakeTransactionExecutor, objects *fakeObjectStore) *TeamHandler {
	return NewTeamHandler(teams, tx, objects, cache.NewURLCache(), 50)
}

func TestCreateTeam(t *testing.T) {
	teams := newFakeTeamStore()
	h := newTestTeamHandler(teams, &fakeTransactionExecutor{}, &fakeObjectStore{})

	c, rec := newTeamContext(t, http.MethodPost, `{"name":"  platform  ","description":"infra team"}`, nil)
	require.NoError(t, h.CreateTeam(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "platform", resp.Name, "name must be trimmed")
	assert.Equal(t, "infra team", resp.Description)

	c, _ = newTeamContext(t, http.MethodPost, `{"name":"platform"}`, nil)
	assert.ErrorIs(t, h.CreateTeam(c), apperrors.ErrConflict)
}

func TestCreateTeamRejectsEmptyName(t *testing.T) {
	h := newTestTeamHandler(newFakeTeamStore(), &fakeTransactionExecutor{}, &fakeObjectStore{})

	c, _ := newTeamContext(t, http.MethodPost, `{"name":"   "}`, nil)
	assert.ErrorIs(t, h.CreateTeam(c), apperrors.ErrBadRequest)
}

func TestCreateTeamRejectsUnknownFields(t *testing.T) {
	h := newTestTeamHandler(newFakeTeamStore(), &fakeTransactionExecutor{}, &fakeObjectStore{})

	c, _ := newTeamContext(t, http.MethodPost, `{"name":"ok","owner":"nobody"}`, nil)
	assert.Error(t, h.CreateTeam(c))
}

func TestGetTeamInvalidID(t *testing.T) {
	h := newTestTeamHandler(newFakeTeamStore(), &fakeTransactionExecutor{}, &fakeObjectStore{})

	c, _ := newTeamContext(t, http.MethodGet, "", map[string]string{paramTeamID: "not-a-uuid"})
	assert.ErrorIs(t, h.GetTeam(c), apperrors.ErrBadRequest)
}

func TestGetTeamNotFound(t *testing.T) {
	h := newTestTeamHandler(newFakeTeamStore(), &fakeTransactionExecutor{}, &fakeObjectStore{})

	c, _ := newTeamContext(t, http.MethodGet, "", map[string]string{paramTeamID: uuid.NewString()})
	assert.ErrorIs(t, h.GetTeam(c), apperrors.ErrNotFound)
}

func TestDeleteTeamCleansUpBlobs(t *testing.T) {
	teamID := uuid.New()
	tx := &fakeTransactionExecutor{objectKeys: []string{"t/a.png", "t/b.png"}}
	objects := &fakeObjectStore{}
	h := newTestTeamHandler(newFakeTeamStore(), tx, objects)

	c, rec := newTeamContext(t, http.MethodDelete, "", map[string]string{paramTeamID: teamID.String()})
	require.NoError(t, h.DeleteTeam(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{teamID}, tx.deletedTeams)
	assert.Equal(t, []string{"t/a.png", "t/b.png"}, objects.deleted)
}

func TestDeleteTeamRefusedWhileUsersRemain(t *testing.T) {
	tx := &fakeTransactionExecutor{err: apperrors.BadRequest("Cannot delete team with active users. Reassign or delete users first.")}
	objects := &fakeObjectStore{}
	h := newTestTeamHandler(newFakeTeamStore(), tx, objects)

	c, _ := newTeamContext(t, http.MethodDelete, "", map[string]string{paramTeamID: uuid.NewString()})
	assert.ErrorIs(t, h.DeleteTeam(c), apperrors.ErrBadRequest)
	assert.Empty(t, objects.deleted, "no blob may be touched when the delete is refused")
}

func TestListTeamsInvalidPagination(t *testing.T) {
	h := newTestTeamHandler(newFakeTeamStore(), &fakeTransactionExecutor{}, &fakeObjectStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=-5", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.ErrorIs(t, h.ListTeams(c), apperrors.ErrBadRequest)
}
