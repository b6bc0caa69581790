package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/services"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func setupTestAPI(t *testing.T) TaskAPI {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return New(services.NewTaskService(repo), nil)
}

// failingService fails every store operation with err while still running validation
type failingService struct {
	services.TaskService
	err error
}

func newFailingService(t *testing.T, err error) *failingService {
	repo, repoErr := sqlite.New(":memory:")
	require.NoError(t, repoErr)
	t.Cleanup(func() { repo.Close() })
	return &failingService{TaskService: services.NewTaskService(repo), err: err}
}

func (f *failingService) ListTasks(context.Context) ([]domain.Task, error) { return nil, f.err }
func (f *failingService) Ping(context.Context) error                       { return f.err }

func (f *failingService) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return f.TaskService.CreateTask(ctx, in)
	}
	return nil, f.err
}

func (f *failingService) UpdateTask(context.Context, domain.UpdateTaskInput) (*domain.Task, error) {
	return nil, f.err
}

func (f *failingService) DeleteTask(context.Context, string) error { return f.err }

func TestAPI_CRUD_Task(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	// Create
	created := api.Create(ctx, domain.CreateTaskInput{Title: "  Test Task "})
	require.Equal(t, http.StatusCreated, created.Status)
	require.True(t, created.Body.Success)
	task := created.Body.Data.(*domain.Task)
	assert.Equal(t, "Test Task", task.Title)
	assert.False(t, task.Completed)

	// List
	listed := api.List(ctx)
	assert.Equal(t, http.StatusOK, listed.Status)
	assert.Len(t, listed.Body.Data.([]domain.Task), 1)

	// Update
	updated := api.Update(ctx, domain.UpdateTaskInput{ID: task.ID, Completed: boolPtr(true)})
	require.Equal(t, http.StatusOK, updated.Status)
	got := updated.Body.Data.(*domain.Task)
	assert.True(t, got.Completed)
	assert.Equal(t, "Test Task", got.Title, "absent title is not overwritten")

	// Delete
	deleted := api.Delete(ctx, task.ID)
	assert.Equal(t, http.StatusOK, deleted.Status)
	assert.Equal(t, MsgDeleted, deleted.Body.Message)
	assert.Nil(t, deleted.Body.Data)

	listed = api.List(ctx)
	assert.Empty(t, listed.Body.Data.([]domain.Task))
}

func TestAPI_List_EmptyIsArray(t *testing.T) {
	api := setupTestAPI(t)

	data, err := json.Marshal(api.List(context.Background()).Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[]}`, string(data))
}

func TestAPI_Create_Validation(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"too long", strings.Repeat("a", 256)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Create(context.Background(), domain.CreateTaskInput{Title: tt.title})

			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.False(t, resp.Body.Success)
			assert.Equal(t, MsgInvalidInput, resp.Body.Error)
			require.Len(t, resp.Body.Details, 1)
			assert.Equal(t, "title", resp.Body.Details[0].Field)
			assert.NotEmpty(t, resp.Body.Details[0].Message)
		})
	}

	assert.Empty(t, api.List(context.Background()).Body.Data.([]domain.Task), "nothing persisted")
}

func TestAPI_Update_Errors(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name    string
		input   domain.UpdateTaskInput
		status  int
		message string
		field   string
	}{
		{"missing id", domain.UpdateTaskInput{Completed: boolPtr(true)}, http.StatusBadRequest, MsgInvalidInput, "id"},
		{"blank title", domain.UpdateTaskInput{ID: "x", Title: strPtr("")}, http.StatusBadRequest, MsgInvalidInput, "title"},
		{"no fields", domain.UpdateTaskInput{ID: "x"}, http.StatusBadRequest, MsgInvalidInput, "fields"},
		{"unknown id", domain.UpdateTaskInput{ID: "missing", Completed: boolPtr(true)}, http.StatusInternalServerError, MsgUpdateFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Update(context.Background(), tt.input)

			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Body.Error)
			if tt.field == "" {
				assert.Empty(t, resp.Body.Details)
				return
			}
			require.NotEmpty(t, resp.Body.Details)
			assert.Equal(t, tt.field, resp.Body.Details[0].Field)
		})
	}
}

func TestAPI_Delete_Errors(t *testing.T) {
	api := setupTestAPI(t)

	missing := api.Delete(context.Background(), "")
	assert.Equal(t, http.StatusBadRequest, missing.Status)
	assert.Equal(t, MsgIDRequired, missing.Body.Error)
	require.Len(t, missing.Body.Details, 1)
	assert.Equal(t, "id", missing.Body.Details[0].Field)

	unknown := api.Delete(context.Background(), "nope")
	assert.Equal(t, http.StatusInternalServerError, unknown.Status)
	assert.Equal(t, MsgDeleteFailed, unknown.Body.Error)
}

func TestAPI_StoreFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	cause := errors.NewDatabaseError("query", stderrors.New("disk on fire"))
	api := New(newFailingService(t, cause), logger)
	ctx := context.Background()

	tests := []struct {
		name    string
		resp    Response
		message string
	}{
		{"list", api.List(ctx), MsgFetchFailed},
		{"create", api.Create(ctx, domain.CreateTaskInput{Title: "ok"}), MsgCreateFailed},
		{"update", api.Update(ctx, domain.UpdateTaskInput{ID: "1", Completed: boolPtr(true)}), MsgUpdateFailed},
		{"delete", api.Delete(ctx, "1"), MsgDeleteFailed},
		{"health", api.Health(ctx), MsgStoreUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusInternalServerError, tt.resp.Status)
			assert.False(t, tt.resp.Body.Success)
			assert.Equal(t, tt.message, tt.resp.Body.Error)
			assert.Nil(t, tt.resp.Body.Data)

			body, err := json.Marshal(tt.resp.Body)
			require.NoError(t, err)
			assert.NotContains(t, string(body), "disk on fire", "causes are never exposed")
		})
	}

	assert.Contains(t, logs.String(), "disk on fire", "causes are logged")
}

func TestAPI_Create_ValidationStillWinsWhenStoreIsDown(t *testing.T) {
	api := New(newFailingService(t, stderrors.New("down")), nil)

	resp := api.Create(context.Background(), domain.CreateTaskInput{Title: " "})

	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestAPI_InvalidBody(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.InvalidBody(stderrors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, MsgInvalidInput, resp.Body.Error)
	require.Len(t, resp.Body.Details, 1)
	assert.Equal(t, "body", resp.Body.Details[0].Field)
}

func TestAPI_Health(t *testing.T) {
	resp := setupTestAPI(t).Health(context.Background())

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Body.Success)
}

func TestEnvelope_JSON(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: false, Error: MsgFetchFailed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Failed to fetch tasks"}`, string(data))
}
