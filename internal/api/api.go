package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// TaskAPI maps task service outcomes onto envelopes and status codes. It is
// transport-agnostic; the HTTP router only decodes requests and writes responses.
type TaskAPI interface {
	List(ctx context.Context) Response
	Create(ctx context.Context, in domain.CreateTaskInput) Response
	Update(ctx context.Context, in domain.UpdateTaskInput) Response
	Delete(ctx context.Context, id string) Response

	// InvalidBody answers a request whose JSON body could not be decoded
	InvalidBody(err error) Response

	// Health reports whether the store is reachable
	Health(ctx context.Context) Response
}

type apiImpl struct {
	tasks  services.TaskService
	logger *slog.Logger
}

// New creates a new API instance. A nil logger discards output.
func New(tasks services.TaskService, logger *slog.Logger) TaskAPI {
	if logger == nil {
		logger = logging.Discard()
	}
	return &apiImpl{tasks: tasks, logger: logger}
}

func (a *apiImpl) List(ctx context.Context) Response {
	tasks, err := a.tasks.ListTasks(ctx)
	if err != nil {
		a.logFailure(ctx, "list tasks", err)
		return serverError(MsgFetchFailed)
	}
	return success(http.StatusOK, tasks)
}

func (a *apiImpl) Create(ctx context.Context, in domain.CreateTaskInput) Response {
	task, err := a.tasks.CreateTask(ctx, in)
	if err != nil {
		if isClientError(err) {
			return failure(http.StatusBadRequest, MsgInvalidInput, fieldErrors(err))
		}
		a.logFailure(ctx, "create task", err)
		return serverError(MsgCreateFailed)
	}
	a.logger.DebugContext(ctx, "task created", "id", task.ID)
	return success(http.StatusCreated, task)
}

func (a *apiImpl) Update(ctx context.Context, in domain.UpdateTaskInput) Response {
	task, err := a.tasks.UpdateTask(ctx, in)
	if err != nil {
		if isClientError(err) {
			return failure(http.StatusBadRequest, MsgInvalidInput, fieldErrors(err))
		}
		// a missing record is a store failure here, not a 404
		a.logFailure(ctx, "update task", err, "id", in.ID)
		return serverError(MsgUpdateFailed)
	}
	a.logger.DebugContext(ctx, "task updated", "id", task.ID)
	return success(http.StatusOK, task)
}

func (a *apiImpl) Delete(ctx context.Context, id string) Response {
	err := a.tasks.DeleteTask(ctx, id)
	if err != nil {
		if isClientError(err) {
			return failure(http.StatusBadRequest, MsgIDRequired, fieldErrors(err))
		}
		a.logFailure(ctx, "delete task", err, "id", id)
		return serverError(MsgDeleteFailed)
	}
	a.logger.DebugContext(ctx, "task deleted", "id", id)
	return Response{Status: http.StatusOK, Body: Envelope{Success: true, Message: MsgDeleted}}
}

func (a *apiImpl) InvalidBody(err error) Response {
	a.logger.Debug("rejected request body", "error", err)
	return failure(http.StatusBadRequest, MsgInvalidInput, []validation.FieldError{{
		Field:   "body",
		Type:    validation.ErrorTypeInvalidFormat,
		Message: "request body must be a valid JSON object",
	}})
}

func (a *apiImpl) Health(ctx context.Context) Response {
	if err := a.tasks.Ping(ctx); err != nil {
		a.logFailure(ctx, "ping store", err)
		return serverError(MsgStoreUnhealthy)
	}
	return Response{Status: http.StatusOK, Body: Envelope{Success: true}}
}

func (a *apiImpl) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	if !errors.ShouldLogError(err) {
		return
	}
	args := append([]any{"op", op, "error", err}, attrs...)
	a.logger.ErrorContext(ctx, "task operation failed", args...)
}

func isClientError(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Type.IsClientError()
}

// fieldErrors extracts the per-field details carried by a validation failure
func fieldErrors(err error) []validation.FieldError {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) && ve.HasErrors() {
		return ve.Errors
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return []validation.FieldError{{Type: validation.ErrorTypeInvalidValue, Message: appErr.Message}}
	}
	return nil
}
