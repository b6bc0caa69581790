package api

import (
	"net/http"

	"task-manager/internal/validation"
)

// Fixed envelope messages. Underlying causes never reach the client.
const (
	MsgFetchFailed    = "Failed to fetch tasks"
	MsgInvalidInput   = "Invalid input"
	MsgCreateFailed   = "Failed to create task"
	MsgUpdateFailed   = "Failed to update task"
	MsgIDRequired     = "Task ID is required"
	MsgDeleteFailed   = "Failed to delete task"
	MsgDeleted        = "Task deleted successfully"
	MsgStoreUnhealthy = "Task store unavailable"
)

// Envelope is the body of every task API response
type Envelope struct {
	Success bool                    `json:"success"`
	Data    interface{}             `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Details []validation.FieldError `json:"details,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Response pairs an envelope with the HTTP status it is sent with
type Response struct {
	Status int
	Body   Envelope
}

func success(status int, data interface{}) Response {
	return Response{Status: status, Body: Envelope{Success: true, Data: data}}
}

func failure(status int, message string, details []validation.FieldError) Response {
	return Response{Status: status, Body: Envelope{Success: false, Error: message, Details: details}}
}

func serverError(message string) Response {
	return failure(http.StatusInternalServerError, message, nil)
}
