package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// APIError is a well-formed envelope with success=false
type APIError struct {
	Status  int
	Message string
	Details []validation.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task server returned %d", e.Status)
	}
	return e.Message
}

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Details []validation.FieldError `json:"details,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Client talks to the task HTTP API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client using hc for every request
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// ListTasks fetches every task, newest first
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task with the given title
func (c *Client) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", domain.CreateTaskInput{Title: title}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends a partial update
func (c *Client) UpdateTask(ctx context.Context, in domain.UpdateTaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, "update task", http.MethodPut, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes the task with the given id
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", http.MethodDelete, "/tasks?id="+url.QueryEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewInvalidInputError("body", nil, err.Error())
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.NewTransportError(op, fmt.Errorf("decode %d response: %w", resp.StatusCode, err))
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error, Details: env.Details}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.NewTransportError(op, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}
