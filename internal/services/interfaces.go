package services

import (
	"context"

	"task-manager/internal/domain"
)

// TaskService handles the task lifecycle. It validates input, persists through the
// repository and returns domain records. Nothing is cached between calls.
type TaskService interface {
	// ListTasks returns every task, newest first
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask validates the title and stores a new incomplete task
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)

	// UpdateTask writes only the fields present in the input
	UpdateTask(ctx context.Context, in domain.UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes a task permanently
	DeleteTask(ctx context.Context, id string) error

	// Board returns the derived completion view over all tasks
	Board(ctx context.Context) (domain.Board, error)

	// Ping checks the underlying store
	Ping(ctx context.Context) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService TaskService
}
