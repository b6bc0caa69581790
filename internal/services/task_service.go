package services

import (
	"context"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance with default validation limits
func NewTaskService(repo sqlite.Repository) TaskService {
	return NewTaskServiceWithConfig(repo, nil)
}

// NewTaskServiceWithConfig creates a TaskService whose title limits come from cfg
func NewTaskServiceWithConfig(repo sqlite.Repository, cfg *config.Config) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
	}
}

// NewServiceContainer wires every service onto a single repository
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *ServiceContainer {
	return &ServiceContainer{
		TaskService: NewTaskServiceWithConfig(repo, cfg),
	}
}

// ListTasks returns all tasks ordered by creation time, newest first
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// CreateTask creates a new task with the given title
func (t *taskServiceImpl) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	in, err := t.taskValidator.ValidateCreate(in)
	if err != nil {
		return nil, errors.NewValidationError("invalid task input", err)
	}

	dbTask := t.mapper.Task.ToDatabase(domain.NewTask(in.Title))
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	domainTask := t.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// UpdateTask applies a partial update to an existing task
func (t *taskServiceImpl) UpdateTask(ctx context.Context, in domain.UpdateTaskInput) (*domain.Task, error) {
	in, err := t.taskValidator.ValidateUpdate(in)
	if err != nil {
		return nil, errors.NewValidationError("invalid task input", err)
	}

	dbTask, err := t.repo.UpdateTask(ctx, in.ID, t.mapper.Task.PatchToDatabase(in.Patch()))
	if err != nil {
		return nil, err
	}

	domainTask := t.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// DeleteTask deletes a task by id
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	id, err := t.taskValidator.ValidateTaskID(id)
	if err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	return t.repo.DeleteTask(ctx, id)
}

// Board lists the tasks and partitions them by completion
func (t *taskServiceImpl) Board(ctx context.Context) (domain.Board, error) {
	tasks, err := t.ListTasks(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	return domain.NewBoard(tasks), nil
}

// Ping checks the repository connection
func (t *taskServiceImpl) Ping(ctx context.Context) error {
	return t.repo.Ping(ctx)
}
