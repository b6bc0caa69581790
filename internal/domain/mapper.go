package domain

import (
	"task-manager/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:        domainTask.ID,
		Title:     domainTask.Title,
		Completed: domainTask.Completed,
		CreatedAt: domainTask.CreatedAt,
		UpdatedAt: domainTask.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:        dbTask.ID,
		Title:     dbTask.Title,
		Completed: dbTask.Completed,
		CreatedAt: dbTask.CreatedAt,
		UpdatedAt: dbTask.UpdatedAt,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks, keeping order.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// PatchToDatabase converts a domain TaskPatch to the store's column update set.
func (m *TaskMapper) PatchToDatabase(patch TaskPatch) sqlite.TaskUpdate {
	return sqlite.TaskUpdate{
		Title:     patch.Title,
		Completed: patch.Completed,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
