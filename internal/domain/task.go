package domain

import "time"

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTask creates a new, incomplete Task with the given title.
func NewTask(title string) Task {
	return Task{
		Title: title,
	}
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskPatch describes a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// CreateTaskInput is the body of a create request.
type CreateTaskInput struct {
	Title string `json:"title"`
}

// UpdateTaskInput is the body of an update request. Title and Completed are applied
// independently; an absent field keeps the stored value.
type UpdateTaskInput struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Patch returns the partial update carried by the input.
func (in UpdateTaskInput) Patch() TaskPatch {
	return TaskPatch{Title: in.Title, Completed: in.Completed}
}
