package sqlite

import "time"

// Task is a row of the tasks table.
type Task struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskUpdate is the set of columns an update writes. Nil fields keep their stored
// value; updated_at is always refreshed.
type TaskUpdate struct {
	Title     *string
	Completed *bool
}
