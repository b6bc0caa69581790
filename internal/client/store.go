package client

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

// Messages shown when the server could not be reached or gave no reason
const (
	MsgLoadFailed   = "Failed to load tasks. Please refresh and try again."
	MsgEmptyTitle   = "Please enter a task"
	MsgAddFailed    = "Failed to add task. Please try again."
	MsgUpdateFailed = "Failed to update task. Please try again."
	MsgDeleteFailed = "Failed to delete task. Please try again."
	MsgUnknownTask  = "Task not found. Please refresh and try again."
)

// TaskAPI is the remote surface the store reconciles against
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, title string) (*domain.Task, error)
	UpdateTask(ctx context.Context, in domain.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Observer is notified after each mutation the server has confirmed
type Observer interface {
	TaskAdded(task domain.Task)
	TaskUpdated(task domain.Task)
	TaskDeleted(id string)
}

// ActionError is returned by store actions. Message is fit for display.
type ActionError struct {
	Message string
	Details []validation.FieldError
	Err     error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Err }

// Store holds the client's view of the task list. The sequence only changes after
// the server confirms a mutation; failed actions leave it untouched.
type Store struct {
	api TaskAPI

	mu        sync.Mutex
	tasks     []domain.Task
	loadErr   string
	observers map[int]Observer
	nextObs   int
}

// NewStore creates an empty store backed by api
func NewStore(api TaskAPI) *Store {
	return &Store{
		api:       api,
		tasks:     []domain.Task{},
		observers: make(map[int]Observer),
	}
}

// Load fetches the list once and replaces the sequence wholesale. On failure the
// sequence is cleared and Err reports why.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		actionErr := toActionError(err, MsgLoadFailed)
		s.tasks = []domain.Task{}
		s.loadErr = actionErr.Message
		return actionErr
	}
	s.tasks = append([]domain.Task{}, tasks...)
	s.loadErr = ""
	return nil
}

// Tasks returns a copy of the current sequence, newest first
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task{}, s.tasks...)
}

// Err returns the message of the last failed Load, or "" after a successful one
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Board returns the derived completion view of the current sequence
func (s *Store) Board() domain.Board {
	return domain.NewBoard(s.Tasks())
}

// Get returns the task with the given id from the current sequence
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

// Add creates a task and prepends it. Blank titles are rejected without a request.
func (s *Store) Add(ctx context.Context, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ActionError{
			Message: MsgEmptyTitle,
			Details: []validation.FieldError{{Field: validation.FieldTitle, Type: validation.ErrorTypeRequired, Message: MsgEmptyTitle}},
		}
	}

	task, err := s.api.CreateTask(ctx, title)
	if err != nil {
		return nil, toActionError(err, MsgAddFailed)
	}

	s.mu.Lock()
	s.tasks = append([]domain.Task{*task}, s.tasks...)
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.TaskAdded(*task)
	}
	return task, nil
}

// Toggle flips the completion of a task the store already holds
func (s *Store) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	current, ok := s.Get(id)
	if !ok {
		return nil, &ActionError{Message: MsgUnknownTask}
	}
	completed := !current.Completed
	return s.Update(ctx, id, domain.TaskPatch{Completed: &completed})
}

// Rename changes a task's title
func (s *Store) Rename(ctx context.Context, id, title string) (*domain.Task, error) {
	return s.Update(ctx, id, domain.TaskPatch{Title: &title})
}

// Update sends a partial update and replaces the matching task in place. Observers
// hear about it only when the task is in the local sequence.
func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.api.UpdateTask(ctx, domain.UpdateTaskInput{ID: id, Title: patch.Title, Completed: patch.Completed})
	if err != nil {
		return nil, toActionError(err, MsgUpdateFailed)
	}

	s.mu.Lock()
	var observers []Observer
	if i := s.indexOf(task.ID); i >= 0 {
		s.tasks[i] = *task
		observers = s.snapshotObservers()
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.TaskUpdated(*task)
	}
	return task, nil
}

// Remove deletes a task and drops it from the sequence. Observers hear about it
// only when the task was in the local sequence.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return toActionError(err, MsgDeleteFailed)
	}

	s.mu.Lock()
	var observers []Observer
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		observers = s.snapshotObservers()
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.TaskDeleted(id)
	}
	return nil
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// caller holds s.mu
func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// caller holds s.mu; observers run outside the lock in subscription order
func (s *Store) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(s.observers))
	for id := 0; id < s.nextObs; id++ {
		if o, ok := s.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// toActionError keeps the server's message when there is one and falls back to
// a generic retry message for transport failures.
func toActionError(err error, fallback string) *ActionError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &ActionError{Message: msg, Details: apiErr.Details, Err: err}
	}
	return &ActionError{Message: fallback, Err: err}
}
