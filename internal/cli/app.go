package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"task-manager/internal/client"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application. Commands act on a client store that
// talks to a running task server.
type App struct {
	store        *client.Store
	config       *config.Config
	in           io.Reader
	out          io.Writer
	errorHandler *ErrorHandler
	registry     *CommandRegistry
}

// NewApp creates a new CLI application reading stdin and writing stdout
func NewApp(store *client.Store, cfg *config.Config) *App {
	return NewAppWithIO(store, cfg, os.Stdin, os.Stdout)
}

// NewAppWithIO creates a new CLI application with explicit streams
func NewAppWithIO(store *client.Store, cfg *config.Config, in io.Reader, out io.Writer) *App {
	app := &App{
		store:        store,
		config:       cfg,
		in:           in,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// load refreshes the store from the server before a command reads it
func (a *App) load(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return a.errorHandler.Handle("load tasks", err)
	}
	return nil
}

// displayOrder is the order tasks are numbered in by the list command:
// incomplete tasks first, then completed ones, each newest first.
func displayOrder(board domain.Board) []domain.Task {
	ordered := make([]domain.Task, 0, board.TotalCount)
	ordered = append(ordered, board.Incomplete...)
	return append(ordered, board.Completed...)
}

// resolveTask finds a task by list number, full id, or unique id prefix
func (a *App) resolveTask(ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, errors.NewInvalidInputError("task", ref, "a task number or id is required")
	}

	ordered := displayOrder(a.store.Board())
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(ordered) {
			return ordered[n-1], nil
		}
	}

	var matches []domain.Task
	for _, task := range ordered {
		if task.ID == ref {
			return task, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Task{}, errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, errors.NewInvalidInputError("task", ref, "matches more than one task")
	}
}

// shortID abbreviates a task id for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
