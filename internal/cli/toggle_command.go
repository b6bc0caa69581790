package cli

import (
	"context"
	"fmt"

	"task-manager/internal/domain"
)

type toggleMode int

const (
	toggleFlip toggleMode = iota
	toggleComplete
	toggleIncomplete
)

// ToggleCommand changes the completion of one task
type ToggleCommand struct {
	app  *App
	mode toggleMode
}

// NewToggleCommand creates a handler for done, undo or toggle
func NewToggleCommand(app *App, mode toggleMode) *ToggleCommand {
	return &ToggleCommand{app: app, mode: mode}
}

// Execute runs the command against the task named by args[0]
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one task number or id")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	var updated *domain.Task
	switch {
	case c.mode == toggleComplete && task.Completed, c.mode == toggleIncomplete && !task.Completed:
		updated = &task
	default:
		updated, err = c.app.store.Toggle(ctx, task.ID)
		if err != nil {
			return c.app.errorHandler.Handle("update task", err)
		}
	}

	state := "To Do"
	if updated.Completed {
		state = "Completed"
	}
	fmt.Fprintf(c.app.out, "%s: %s\n", state, updated.Title)
	fmt.Fprintln(c.app.out, progressLine(c.app.store.Board()))
	return nil
}
