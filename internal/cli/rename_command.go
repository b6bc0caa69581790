package cli

import (
	"context"
	"fmt"
	"strings"
)

// RenameCommand changes a task's title
type RenameCommand struct {
	app *App
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{app: app}
}

// Execute renames the task named by args[0] to the remaining arguments
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("expected a task number or id followed by the new title")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}

	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	updated, err := c.app.store.Rename(ctx, task.ID, strings.Join(args[1:], " "))
	if err != nil {
		return c.app.errorHandler.Handle("rename task", err)
	}

	fmt.Fprintf(c.app.out, "Renamed: %s -> %s\n", task.Title, updated.Title)
	return nil
}
