package cli

import (
	"context"
	"fmt"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task from the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.store.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added: %s (%s)\n", task, shortID(task.ID))
	return nil
}
