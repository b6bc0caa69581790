package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the task named by args[0] after confirmation. A trailing
// "--yes" argument skips the prompt.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	confirmed := false
	if len(args) == 2 && args[1] == "--yes" {
		confirmed = true
		args = args[:1]
	}
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

	if !confirmed && !c.confirm(task.Title) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	if err := c.app.store.Remove(ctx, task.ID); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.Title)
	return nil
}

func (c *DeleteCommand) confirm(title string) bool {
	fmt.Fprintf(c.app.out, "Are you sure you want to delete %q? [y/N]: ", title)

	line, _ := bufio.NewReader(c.app.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
