package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"task-manager/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("list takes no arguments")
	}
	if err := c.app.load(ctx); err != nil {
		return err
	}
	c.printBoard(c.app.store.Board())
	return nil
}

// printBoard prints the progress line followed by the two sections. Tasks are
// numbered in display order so other commands can refer to them by number.
func (c *ListCommand) printBoard(board domain.Board) {
	out := c.app.out
	if board.IsEmpty() {
		fmt.Fprintln(out, `No tasks yet. Add one with: tasks add "title"`)
		return
	}

	fmt.Fprintln(out, progressLine(board))

	n := 1
	fmt.Fprintf(out, "\nTo Do (%d)\n", len(board.Incomplete))
	for _, task := range board.Incomplete {
		c.printTask(n, task)
		n++
	}

	fmt.Fprintf(out, "\nCompleted (%d)\n", len(board.Completed))
	for _, task := range board.Completed {
		c.printTask(n, task)
		n++
	}
}

func (c *ListCommand) printTask(n int, task domain.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(c.app.out, "%3d. [%s] %s  (%s, created %s)\n",
		n, mark, task.Title, shortID(task.ID), humanize.RelTime(task.CreatedAt, timeNow(), "ago", "from now"))
}

// progressLine renders "c of t completed (p%)"
func progressLine(board domain.Board) string {
	return fmt.Sprintf("%d of %d completed (%d%%)", board.CompletedCount, board.TotalCount, board.Percent())
}
