package cli

import (
	"context"
	"fmt"
	"strings"
)

const progressBarWidth = 20

// ProgressCommand prints the completion summary
type ProgressCommand struct {
	app *App
}

// NewProgressCommand creates a new progress command handler
func NewProgressCommand(app *App) *ProgressCommand {
	return &ProgressCommand{app: app}
}

// Execute prints a bar and the "c of t completed (p%)" line
func (c *ProgressCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.load(ctx); err != nil {
		return err
	}

	board := c.app.store.Board()
	filled := board.Percent() * progressBarWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)

	fmt.Fprintf(c.app.out, "[%s] %s\n", bar, progressLine(board))
	return nil
}
