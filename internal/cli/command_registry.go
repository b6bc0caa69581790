package cli

import (
	"context"
	"strings"

	"task-manager/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

type registeredCommand struct {
	name    string
	usage   string
	command Command
}

// CommandRegistry maps command names to handlers. Commands are kept in
// registration order so usage output is stable.
type CommandRegistry struct {
	commands []registeredCommand
}

// NewCommandRegistry registers every board command against app
func NewCommandRegistry(app *App) *CommandRegistry {
	r := &CommandRegistry{}
	r.Register("list", "", NewListCommand(app))
	r.Register("add", `"title"`, NewAddCommand(app))
	r.Register("done", "<n|id>", NewToggleCommand(app, toggleComplete))
	r.Register("undo", "<n|id>", NewToggleCommand(app, toggleIncomplete))
	r.Register("toggle", "<n|id>", NewToggleCommand(app, toggleFlip))
	r.Register("rename", `<n|id> "title"`, NewRenameCommand(app))
	r.Register("delete", "<n|id>", NewDeleteCommand(app))
	r.Register("progress", "", NewProgressCommand(app))
	return r
}

// Register adds or replaces a command. usage describes its arguments.
func (r *CommandRegistry) Register(name, usage string, command Command) {
	for i := range r.commands {
		if r.commands[i].name == name {
			r.commands[i] = registeredCommand{name, usage, command}
			return
		}
	}
	r.commands = append(r.commands, registeredCommand{name, usage, command})
}

// Execute runs the named command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, name string, args []string) error {
	for _, rc := range r.commands {
		if rc.name == name {
			return rc.command.Execute(ctx, args)
		}
	}
	return errors.NewInvalidInputError("command", name, "unknown command")
}

// GetUsage lists every registered command on one line
func (r *CommandRegistry) GetUsage() string {
	forms := make([]string, len(r.commands))
	for i, rc := range r.commands {
		forms[i] = strings.TrimSpace("tasks " + rc.name + " " + rc.usage)
	}
	return "usage: " + strings.Join(forms, " | ")
}
