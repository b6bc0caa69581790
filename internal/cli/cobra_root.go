package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-manager/internal/client"
	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	logger *slog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command wired to the process streams
func NewRootCommand() *RootCommand {
	return NewRootCommandWithIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewRootCommandWithIO creates the root cobra command with explicit streams
func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		in:     in,
		out:    out,
		errOut: errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "tasks",
		Short: "A small task tracker with an HTTP API",
		Long: `tasks keeps a list of to-do items in SQLite and serves them over a JSON HTTP API.

Run "tasks serve" to start the server, then use the other commands to work with it.

EXAMPLES:
  tasks serve                              # Serve the API and board page on 127.0.0.1:8080
  tasks add "Write the report"             # Add a task
  tasks list                               # Show the board with numbered tasks
  tasks done 1                             # Mark task 1 completed
  tasks rename 2 "Write the final report"  # Change a title
  tasks delete 3                           # Delete a task (asks for confirmation)
  tasks progress                           # Show the completion percentage
  tasks config init                        # Write ~/.tasks/config.yaml with defaults
  tasks migrate down                       # Revert the latest schema migration

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:        --config or TASKS_CONFIG (default: ~/.tasks/config.yaml)
  Database:           TASKS_DB_DIR, TASKS_DB_FILENAME, TASKS_DB_QUERY_TIMEOUT, TASKS_DB_WRITE_TIMEOUT
  Server:             TASKS_SERVER_ADDR, TASKS_SERVER_BASE_PATH, TASKS_SERVER_SHUTDOWN_TIMEOUT
  Client:             TASKS_CLIENT_BASE_URL, TASKS_CLIENT_TIMEOUT
  Validation:         TASKS_VALIDATION_TITLE_MIN, TASKS_VALIDATION_TITLE_MAX
  Application:        TASKS_APP_TIMEOUT, TASKS_APP_VERBOSE, TASKS_LOG_LEVEL, TASKS_LOG_FORMAT
  Debug output:       TASKS_DEBUG=1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}
	root.cmd.SetIn(in)
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with the process arguments
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Run executes the command line args under ctx
func (r *RootCommand) Run(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// Config returns the configuration resolved for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TASKS_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TASKS_DB_DIR)")
	flags.String("db-filename", "", "Database filename, or :memory: (overrides TASKS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TASKS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TASKS_DB_WRITE_TIMEOUT)")

	// Server configuration
	flags.String("addr", "", "Address to serve on (overrides TASKS_SERVER_ADDR)")
	flags.String("base-path", "", "Extra prefix the task routes are mounted under (overrides TASKS_SERVER_BASE_PATH)")

	// Client configuration
	flags.String("server", "", "Task server URL used by client commands (overrides TASKS_CLIENT_BASE_URL)")
	flags.Duration("client-timeout", 0, "Per-request timeout for client commands (overrides TASKS_CLIENT_TIMEOUT)")

	// Validation configuration
	flags.Int("title-min-length", 0, "Minimum title length (overrides TASKS_VALIDATION_TITLE_MIN)")
	flags.Int("title-max-length", 0, "Maximum title length (overrides TASKS_VALIDATION_TITLE_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TASKS_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TASKS_APP_VERBOSE)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TASKS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TASKS_LOG_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newServeCommand(),
		r.registryCommand(&cobra.Command{
			Use:   "list",
			Short: "Show the task board",
			Long:  "Show the progress line and the To Do and Completed sections. Tasks are numbered for use with other commands.",
			Args:  cobra.NoArgs,
		}, "list"),
		r.registryCommand(&cobra.Command{
			Use:   "add [title]",
			Short: "Add a task",
			Args:  cobra.MinimumNArgs(1),
		}, "add"),
		r.registryCommand(&cobra.Command{
			Use:   "done [n|id]",
			Short: "Mark a task completed",
			Args:  cobra.ExactArgs(1),
		}, "done"),
		r.registryCommand(&cobra.Command{
			Use:   "undo [n|id]",
			Short: "Mark a task not completed",
			Args:  cobra.ExactArgs(1),
		}, "undo"),
		r.registryCommand(&cobra.Command{
			Use:   "toggle [n|id]",
			Short: "Flip a task's completion",
			Args:  cobra.ExactArgs(1),
		}, "toggle"),
		r.registryCommand(&cobra.Command{
			Use:   "rename [n|id] [title]",
			Short: "Change a task's title",
			Args:  cobra.MinimumNArgs(2),
		}, "rename"),
		r.newDeleteCommand(),
		r.registryCommand(&cobra.Command{
			Use:   "progress",
			Short: "Show the completion percentage",
			Args:  cobra.NoArgs,
		}, "progress"),
		r.newConfigCommand(),
		r.newMigrateCommand(),
	)
}

// registryCommand runs the named registry command for a cobra command
func (r *RootCommand) registryCommand(cmd *cobra.Command, name string) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return r.newApp().registry.Execute(ctx, name, args)
	}
	return cmd
}

func (r *RootCommand) newDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete [n|id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task permanently. You will be asked to confirm unless --yes is given.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// confirmation waits on the user, so allow longer than other commands
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*2)
			defer cancel()
			if yes {
				args = append(args, "--yes")
			}
			return r.newApp().registry.Execute(ctx, "delete", args)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func (r *RootCommand) newApp() *App {
	store := client.NewStore(client.New(r.config.Client.BaseURL, r.config.Client.Timeout))
	return NewAppWithIO(store, r.config, r.in, r.out)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig resolves configuration from defaults, file, environment and flags
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	path, _ := flags.GetString("config")
	return r.loadConfigWith(config.NewLoader().WithFile(path))
}

func (r *RootCommand) loadConfigWith(loader *config.Loader) error {
	cfg, err := loader.LoadWithOverrides(overridesFromFlags(r.cmd.PersistentFlags()))
	if err != nil {
		return err
	}
	r.config = cfg

	level := cfg.Application.LogLevel
	if cfg.Application.Verbose {
		level = "debug"
	}
	r.logger = logging.New(logging.Options{Level: level, Format: cfg.Application.LogFormat, Output: r.errOut})
	return nil
}

// overridesFromFlags collects only the flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	num := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.DBQueryTimeout = dur("db-query-timeout")
	o.DBWriteTimeout = dur("db-write-timeout")
	o.ServerAddr = str("addr")
	o.BasePath = str("base-path")
	o.ServerURL = str("server")
	o.ClientTimeout = dur("client-timeout")
	o.TitleMinLength = num("title-min-length")
	o.TitleMaxLength = num("title-max-length")
	o.Timeout = dur("app-timeout")
	o.LogLevel = str("log-level")
	o.LogFormat = str("log-format")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}

	return o
}

// printf writes to the command's stdout
func (r *RootCommand) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}
