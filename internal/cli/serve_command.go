package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/server"
	"task-manager/internal/services"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API and board page",
		Long: `Serve the JSON task API on GET/POST/PUT/DELETE /tasks (and again under the
base path, /api by default) plus the task board at / and a health check at /healthz.
Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if r.config.Application.Verbose {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			repo, err := config.CreateRepository(r.config)
			if err != nil {
				return err
			}
			defer repo.Close()

			container := services.NewServiceContainer(repo, r.config)
			srv := server.New(api.New(container.TaskService, r.logger), container.TaskService, r.config.Server, r.logger)

			r.logger.Info("task server starting",
				"addr", r.config.Server.Addr,
				"database", r.config.GetDatabasePath())
			return srv.ListenAndServe(ctx)
		},
	}
}
