package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
)

func (r *RootCommand) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the latest schema migrations",
		Long: `Revert the most recent schema migrations, one per step (default 1).
Any command that opens the database afterwards, including "tasks serve",
applies pending migrations again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}

			repo, err := config.CreateRepository(r.config)
			if err != nil {
				return err
			}
			defer repo.Close()

			for i := 0; i < steps; i++ {
				version, err := repo.RollbackMigration(cmd.Context())
				if err != nil {
					return err
				}
				if version == 0 {
					r.printf("No migrations to revert\n")
					break
				}
				r.printf("Reverted migration %d\n", version)
			}

			versions, err := repo.MigrationVersions(cmd.Context())
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				r.printf("Schema is empty\n")
			} else {
				r.printf("Schema at version %d\n", versions[len(versions)-1])
			}
			return nil
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to revert")

	cmd.AddCommand(downCmd)
	return cmd
}
