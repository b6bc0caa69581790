package cli

import (
	"os"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
)

func (r *RootCommand) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the current configuration to a YAML file",
		Long:  "Write the resolved configuration to path (default: --config, TASKS_CONFIG or ~/.tasks/config.yaml).",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the file being created may not exist yet
			loader := config.NewLoader()
			if _, err := os.Stat(r.configFilePath(args)); err != nil {
				loader.WithoutFile()
			} else {
				loader.WithFile(r.configFilePath(args))
			}
			return r.loadConfigWith(loader)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.configFilePath(args)
			if err := config.WriteFile(path, r.config, force); err != nil {
				return err
			}
			r.printf("Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(r.config)
			if err != nil {
				return err
			}
			_, err = r.out.Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func (r *RootCommand) configFilePath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		return path
	}
	if path := os.Getenv(config.ConfigFileEnv); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
