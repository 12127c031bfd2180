package main

import (
	"fmt"

	"github.com/samuelfneumann/enduro/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the configuration of a run as YAML",
		Long: "Print the configuration of a run as YAML. Without --config " +
			"the default configuration is printed, with any ENDURO_ " +
			"environment overrides applied.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.FromYaml(path)
			if err != nil {
				return err
			}

			data, err := c.YAML()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "YAML config file")
	return cmd
}
