package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/internal/config"
)

func configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "Path to "+config.ConfigFileName+" (default: working directory)")
	return cmd
}

// loadConfig reads path, or showcase.json in the working directory when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(".")
}
