package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rwtodd/tealsed/internal/config"
)

// sed-go init
func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Write(opts.cfgFile, config.Default()); err != nil {
				return fmt.Errorf("initializing config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", opts.cfgFile)
			return nil
		},
	}
}
