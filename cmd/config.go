package main

import (
	"github.com/modern-devops/rlx/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var subCommandConfig = &cobra.Command{
	Use:           "config",
	Short:         "Show or change the rlx configuration",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var subCommandConfigShow = &cobra.Command{
	Use:           "show",
	Short:         "Print the effective configuration",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := settings.WriteTo(cmd.OutOrStdout())
		return err
	},
}

var subCommandConfigSet = &cobra.Command{
	Use:           "set <section.key> <value>",
	Short:         "Save a configuration value",
	Example:       "rlx config set picker.args \"--height=50% --multi\"",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(settings.Path(), args[0], args[1]); err != nil {
			return err
		}
		log.Info().Str("file", settings.Path()).Str(args[0], args[1]).Msg("Saved")
		return nil
	},
}
