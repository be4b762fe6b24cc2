package main

import (
	"github.com/modern-devops/rlx/tools/marker"

	"github.com/spf13/cobra"
)

var subCommandDirMarker = &cobra.Command{
	Use:           "dir-marker",
	Short:         "Append a slash to the stdin lines naming directories",
	Example:       "compgen -f | rlx dir-marker",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return marker.Mark(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
