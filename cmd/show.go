package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var subCommandShow = &cobra.Command{
	Use:           "show",
	Short:         "Show detail for rlx",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var subCommandShowBinPaths = &cobra.Command{
	Use:           "binpaths",
	Short:         "Show all binpaths managed by rlx",
	Example:       "export PATH=\"$(rlx show binpaths):$PATH\"",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := newInstaller()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(i.BinPaths(), string(os.PathListSeparator)))
		return err
	},
}
