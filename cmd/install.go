package main

import (
	"fmt"
	"os"

	"github.com/modern-devops/rlx/installer"
	"github.com/modern-devops/rlx/mirrors"
	"github.com/modern-devops/rlx/tools/shellrc"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var installOpts = &struct {
	FetchPicker bool
	Version     string
	SkipRc      bool
	Key         string
}{}

var subCommandInstall = &cobra.Command{
	Use:   "install [--fetch-picker [--version <version>]] [--skip-rc] [--key <keyseq>]",
	Short: "Install the completion wrapper, the shell hooks and optionally the fzf picker",
	Long: "Write the rl_custom_complete wrapper into ~/.rlx/bin and add ~/.rlx/bin to PATH in the shell rc files.\n" +
		"For bash a readline binding is added that picks the word under the cursor among its file name completions.",
	Example:       "rlx install --fetch-picker",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := newInstaller()
		if err != nil {
			return err
		}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			i.Progress = os.Stderr
		}
		executable, err := os.Executable()
		if err != nil {
			return fmt.Errorf("unable to locate the rlx executable: %w", err)
		}
		if err := i.LinkSelf(executable); err != nil {
			return err
		}
		if installOpts.FetchPicker {
			in, err := i.InstallPicker(installer.Fzf, mirrors.Fzf(settings.Mirror.FzfReleases), installOpts.Version)
			if err != nil {
				return err
			}
			log.Info().Str("version", in.Version.Version).Msg("The picker is ready")
		}
		if installOpts.SkipRc {
			log.Info().Msgf("Add [%s] to env.PATH to enable the completion wrapper", i.BinPath)
			return nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return shellrc.Install(home, shellrc.Integration{
			Paths:   i.BinPaths(),
			Command: app,
			Key:     installOpts.Key,
		})
	},
}
