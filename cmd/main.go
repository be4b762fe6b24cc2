package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/modern-devops/rlx/config"
	"github.com/modern-devops/rlx/installer"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const app = "rlx"

func main() {
	setFlags()
	handleError(commandRoot.Execute())
}

var rootOpts = &struct {
	Config   string
	LogLevel string
}{}

// settings is the effective configuration, loaded before any command runs.
var settings *config.Config

var commandRoot = &cobra.Command{
	Use: app,
	Short: "Rlx locates the shell command under the cursor of a readline buffer " +
		"and pipes completion candidates through an interactive picker such as fzf.",
	Example:       "READLINE_LINE='echo 123 ; ls -l' READLINE_POINT=2 rlx find-cmd",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		i, err := newInstaller()
		if err != nil {
			return err
		}
		if settings, err = config.Load(config.Path(rootOpts.Config, i.RootPath)); err != nil {
			return err
		}
		return setupLogging()
	},
}

func setupLogging() error {
	level := settings.LogLevel()
	if rootOpts.LogLevel != "" {
		l, err := zerolog.ParseLevel(rootOpts.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s, %w", rootOpts.LogLevel, err)
		}
		level = l
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

func newInstaller() (*installer.UserIsolatedInstaller, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return installer.NewUserIsolatedInstaller(home), nil
}

// errNoSelection exits 1 without a message, which leaves the readline
// buffer as it is.
var errNoSelection = errors.New("nothing selected")

func handleError(err error) {
	if err == nil {
		return
	}
	var ee *exec.ExitError
	if ok := errors.As(err, &ee); ok {
		os.Exit(ee.ExitCode())
		return
	}
	if !errors.Is(err, errNoSelection) {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func setFlags() {
	commandRoot.AddCommand(subCommandFindCmd, subCommandDirMarker, subCommandPick,
		subCommandInstall, subCommandShow, subCommandConfig, subCommandRepl)
	subCommandShow.AddCommand(subCommandShowBinPaths)
	subCommandConfig.AddCommand(subCommandConfigShow, subCommandConfigSet)
	commandRoot.PersistentFlags().StringVar(&rootOpts.Config, "config", "", "Config file, defaults to $RLX_CONFIG or ~/.rlx/config.ini")
	commandRoot.PersistentFlags().StringVar(&rootOpts.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, overrides [log] level")
	subCommandFindCmd.Flags().StringVar(&findOpts.Line, "line", "", "The input line, defaults to $READLINE_LINE")
	subCommandFindCmd.Flags().IntVar(&findOpts.Point, "point", 0, "The cursor offset, defaults to $READLINE_POINT")
	subCommandFindCmd.Flags().BoolVar(&findOpts.JSON, "json", false, "Print the result as JSON")
	subCommandFindCmd.Flags().BoolVar(&findOpts.Chars, "chars", false, "Read and print offsets in characters instead of bytes")
	subCommandInstall.Flags().BoolVar(&installOpts.FetchPicker, "fetch-picker", false, "Download the fzf picker into ~/.rlx")
	subCommandInstall.Flags().StringVar(&installOpts.Version, "version", installer.Latest, "The fzf version to download with --fetch-picker")
	subCommandInstall.Flags().BoolVar(&installOpts.SkipRc, "skip-rc", false, "Do not modify the shell rc files")
	subCommandInstall.Flags().StringVar(&installOpts.Key, "key", "", `The readline key sequence bound to the bash hook, defaults to \C-x\C-f`)
}
