package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modern-devops/rlx/tools/picker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var subCommandPick = &cobra.Command{
	Use:   "pick [--] [text]",
	Short: "Filter the completion candidates read from stdin through the picker",
	Long: "Read completion candidates one per line from stdin and let the configured picker select among them.\n" +
		"The selected lines are printed joined by spaces. Nothing selected exits 1, which leaves the line as is.\n" +
		"This is the rl_custom_complete contract of the readline hooks.",
	Example:       "compgen -c gi | rlx pick -- gi",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		pickerArgs, err := settings.PickerArgs()
		if err != nil {
			return err
		}
		p := &picker.Picker{
			Command:         settings.Picker.Command,
			Args:            pickerArgs,
			Dedup:           settings.Picker.Dedup,
			MarkDirectories: settings.Picker.MarkDirectories,
			Stderr:          os.Stderr,
		}
		candidates, err := readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		if !hasTerminal() {
			log.Debug().Msg("No terminal, passing the candidates through")
			return writeLines(cmd.OutOrStdout(), p.Prepare(candidates))
		}
		sel, err := p.Pick(cmd.Context(), text, candidates)
		if err != nil {
			return err
		}
		if sel == "" {
			return errNoSelection
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), sel)
		return err
	},
}

// hasTerminal reports whether a picker can draw its interface.
var hasTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return lines, nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}
