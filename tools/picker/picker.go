// Package picker hands completion candidates to an interactive filter such as
// fzf and reads back the selection.
package picker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"

	"github.com/modern-devops/rlx/tools/marker"

	"github.com/rs/zerolog/log"
)

var ErrNoCommand = errors.New("no picker command configured")

type Picker struct {
	// Command is the filter to run, resolved through PATH.
	Command string
	// Args go before the query.
	Args []string
	// Dedup sorts the candidates and drops duplicates.
	Dedup bool
	// MarkDirectories appends "/" to candidates naming directories.
	MarkDirectories bool
	// Stderr receives the filter's diagnostics, discarded when nil.
	Stderr io.Writer
}

// Prepare drops empty candidates and applies Dedup and MarkDirectories.
func (p *Picker) Prepare(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			out = append(out, c)
		}
	}
	if p.Dedup {
		slices.Sort(out)
		out = slices.Compact(out)
	}
	if p.MarkDirectories {
		for i, c := range out {
			out[i] = marker.Line(c)
		}
	}
	return out
}

// Pick runs the filter with query as its last argument and the prepared
// candidates on its stdin, one per line, and returns the selected lines
// joined by single spaces.
//
// No candidates selects nothing and a single candidate is selected without
// running the filter. A filter exiting non-zero selects nothing. A filter
// that cannot be started is an error.
func (p *Picker) Pick(ctx context.Context, query string, candidates []string) (string, error) {
	candidates = p.Prepare(candidates)
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}
	if p.Command == "" {
		return "", ErrNoCommand
	}

	args := append(slices.Clone(p.Args), query)
	log.Debug().Str("command", p.Command).Strs("args", args).Int("candidates", len(candidates)).Msg("Running picker")
	tc := exec.CommandContext(ctx, p.Command, args...)
	tc.Stdin = strings.NewReader(strings.Join(candidates, "\n") + "\n")
	tc.Stderr = p.Stderr
	out, err := tc.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			log.Debug().Int("code", ee.ExitCode()).Msg("Picker selected nothing")
			return "", nil
		}
		return "", fmt.Errorf("failed to run picker: %s, %w", p.Command, err)
	}
	return strings.Join(lines(out), " "), nil
}

func lines(data []byte) []string {
	var ls []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		ls = append(ls, sc.Text())
	}
	return ls
}
