package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/modern-devops/rlx/tools/commander"

	"github.com/spf13/cobra"
)

const (
	envLine  = "READLINE_LINE"
	envPoint = "READLINE_POINT"
)

var findOpts = &struct {
	Line  string
	Point int
	JSON  bool
	Chars bool
}{}

var subCommandFindCmd = &cobra.Command{
	Use:   "find-cmd [--line <line> --point <offset>] [--json]",
	Short: "Print the command under the cursor of a readline buffer",
	Long: "Print `start end index sindex` of the command enclosing the cursor, followed by its words one per line.\n" +
		"The buffer comes from $READLINE_LINE and $READLINE_POINT, as set by bash for `bind -x` functions.\n" +
		"Offsets are in bytes, or in characters with --chars.",
	Example:       "READLINE_LINE='echo $(ca)' READLINE_POINT=9 rlx find-cmd",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, point, err := readlineBuffer(cmd)
		if err != nil {
			return err
		}
		pos := bytePositions
		if findOpts.Chars {
			point = byteOffset(line, point)
			pos = charPositions
		}
		m := commander.Locate(line, point, commander.WithMaxDepth(settings.Scanner.MaxDepth))
		if findOpts.JSON {
			return writeMatchJSON(cmd.OutOrStdout(), m, pos(line, m, point))
		}
		return writeMatch(cmd.OutOrStdout(), m, pos(line, m, point))
	},
}

// positions are the offsets find-cmd reports for a match.
type positions struct {
	Start, End, Index, SIndex int
}

func bytePositions(_ string, m commander.Match, _ int) positions {
	return positions{Start: m.Start, End: m.End, Index: m.Index, SIndex: m.SIndex}
}

// charPositions counts characters instead of bytes, the way bash indexes
// READLINE_LINE in a multibyte locale.
func charPositions(line string, m commander.Match, point int) positions {
	point = min(max(point, 0), len(line))
	from := max(point-m.SIndex, 0)
	return positions{
		Start:  utf8.RuneCountInString(line[:m.Start]),
		End:    utf8.RuneCountInString(line[:m.End]),
		Index:  m.Index,
		SIndex: utf8.RuneCountInString(line[from:point]),
	}
}

// byteOffset returns the byte offset of the n-th character of s, or len(s)
// past its end.
func byteOffset(s string, n int) int {
	for i := range s {
		if n <= 0 {
			return i
		}
		n--
	}
	return len(s)
}

func readlineBuffer(cmd *cobra.Command) (string, int, error) {
	line, point := findOpts.Line, findOpts.Point
	if !cmd.Flags().Changed("line") {
		v, ok := os.LookupEnv(envLine)
		if !ok {
			return "", 0, errors.New("expected $" + envLine + " or --line")
		}
		line = v
	}
	if !cmd.Flags().Changed("point") {
		v, ok := os.LookupEnv(envPoint)
		if !ok {
			return "", 0, errors.New("expected $" + envPoint + " or --point")
		}
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			return "", 0, fmt.Errorf("expected an offset for $%s: %q", envPoint, v)
		}
		point = p
	}
	return line, point, nil
}

func writeMatch(w io.Writer, m commander.Match, pos positions) error {
	if _, err := fmt.Fprintf(w, "%d %d %d %d\n", pos.Start, pos.End, pos.Index, pos.SIndex); err != nil {
		return err
	}
	for _, word := range m.Words() {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}

type matchJSON struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Index  int      `json:"index"`
	SIndex int      `json:"sindex"`
	Text   string   `json:"text"`
	Words  []string `json:"words"`
}

func writeMatchJSON(w io.Writer, m commander.Match, pos positions) error {
	enc := json.NewEncoder(w)
	return enc.Encode(matchJSON{
		Start:  pos.Start,
		End:    pos.End,
		Index:  pos.Index,
		SIndex: pos.SIndex,
		Text:   m.Text(),
		Words:  m.Words(),
	})
}
