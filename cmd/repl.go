package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/modern-devops/rlx/tools/commander"

	"github.com/joeycumines/go-prompt"
	istrings "github.com/joeycumines/go-prompt/strings"
	"github.com/spf13/cobra"
)

var subCommandRepl = &cobra.Command{
	Use:   "repl",
	Short: "Try the command locator in an interactive line editor",
	Long: "Edit shell lines with completion driven by the command locator: the first word of the command under\n" +
		"the cursor completes to executables on PATH, other words to file names. Entering a line prints what\n" +
		"find-cmd prints for a cursor at its end. Type exit to quit.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := &repl{maxDepth: settings.Scanner.MaxDepth}
		p := prompt.New(r.execute,
			prompt.WithTitle(app),
			prompt.WithPrefix(app+"> "),
			prompt.WithCompleter(r.complete),
			prompt.WithExitChecker(func(in string, breakline bool) bool {
				return breakline && (in == "exit" || in == "quit")
			}),
		)
		p.Run()
		return nil
	},
}

type repl struct {
	maxDepth    int
	once        sync.Once
	executables []string
}

func (r *repl) execute(line string) {
	if line == "exit" || line == "quit" {
		return
	}
	m := commander.Locate(line, len(line), commander.WithMaxDepth(r.maxDepth))
	if err := writeMatch(os.Stdout, m, bytePositions(line, m, len(line))); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func (r *repl) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	line := d.Text
	point := len(d.TextBeforeCursor())
	m := commander.Locate(line, point, commander.WithMaxDepth(r.maxDepth))
	tok, position := wordAt(m, point)

	prefix := line[tok.Start:point]
	var suggestions []prompt.Suggest
	if position == 1 {
		suggestions = r.executableSuggestions(prefix)
	} else {
		suggestions = pathSuggestions(prefix)
	}
	start := utf8.RuneCountInString(line[:tok.Start])
	end := utf8.RuneCountInString(line[:tok.End])
	return suggestions, istrings.RuneNumber(start), istrings.RuneNumber(end)
}

// wordAt returns the word of m the cursor at point touches, or an empty one
// at point, with its 1-based position in the command.
func wordAt(m commander.Match, point int) (commander.Token, int) {
	for i, t := range m.Tokens {
		if t.Start <= point && point <= t.End {
			return t, i + 1
		}
	}
	position := 1
	for _, t := range m.Tokens {
		if t.End < point {
			position++
		}
	}
	return commander.Token{Start: point, End: point}, position
}

func (r *repl) executableSuggestions(prefix string) []prompt.Suggest {
	r.once.Do(func() {
		r.executables = executablesOnPath()
	})
	var suggestions []prompt.Suggest
	for _, name := range r.executables {
		if strings.HasPrefix(name, prefix) {
			suggestions = append(suggestions, prompt.Suggest{Text: name})
		}
	}
	return suggestions
}

func executablesOnPath() []string {
	var names []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || info.IsDir() || info.Mode()&0111 == 0 {
				continue
			}
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// pathSuggestions completes prefix to the entries of its directory, keeping
// the prefix as typed, a leading ~/ included.
func pathSuggestions(prefix string) []prompt.Suggest {
	dir, base := filepath.Split(prefix)
	scan := dir
	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			scan = filepath.Join(home, rest)
		}
	}
	if scan == "" {
		scan = "."
	}
	entries, err := os.ReadDir(scan)
	if err != nil {
		return nil
	}
	var suggestions []prompt.Suggest
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), base) {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		text := dir + entry.Name()
		description := "file"
		if entry.IsDir() {
			text += "/"
			description = "directory"
		}
		suggestions = append(suggestions, prompt.Suggest{Text: text, Description: description})
	}
	return suggestions
}
