// Package marker appends a slash to completion candidates naming directories.
package marker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// Mark copies r to w line by line, appending "/" to every line that names a
// directory and does not already end with one.
func Mark(r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if _, err := fmt.Fprintln(bw, Line(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read candidates: %w", err)
	}
	return bw.Flush()
}

// Line returns line, with "/" appended when it names a directory.
func Line(line string) string {
	if !strings.HasSuffix(line, "/") && IsDir(line) {
		return line + "/"
	}
	return line
}

// IsDir reports whether s names an existing directory after $VAR and ${VAR}
// expansion followed by tilde expansion (~, ~user, ~+ and ~-). A reference to
// an undefined variable never names a directory.
func IsDir(s string) bool {
	path, ok := expand(s)
	if !ok {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func expand(s string) (string, bool) {
	word, err := syntax.NewParser().Document(strings.NewReader(s))
	if err != nil {
		log.Debug().Err(err).Str("word", s).Msg("Unable to parse")
		return "", false
	}
	defined := true
	syntax.Walk(word, func(node syntax.Node) bool {
		if pe, ok := node.(*syntax.ParamExp); ok && pe.Param != nil {
			if _, ok := os.LookupEnv(pe.Param.Value); !ok {
				defined = false
			}
		}
		return defined
	})
	if !defined {
		return "", false
	}
	// the expander also asks for names the word never mentions, such as IFS
	expanded, err := shell.Expand(s, os.Getenv)
	if err != nil {
		log.Debug().Err(err).Str("word", s).Msg("Unable to expand")
		return "", false
	}
	if !strings.HasPrefix(s, "~") {
		return expanded, true
	}
	prefix, rest, found := strings.Cut(expanded, "/")
	home, ok := tildeDir(prefix[1:])
	if !ok {
		return "", false
	}
	if !found {
		return home, true
	}
	return home + "/" + rest, true
}

// tildeDir resolves the word after a leading tilde.
func tildeDir(name string) (string, bool) {
	switch name {
	case "+":
		return os.LookupEnv("PWD")
	case "-":
		return os.LookupEnv("OLDPWD")
	case "":
		u, err := user.Current()
		if err != nil {
			return "", false
		}
		return u.HomeDir, true
	default:
		u, err := user.Lookup(name)
		if err != nil {
			return "", false
		}
		return u.HomeDir, true
	}
}
