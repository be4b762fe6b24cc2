//go:build !windows

package shellrc

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
)

// Install adds the integration to the rc file of the current shell, creating
// it when missing, and to the rc files of the other supported shells that
// already exist.
func Install(home string, in Integration) error {
	ct := getCurrentTerminal()
	if err := addToTerminal(ct, home, in, true); err != nil {
		return err
	}
	tryAddSupportedTerminals(ct, home, in)
	return nil
}

type terminal interface {
	Name() string
	Rc() string
	AddPathsShell(paths ...string) string
	// Hook returns the readline binding, or "" when the shell has none.
	Hook(command, key string) string
}

type terminalBash struct{}

func (t *terminalBash) Name() string {
	return "bash"
}

func (t *terminalBash) Rc() string {
	if runtime.GOOS == "darwin" {
		return ".bash_profile"
	}
	return ".bashrc"
}

func (t *terminalBash) AddPathsShell(paths ...string) string {
	return bashLikeShell(strings.Join(paths, ":"))
}

func (t *terminalBash) Hook(command, key string) string {
	return fmt.Sprintf(bashHook, command, key)
}

type terminalSh struct{}

func (t *terminalSh) Name() string {
	return "sh"
}

func (t *terminalSh) Rc() string {
	return ".profile"
}

func (t *terminalSh) AddPathsShell(paths ...string) string {
	return bashLikeShell(strings.Join(paths, ":"))
}

func (t *terminalSh) Hook(string, string) string {
	return ""
}

type terminalZsh struct{}

func (t *terminalZsh) Name() string {
	return "zsh"
}

func (t *terminalZsh) Rc() string {
	return ".zshrc"
}

func (t *terminalZsh) AddPathsShell(paths ...string) string {
	return bashLikeShell(strings.Join(paths, ":"))
}

func (t *terminalZsh) Hook(string, string) string {
	return ""
}

type terminalFish struct{}

func (t *terminalFish) Name() string {
	return "fish"
}

func (t *terminalFish) Rc() string {
	return ".config/fish/config.fish"
}

func (t *terminalFish) AddPathsShell(paths ...string) string {
	return fishShell(strings.Join(paths, " "))
}

func (t *terminalFish) Hook(string, string) string {
	return ""
}

type terminalTcsh struct{}

func (t *terminalTcsh) Name() string {
	return "tcsh"
}

func (t *terminalTcsh) Rc() string {
	return ".tcshrc"
}

func (t *terminalTcsh) AddPathsShell(paths ...string) string {
	return cshShell(strings.Join(paths, " "))
}

func (t *terminalTcsh) Hook(string, string) string {
	return ""
}

type terminalCsh struct {
	terminalTcsh
}

func (t *terminalCsh) Name() string {
	return "csh"
}

func bashLikeShell(paths string) string {
	return fmt.Sprintf(`export PATH="%s:$PATH"`, paths)
}

func cshShell(paths string) string {
	return fmt.Sprintf(`set path = (%s $path)`, paths)
}

func fishShell(paths string) string {
	return fmt.Sprintf(`set -gx PATH %s $PATH`, paths)
}

func getSupportedTerminals() []terminal {
	var ts []terminal
	ts = append(ts, &terminalBash{}, &terminalSh{})
	ts = append(ts, &terminalTcsh{}, &terminalCsh{})
	ts = append(ts, &terminalZsh{})
	ts = append(ts, &terminalFish{})
	return ts
}

// snippets returns what rc still lacks, one entry per line block.
func snippets(t terminal, data []byte, in Integration) []string {
	var ss []string
	if dps := filterNewPaths(data, in.Paths...); len(dps) > 0 {
		ss = append(ss, t.AddPathsShell(dps...))
	}
	if in.Command == "" || strings.Contains(string(data), hookMarker) {
		return ss
	}
	if hook := t.Hook(in.Command, in.key()); hook != "" {
		ss = append(ss, hook)
	}
	return ss
}

func addToTerminal(t terminal, home string, in Integration, force bool) error {
	rc := filepath.Join(home, t.Rc())
	if !force {
		// ignore if not exist when not force
		if _, err := os.Stat(rc); err != nil && os.IsNotExist(err) {
			return nil
		}
	}
	data, err := readRc(rc)
	if err != nil {
		return err
	}
	ss := snippets(t, data, in)
	if len(ss) == 0 {
		log.Debug().Str("rc", rc).Msg("Already integrated")
		return nil
	}
	if _, err := backup(rc); err != nil {
		return fmt.Errorf("failed to back up: %s, %w", rc, err)
	}
	if err := os.MkdirAll(filepath.Dir(rc), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(rc, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(fmt.Sprintf("\n%s\n", strings.Join(ss, "\n"))); err != nil {
		return err
	}
	log.Info().Str("shell", t.Name()).Str("rc", rc).Msg("Integrated")
	return nil
}

func getCurrentTerminal() terminal {
	ss := strings.Split(os.Getenv("SHELL"), "/")
	name := ss[len(ss)-1]
	ts := getSupportedTerminals()
	for _, t := range ts {
		if t.Name() == name {
			return t
		}
	}
	return ts[0]
}

func tryAddSupportedTerminals(current terminal, home string, in Integration) {
	// Note: added on zsh but uses on bash
	for _, t := range getSupportedTerminals() {
		if t.Name() == current.Name() {
			continue
		}
		if err := addToTerminal(t, home, in, false); err != nil {
			log.Warn().Err(err).Str("shell", t.Name()).Msg("Unable to integrate")
		}
	}
}
