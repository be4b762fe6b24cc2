// Package linker writes small wrapper scripts that forward to another command.
package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/modern-devops/rlx/tools/commander"

	"github.com/rs/zerolog/log"
)

const fileMode = 0744

type Option int

const (
	None           Option = iota
	OverrideAlways        = 1 << 0
	// Exec replaces the wrapper process with the command on unix like systems.
	Exec = 1 << 1
)

var drivePath = regexp.MustCompile(`^[A-Za-z]:/`)

// wrapper is one script to write: where it goes and how its body reads.
type wrapper struct {
	file string
	body func(argv []string) []byte
}

// New writes a script called name under directory bin that forwards its
// arguments to command, and returns the path callers should run.
// On windows a .cmd script is returned and a sh script for msys2 is written
// next to it.
// example: New("rl_custom_complete", "/home/me/.rlx/bin", "rlx pick --", Exec)
func New(name, bin, command string, options ...Option) (string, error) {
	argv := commander.Split(command)
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command for %s", name)
	}
	if err := os.MkdirAll(bin, fileMode); err != nil {
		return "", fmt.Errorf("failed to create directory: %s, %w", bin, err)
	}
	option := None
	for _, o := range options {
		option |= o
	}

	wrappers := wrappersFor(runtime.GOOS, name, bin, option)
	for _, w := range wrappers {
		if err := w.write(argv, option); err != nil {
			return "", err
		}
	}
	return wrappers[0].file, nil
}

func wrappersFor(goos, name, bin string, option Option) []wrapper {
	sh := func(argv []string) []byte { return shellScript(argv, option) }
	if goos != "windows" {
		return []wrapper{{file: filepath.Join(bin, name), body: sh}}
	}
	return []wrapper{
		{file: filepath.Join(bin, name+".cmd"), body: cmdScript},
		// git bash on windows runs the extensionless one
		{file: filepath.Join(bin, name), body: func(argv []string) []byte {
			return sh(msys2Argv(argv))
		}},
	}
}

func (w wrapper) write(argv []string, option Option) error {
	if _, err := os.Stat(w.file); err == nil && option&OverrideAlways == 0 {
		log.Debug().Str("file", w.file).Msg("Link exists, skipped")
		return nil
	}
	if err := os.WriteFile(w.file, w.body(argv), fileMode); err != nil {
		return fmt.Errorf("failed to create file: %s, %w", w.file, err)
	}
	return nil
}

// msys2Argv rewrites the executable of argv into the form msys2 understands
// when it names an existing file.
func msys2Argv(argv []string) []string {
	executable := strings.Trim(argv[0], `"'`)
	if _, err := os.Stat(executable); err != nil {
		return argv
	}
	return append([]string{toUnixLikePath(executable)}, argv[1:]...)
}

// toUnixLikePath translate windows style path to unix like style path
// C:\Users\Administrator\.rlx\bin\rlx.exe
// ===>
// /c/Users/Administrator/.rlx/bin/rlx.exe
func toUnixLikePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if drivePath.MatchString(path) {
		path = "/" + strings.ToLower(path[0:1]) + path[2:]
	}
	return path
}

func cmdScript(argv []string) []byte {
	return []byte(fmt.Sprintf("@echo off\n\n%s %%*", strings.Join(argv, " ")))
}

func shellScript(argv []string, option Option) []byte {
	if option&Exec != 0 {
		argv = append([]string{"exec"}, argv...)
	}
	return []byte(fmt.Sprintf("#!/bin/sh\n\n%s \"$@\"\n", strings.Join(argv, " ")))
}
