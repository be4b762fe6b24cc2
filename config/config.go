package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
	"mvdan.cc/sh/v3/shell"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "RLX_CONFIG"
	// EnvPicker overrides [picker] command.
	EnvPicker = "RLX_PICKER"
	// EnvFzfMirror overrides [mirror] fzf-releases.
	EnvFzfMirror = "RLX_FZF_MIRROR"

	DefaultFzfReleases = "https://api.github.com/repos/junegunn/fzf/releases"
)

var ErrUnknownKey = errors.New("unknown config key")

type Config struct {
	path    string
	Picker  Picker  `ini:"picker"`
	Scanner Scanner `ini:"scanner"`
	Mirror  Mirror  `ini:"mirror"`
	Log     Log     `ini:"log"`
}

type Picker struct {
	Command         string `ini:"command"`
	Args            string `ini:"args"`
	MarkDirectories bool   `ini:"mark-directories"`
	Dedup           bool   `ini:"dedup"`
}

type Scanner struct {
	MaxDepth int `ini:"max-depth"`
}

type Mirror struct {
	FzfReleases string `ini:"fzf-releases"`
}

type Log struct {
	Level string `ini:"level"`
}

// Default returns the configuration used when no file exists.
func Default(path string) *Config {
	return &Config{
		path: path,
		Picker: Picker{
			Command:         "fzf",
			Args:            "--height=40% --reverse",
			MarkDirectories: true,
			Dedup:           true,
		},
		Scanner: Scanner{MaxDepth: 512},
		Mirror:  Mirror{FzfReleases: DefaultFzfReleases},
		Log:     Log{Level: zerolog.WarnLevel.String()},
	}
}

// Path resolves the config file: the given path, then $RLX_CONFIG, then
// config.ini under root.
func Path(path, root string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(root, "config.ini")
}

// Load reads the file at path over the defaults and applies the environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvPicker); v != "" {
		c.Picker.Command = v
	}
	if v := os.Getenv(EnvFzfMirror); v != "" {
		c.Mirror.FzfReleases = v
	}
	return c, nil
}

func load(path string) (*Config, error) {
	c := Default(path)
	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %s, %w", path, err)
	}
	if err := cfg.MapTo(c); err != nil {
		return nil, fmt.Errorf("failed to map config: %s, %w", path, err)
	}
	return c, nil
}

// Set updates a single "section.key" of the file at path, leaving
// environment overrides out of the saved file.
func Set(path, key, value string) error {
	c, err := load(path)
	if err != nil {
		return err
	}
	section, name, ok := strings.Cut(key, ".")
	if !ok {
		return fmt.Errorf("%w: %s, expects <section>.<key>", ErrUnknownKey, key)
	}
	f, err := c.file()
	if err != nil {
		return err
	}
	sec, err := f.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	sec.Key(name).SetValue(value)
	if err := f.StrictMapTo(c); err != nil {
		return fmt.Errorf("invalid value for %s: %q, %w", key, value, err)
	}
	return c.Save()
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to make dir: %s, %w", filepath.Dir(c.path), err)
	}
	f, err := c.file()
	if err != nil {
		return err
	}
	return f.SaveToIndent(c.path, "\t")
}

// WriteTo prints the configuration in ini form.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	f, err := c.file()
	if err != nil {
		return 0, err
	}
	return f.WriteToIndent(w, "\t")
}

func (c *Config) file() (*ini.File, error) {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, c); err != nil {
		return nil, fmt.Errorf("failed to reflect config: %w", err)
	}
	return f, nil
}

// PickerArgs splits [picker] args with shell quoting rules, expanding
// environment variables.
func (c *Config) PickerArgs() ([]string, error) {
	args, err := shell.Fields(c.Picker.Args, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid picker args: %q, %w", c.Picker.Args, err)
	}
	return args, nil
}

// LogLevel parses [log] level, falling back to warn.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}
