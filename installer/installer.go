// Package installer manages the ~/.rlx tree: the bin directory holding the
// completion wrappers, and pickers installed from release archives.
package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modern-devops/rlx/mirrors"
	"github.com/modern-devops/rlx/tools"
	"github.com/modern-devops/rlx/tools/linker"

	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"
)

const (
	app = "rlx"
	// CompleteCommand is the external completer the readline hooks run.
	CompleteCommand = "rl_custom_complete"
	// Latest selects the highest released version.
	Latest = "latest"
)

type UserIsolatedInstaller struct {
	RootPath     string
	SdkStashPath string
	BinPath      string
	// Progress receives download progress, none is drawn when nil.
	Progress io.Writer
}

func NewUserIsolatedInstaller(home string) *UserIsolatedInstaller {
	rp := filepath.Join(home, "."+app)
	return &UserIsolatedInstaller{
		RootPath:     rp,
		SdkStashPath: filepath.Join(rp, "sdk"),
		BinPath:      filepath.Join(rp, "bin"),
	}
}

// Tool is an executable shipped in a release archive.
type Tool struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Fzf is the default picker.
var Fzf = Tool{Name: "fzf", Path: tools.CommandFile("fzf")}

type Installed struct {
	Tool    Tool                 `json:"tool"`
	Version *mirrors.VersionDesc `json:"version"`
	Root    string               `json:"root"`
}

// InstallPicker installs version of tool from mirror, "" or Latest picking
// the highest one, and links it into BinPath. Installed versions are reused.
func (i *UserIsolatedInstaller) InstallPicker(tool Tool, mirror mirrors.Mirror, version string) (*Installed, error) {
	vd, err := i.versionDesc(mirror, version)
	if err != nil {
		return nil, err
	}
	in := &Installed{
		Tool:    tool,
		Version: vd,
		Root:    filepath.Join(i.SdkStashPath, tool.Name, strings.TrimPrefix(vd.Version, "v")),
	}
	df := filepath.Join(in.Root, ".done")
	if _, err := os.Stat(df); err == nil {
		log.Info().Str("root", in.Root).Msgf("%s@%s is already installed", tool.Name, vd.Version)
		return in, i.link(in)
	}
	log.Info().Msgf("Installing %s@%s ...", tool.Name, vd.Version)
	if err := os.RemoveAll(in.Root); err != nil {
		return nil, fmt.Errorf("failed to remove dir: [%s], Please check: %w", in.Root, err)
	}
	if err := i.downloadAndExtracting(vd.URL, in.Root); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(in.Root, tool.Path)); err != nil {
		return nil, fmt.Errorf("%s not found in the archive: %w", tool.Path, err)
	}
	if err := i.link(in); err != nil {
		return nil, err
	}
	return in, done(in, df)
}

// LinkSelf writes the completer wrapper forwarding to `<executable> pick --`,
// and links executable as rlx when rlx is not on PATH yet.
func (i *UserIsolatedInstaller) LinkSelf(executable string) error {
	command := fmt.Sprintf("%s pick --", executable)
	if _, err := linker.New(CompleteCommand, i.BinPath, command, linker.OverrideAlways, linker.Exec); err != nil {
		return fmt.Errorf("unable to link command: %s, Please check: %w", CompleteCommand, err)
	}
	log.Info().Str("command", filepath.Join(i.BinPath, CompleteCommand)).Msg("Linked")
	if _, err := exec.LookPath(app); err == nil {
		return nil
	}
	_, err := linker.New(app, i.BinPath, executable, linker.OverrideAlways, linker.Exec)
	return err
}

// BinPaths are the directories to put on PATH.
func (i *UserIsolatedInstaller) BinPaths() []string {
	return []string{i.BinPath}
}

func (i *UserIsolatedInstaller) versionDesc(mirror mirrors.Mirror, version string) (*mirrors.VersionDesc, error) {
	versions, err := mirror.Versions()
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, errors.New("no version found for the current machine")
	}
	if version == "" || version == Latest {
		return slices.MaxFunc(versions, func(a, b *mirrors.VersionDesc) int {
			return semver.Compare(a.Version, b.Version)
		}), nil
	}
	idx := slices.IndexFunc(versions, func(desc *mirrors.VersionDesc) bool {
		return strings.TrimPrefix(desc.Version, "v") == strings.TrimPrefix(version, "v")
	})
	if idx == -1 {
		return nil, fmt.Errorf("invalid version: %s", version)
	}
	return versions[idx], nil
}

func (i *UserIsolatedInstaller) link(in *Installed) error {
	target := filepath.Join(in.Root, in.Tool.Path)
	log.Info().Str("command", filepath.Join(i.BinPath, in.Tool.Name)).Msg("Linking ...")
	if _, err := linker.New(in.Tool.Name, i.BinPath, target, linker.OverrideAlways, linker.Exec); err != nil {
		return fmt.Errorf("unable to link command: %s, Please check: %w", in.Tool.Name, err)
	}
	return nil
}

func (i *UserIsolatedInstaller) downloadAndExtracting(url string, path string) error {
	temp, err := os.MkdirTemp("", "")
	if err != nil {
		return fmt.Errorf("failed to make temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(temp)
	}()
	log.Info().Msgf("Downloading %s ...", url)
	filename, err := tools.Download(url, temp, i.Progress)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	log.Info().Msgf("Extracting to %s ...", path)
	if err := tools.Unarchive(filename, path); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}
	return nil
}

func done(in *Installed, df string) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return os.WriteFile(df, data, 0644)
}
