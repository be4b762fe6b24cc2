//go:build windows

package shellrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

const (
	env  = "Environment"
	path = "PATH"
)

// Install adds the paths to the user's environment PATH. cmd.exe has no
// readline, so no hook is installed.
func Install(_ string, in Integration) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, env, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf(`failed to open key: HKEY_CURRENT_USER\%s, %w`, env, err)
	}
	defer k.Close()
	op, _, err := k.GetStringValue(path)
	if err != nil {
		return fmt.Errorf(`failed to get value: %s, %w`, path, err)
	}
	if err := k.SetStringValue(path, addPaths(op, in.Paths...)); err != nil {
		return fmt.Errorf(`failed to set value: %s, %w`, path, err)
	}
	log.Info().Strs("paths", in.Paths).Msg("Added to the user PATH")
	return nil
}

func addPaths(op string, paths ...string) string {
	dps := filterNewPaths([]byte(op), paths...)
	separator := string(os.PathListSeparator)
	ops := strings.Split(op, separator)
	dps = append(dps, ops...)
	return strings.Join(dps, separator)
}
