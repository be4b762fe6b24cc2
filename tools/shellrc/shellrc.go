// Package shellrc wires rlx into the user's shell start up files.
package shellrc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Integration is what gets added to the start up files.
type Integration struct {
	// Paths are prepended to PATH.
	Paths []string
	// Command is how the rlx binary is invoked from the hook. No hook is
	// installed when empty.
	Command string
	// Key is the readline key sequence bound to the hook.
	Key string
}

const DefaultKey = `\C-x\C-f`

// hookMarker tags the hook so it is added once.
const hookMarker = "# rlx: pick the word under the cursor"

// bashHook replaces the word under the cursor with the picker's selection
// among its file name completions.
const bashHook = hookMarker + `
__rlx_pick() {
	local -a r
	mapfile -t r < <(%[1]s find-cmd --chars) || return
	local _s _e index sindex word sel start
	read -r _s _e index sindex <<<"${r[0]}"
	((index > 0)) && word=${r[index]}
	start=$((READLINE_POINT - sindex))
	[[ ${READLINE_LINE:start:${#word}} == "$word" ]] || word=
	sel=$(compgen -f -- "$word" | %[1]s pick -- "$word") || return
	[[ -n $sel ]] || return
	READLINE_LINE=${READLINE_LINE:0:start}${sel}${READLINE_LINE:start+${#word}}
	READLINE_POINT=$((start + ${#sel}))
}
bind -x '"%[2]s": __rlx_pick'`

func (in Integration) key() string {
	if in.Key == "" {
		return DefaultKey
	}
	return in.Key
}

// filterNewPaths drops the paths rc already mentions.
func filterNewPaths(rc []byte, paths ...string) []string {
	dps := make([]string, 0, len(paths))
	for _, path := range paths {
		if bytes.Contains(rc, []byte(path)) {
			continue
		}
		dps = append(dps, path)
	}
	return dps
}

func readRc(rc string) ([]byte, error) {
	data, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return data, nil
}

// backup copies rc next to itself under a unique name.
func backup(rc string) (string, error) {
	src, err := os.Open(rc)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()
	name := fmt.Sprintf("%s.%s.bak", rc, uuid.New().String()[:8])
	dst, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	log.Info().Str("rc", rc).Str("backup", name).Msg("Backed up")
	return name, nil
}
