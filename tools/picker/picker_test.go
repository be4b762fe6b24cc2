package picker

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grepPicker selects the candidates containing the query.
func grepPicker(t *testing.T) *Picker {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
	return &Picker{Command: "sh", Args: []string{"-c", `grep -F -- "$0"`}}
}

func TestPick(t *testing.T) {
	p := grepPicker(t)
	got, err := p.Pick(context.Background(), "an", []string{"banana", "cherry", "mango"})
	require.NoError(t, err)
	assert.Equal(t, "banana mango", got)
}

func TestPick_nonZeroExitSelectsNothing(t *testing.T) {
	p := grepPicker(t)
	got, err := p.Pick(context.Background(), "kiwi", []string{"banana", "cherry"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPick_shortcuts(t *testing.T) {
	p := &Picker{Command: "rlx-picker-that-does-not-exist"}

	got, err := p.Pick(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = p.Pick(context.Background(), "x", []string{"", "only", ""})
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestPick_commandMissing(t *testing.T) {
	p := &Picker{Command: "rlx-picker-that-does-not-exist"}
	_, err := p.Pick(context.Background(), "x", []string{"a", "b"})
	assert.Error(t, err)

	_, err = (&Picker{}).Pick(context.Background(), "x", []string{"a", "b"})
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestPrepare(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	p := &Picker{Dedup: true, MarkDirectories: true}
	assert.Equal(t, []string{sub + "/", "b", "z"}, p.Prepare([]string{"z", sub, "", "b", "z"}))

	p = &Picker{}
	assert.Equal(t, []string{"z", sub, "z"}, p.Prepare([]string{"z", sub, "", "z"}))
}
