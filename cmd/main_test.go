package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modern-devops/rlx/tools/commander"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	setFlags()
	os.Exit(m.Run())
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RLX_CONFIG", filepath.Join(t.TempDir(), "config.ini"))
	var out bytes.Buffer
	commandRoot.SetArgs(args)
	commandRoot.SetIn(strings.NewReader(stdin))
	commandRoot.SetOut(&out)
	err := commandRoot.Execute()
	return out.String(), err
}

func TestFindCmd_environment(t *testing.T) {
	t.Setenv(envLine, "echo 123 ; ls -l")
	t.Setenv(envPoint, "2")
	out, err := run(t, "", "find-cmd")
	require.NoError(t, err)
	assert.Equal(t, "0 9 1 2\necho\n123\n", out)

	t.Setenv(envPoint, "two")
	_, err = run(t, "", "find-cmd")
	assert.ErrorContains(t, err, envPoint)
}

func TestFindCmd_flags(t *testing.T) {
	out, err := run(t, "", "find-cmd", "--line", "echo $(ca) x", "--point", "9", "--json")
	require.NoError(t, err)
	var got matchJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, matchJSON{Start: 7, End: 9, Index: 1, SIndex: 2, Text: "ca", Words: []string{"ca"}}, got)
}

func TestFindCmd_chars(t *testing.T) {
	t.Cleanup(func() { findOpts.Chars = false })
	// "é" and "ü" take two bytes each, the cursor sits after "gr"
	out, err := run(t, "", "find-cmd", "--line", "echo é ; grün x", "--point", "10", "--chars")
	require.NoError(t, err)
	assert.Equal(t, "9 15 1 2\ngrün\nx\n", out)

	findOpts.Chars = false
	out, err = run(t, "", "find-cmd", "--line", "echo é ; grün x", "--point", "12")
	require.NoError(t, err)
	assert.Equal(t, "10 17 1 2\ngrün\nx\n", out)
}

func TestCharPositions(t *testing.T) {
	line := "ls ñandú/"
	m := commander.Locate(line, len(line))
	assert.Equal(t, positions{Start: 0, End: 9, Index: 2, SIndex: 6}, charPositions(line, m, len(line)))
	assert.Equal(t, 3, byteOffset(line, 3))
	assert.Equal(t, 6, byteOffset(line, 5))
	assert.Equal(t, len(line), byteOffset(line, 100))
	assert.Equal(t, 0, byteOffset(line, -1))
}

func TestDirMarker(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir+"\n"+filepath.Join(dir, "missing")+"\n", "dir-marker")
	require.NoError(t, err)
	assert.Equal(t, dir+"/\n"+filepath.Join(dir, "missing")+"\n", out)
}

func TestPick_passesThroughWithoutTerminal(t *testing.T) {
	hasTerminal = func() bool { return false }
	out, err := run(t, "b\n\na\nb\n", "pick", "--", "x")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.ini")
	_, err := run(t, "", "--config", cfg, "config", "set", "picker.command", "sk")
	require.NoError(t, err)
	out, err := run(t, "", "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sk")

	_, err = run(t, "", "--config", cfg, "config", "set", "picker.nope", "x")
	assert.Error(t, err)
}

func TestWordAt(t *testing.T) {
	line := "echo 123 "
	for point, want := range map[int]struct {
		tok      commander.Token
		position int
	}{
		0: {commander.Token{Start: 0, End: 4}, 1},
		4: {commander.Token{Start: 0, End: 4}, 1},
		6: {commander.Token{Start: 5, End: 8}, 2},
		9: {commander.Token{Start: 9, End: 9}, 3},
	} {
		tok, position := wordAt(commander.Locate(line, point), point)
		assert.Equal(t, want.tok, tok, "point %d", point)
		assert.Equal(t, want.position, position, "point %d", point)
	}
}

func TestPathSuggestions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.md"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), nil, 0644))

	var texts []string
	for _, s := range pathSuggestions(dir + "/s") {
		texts = append(texts, s.Text)
	}
	assert.ElementsMatch(t, []string{dir + "/src/", dir + "/setup.md"}, texts)
	assert.Len(t, pathSuggestions(dir+"/."), 1)
}
