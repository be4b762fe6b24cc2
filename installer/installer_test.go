package installer

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/modern-devops/rlx/mirrors"

	"github.com/mholt/archiver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMirror []*mirrors.VersionDesc

func (m staticMirror) Versions() ([]*mirrors.VersionDesc, error) {
	return m, nil
}

// archiveServer serves a zip holding a single picker executable.
func archiveServer(t *testing.T, tool Tool) (string, *atomic.Int32) {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, tool.Path)
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\ncat\n"), 0755))
	zip := filepath.Join(dir, "picker.zip")
	require.NoError(t, archiver.Archive([]string{bin}, zip))

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.ServeFile(w, r, zip)
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &hits
}

func TestInstallPicker(t *testing.T) {
	url, hits := archiveServer(t, Fzf)
	m := staticMirror{
		{Version: "v0.9.0", URL: url + "/fzf-0.9.0.zip"},
		{Version: "v0.44.1", URL: url + "/fzf-0.44.1.zip"},
		{Version: "v0.42.0", URL: url + "/fzf-0.42.0.zip"},
	}
	i := NewUserIsolatedInstaller(t.TempDir())

	in, err := i.InstallPicker(Fzf, m, Latest)
	require.NoError(t, err)
	assert.Equal(t, "v0.44.1", in.Version.Version)
	assert.Equal(t, filepath.Join(i.SdkStashPath, "fzf", "0.44.1"), in.Root)
	assert.FileExists(t, filepath.Join(in.Root, ".done"))
	assert.FileExists(t, filepath.Join(in.Root, Fzf.Path))
	if runtime.GOOS != "windows" {
		assert.FileExists(t, filepath.Join(i.BinPath, "fzf"))
	}
	assert.EqualValues(t, 1, hits.Load())

	_, err = i.InstallPicker(Fzf, m, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load(), "installed versions are reused")

	in, err = i.InstallPicker(Fzf, m, "0.42.0")
	require.NoError(t, err)
	assert.Equal(t, "v0.42.0", in.Version.Version)
	assert.EqualValues(t, 2, hits.Load())

	_, err = i.InstallPicker(Fzf, m, "1.0.0")
	assert.ErrorContains(t, err, "invalid version")
}

func TestLinkSelf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix like only")
	}
	t.Setenv("PATH", t.TempDir())
	i := NewUserIsolatedInstaller(t.TempDir())

	require.NoError(t, i.LinkSelf("/opt/rlx"))
	data, err := os.ReadFile(filepath.Join(i.BinPath, CompleteCommand))
	require.NoError(t, err)
	assert.Contains(t, string(data), "exec /opt/rlx pick --")
	assert.FileExists(t, filepath.Join(i.BinPath, app))
	assert.Equal(t, []string{i.BinPath}, i.BinPaths())
}
