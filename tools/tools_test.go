package tools

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mholt/archiver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/junegunn/fzf/releases" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"tag_name":"v0.44.1","prerelease":false,"assets":[
			{"name":"fzf-0.44.1-linux_amd64.tar.gz","browser_download_url":"http://x/fzf-0.44.1-linux_amd64.tar.gz"}]}]`))
	}))
	defer srv.Close()

	rs, err := GetReleases(srv.URL + "/repos/junegunn/fzf/releases")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "v0.44.1", rs[0].TagName)
	assert.Equal(t, "fzf-0.44.1-linux_amd64.tar.gz", rs[0].Assets[0].Name)

	_, err = GetReleases(srv.URL + "/repos/nobody/nothing/releases")
	assert.ErrorIs(t, err, ErrReleaseNotFound)
}

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte("fzf"), 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/named":
			w.Header().Set(contentDisposition, `attachment; filename="fzf.tar.gz"`)
		case "/missing":
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var progress bytes.Buffer
	file, err := Download(srv.URL+"/archive.zip?token=1", dir, &progress)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive.zip"), file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	file, err = Download(srv.URL+"/named", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fzf.tar.gz"), file)

	target := filepath.Join(dir, "exact")
	file, err = Download(srv.URL+"/named", target, nil)
	require.NoError(t, err)
	assert.Equal(t, target, file)

	_, err = Download(srv.URL+"/missing", dir, nil)
	assert.Error(t, err)
}

func TestUnarchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "fzf")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0755))
	zip := filepath.Join(dir, "fzf.zip")
	require.NoError(t, archiver.Archive([]string{src}, zip))

	out := filepath.Join(dir, "out")
	require.NoError(t, Unarchive(zip, out))
	data, err := os.ReadFile(filepath.Join(out, "fzf"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	require.NoError(t, Unarchive(zip, out), "existing files are overwritten")

	assert.ErrorIs(t, Unarchive(filepath.Join(dir, "fzf.txt"), out), ErrUnsupported)
}
