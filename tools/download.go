package tools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
)

const (
	contentDisposition = "Content-Disposition"
)

// Download fetches url into toPath and returns the file written.
// When toPath is a directory the file is named after the Content-Disposition
// header, else after the last element of the url path, else a uuid.
// Otherwise toPath itself is the file.
// Progress is drawn on progress when it is not nil.
func Download(url, toPath string, progress io.Writer) (string, error) {
	filename := findFilename(url, toPath)
	rsp, err := resty.New().R().SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return "", err
	}
	body := rsp.RawBody()
	defer body.Close()
	if rsp.IsError() {
		return "", fmt.Errorf("failed to download: %s, status: %d", url, rsp.StatusCode())
	}
	if err := save(body, filename, rsp.RawResponse.ContentLength, progress); err != nil {
		return "", err
	}
	return tryRename(rsp, toPath, filename)
}

func save(body io.Reader, filename string, size int64, progress io.Writer) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %s, %w", filename, err)
	}
	defer f.Close()
	var w io.Writer = f
	if progress != nil {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription(filepath.Base(filename)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		w = io.MultiWriter(f, bar)
	}
	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("failed to write file: %s, %w", filename, err)
	}
	return nil
}

// findFilename picks the file to download to
// toPath itself unless it is a directory, else the url's last path element
func findFilename(url string, toPath string) string {
	if fi, err := os.Stat(toPath); err != nil || !fi.IsDir() {
		return toPath
	}
	lastSlash := strings.LastIndex(url, "/")
	if lastSlash == -1 {
		return filepath.Join(toPath, genTempFile())
	}
	filename := url[lastSlash+1:]
	if firstQuestion := strings.Index(filename, "?"); firstQuestion != -1 {
		filename = filename[0:firstQuestion]
	}
	if filename == "" {
		filename = genTempFile()
	}
	return filepath.Join(toPath, filename)
}

func tryRename(rsp *resty.Response, toPath, oFilename string) (string, error) {
	if fi, err := os.Stat(toPath); err != nil || !fi.IsDir() {
		return oFilename, nil
	}
	contentFilename := readFileName(rsp)
	if contentFilename == "" {
		return oFilename, nil
	}
	if strings.HasSuffix(oFilename, contentFilename) {
		return oFilename, nil
	}
	newFilename := filepath.Join(toPath, contentFilename)
	if err := os.Rename(oFilename, newFilename); err != nil {
		return "", err
	}
	return newFilename, nil
}

func readFileName(rsp *resty.Response) string {
	content := rsp.Header().Get(contentDisposition)
	if content == "" {
		return ""
	}
	fields := strings.Split(content, ";")
	for _, field := range fields {
		trimField := strings.TrimSpace(field)
		if name, ok := strings.CutPrefix(trimField, "filename="); ok {
			return filepath.Base(strings.Trim(name, `"`))
		}
	}
	return ""
}

func genTempFile() string {
	return uuid.New().String()
}
