package tools

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var ErrReleaseNotFound = errors.New("release not found")

// Release is a GitHub release as returned by the releases API.
type Release struct {
	TagName    string  `json:"tag_name"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// GetReleases lists the releases published at url, a GitHub compatible
// releases endpoint such as https://api.github.com/repos/junegunn/fzf/releases.
func GetReleases(url string) ([]Release, error) {
	rs := make([]Release, 0)
	rsp, err := resty.New().R().
		ForceContentType("application/json").
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&rs).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to request releases: %w", err)
	}
	if rsp.IsSuccess() {
		return rs, nil
	}
	code := rsp.StatusCode()
	if code == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrReleaseNotFound, url)
	}
	return nil, fmt.Errorf("failed to get releases, status: %d, resp: %s", code, rsp.String())
}
