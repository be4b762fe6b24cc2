package mirrors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/modern-devops/rlx/tools"

	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"
)

const (
	zip = ".zip"
	tar = ".tar.gz"
)

type fzfMirror struct {
	Releases string `json:"releases"`
	platform string
}

// Fzf lists the fzf releases published at the given releases endpoint.
func Fzf(releases string) Mirror {
	return &fzfMirror{
		Releases: releases,
		platform: runtime.GOOS + "_" + arch(),
	}
}

// Versions returns the stable releases that ship an archive for this
// platform, with semver versions ("v0.44.1").
func (f *fzfMirror) Versions() ([]*VersionDesc, error) {
	rs, err := tools.GetReleases(f.Releases)
	if err != nil {
		return nil, err
	}
	vds := make([]*VersionDesc, 0, len(rs))
	for _, r := range rs {
		if r.Draft || r.Prerelease {
			continue
		}
		version := "v" + strings.TrimPrefix(r.TagName, "v")
		if !semver.IsValid(version) {
			log.Debug().Str("tag", r.TagName).Msg("Skipping release without a semver tag")
			continue
		}
		asset, ok := f.asset(r)
		if !ok {
			continue
		}
		vds = append(vds, &VersionDesc{Version: version, URL: asset.DownloadURL})
	}
	if len(vds) == 0 {
		return nil, fmt.Errorf("%w: fzf %s, see %s", ErrNoAsset, f.platform, f.Releases)
	}
	return vds, nil
}

func (f *fzfMirror) asset(r tools.Release) (tools.Asset, bool) {
	for _, a := range r.Assets {
		if !strings.Contains(a.Name, "-"+f.platform+".") {
			continue
		}
		if strings.HasSuffix(a.Name, tar) || strings.HasSuffix(a.Name, zip) {
			return a, true
		}
	}
	return tools.Asset{}, false
}

func arch() string {
	archMapping := map[string]string{
		"arm": "armv7",
	}
	if a, ok := archMapping[runtime.GOARCH]; ok {
		return a
	}
	return runtime.GOARCH
}
