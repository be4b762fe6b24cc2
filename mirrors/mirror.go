package mirrors

import "errors"

var ErrNoAsset = errors.New("no release asset for this platform")

// VersionDesc is a downloadable version.
type VersionDesc struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

type Mirror interface {
	Versions() ([]*VersionDesc, error)
}
