package tools

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mholt/archiver/v3"
)

var ErrUnsupported = errors.New("unsupported archiver")

// Unarchive extracts filename into path, the format chosen by its extension.
// Existing files are overwritten.
func Unarchive(filename, path string) error {
	iua, err := archiver.ByExtension(filename)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	u, ok := iua.(archiver.Unarchiver)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	applyArchiverSettings(iua, 0)
	return u.Unarchive(filename, path)
}

func applyArchiverSettings(iua interface{}, stripComponent int64) {
	rua := reflect.ValueOf(iua).Elem()
	if v := rua.FieldByName("StripComponents"); v.IsValid() && v.CanSet() {
		v.SetInt(stripComponent)
	}
	if v := rua.FieldByName("OverwriteExisting"); v.IsValid() && v.CanSet() {
		v.SetBool(true)
	}
}
