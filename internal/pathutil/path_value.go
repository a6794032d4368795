// Package pathutil contains methods to work with paths provided by
// the user
package pathutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
)

// ErrIsNotDirectory is an error returned when a path
// is expected to points to a directory but isn't
var ErrIsNotDirectory = errors.New("path is not a directory")

// DirPathValue represents a Flag value to be parsed by spf13/pflag
// that holds the path of an existing directory
type DirPathValue struct {
	defaultValue string
	userValue    string
	valueSet     bool
}

// we make sure the struct implements the interface
var _ pflag.Value = (*DirPathValue)(nil)

// NewDirPathFlagWithDefault return a new Flag Value that should hold
// a valid path to a directory
func NewDirPathFlagWithDefault(defaultPath string) *DirPathValue {
	return &DirPathValue{
		defaultValue: defaultPath,
	}
}

// String returns the flag's value
func (v *DirPathValue) String() string {
	if v.valueSet {
		return v.userValue
	}
	return v.defaultValue
}

// Set sets the flag's value.
// When called multiple times:
// - If the value is a relative path it will be append to the previous value
// - If the value is an absolute path: it will overwrite the previous value
func (v *DirPathValue) Set(value string) (err error) {
	if value == "" {
		return nil
	}

	if !filepath.IsAbs(value) {
		value = filepath.Join(v.userValue, value)
	}
	value, err = filepath.Abs(value)
	if err != nil {
		return xerrors.Errorf("could not find absolute path: %w", err)
	}

	info, err := os.Stat(value)
	if err != nil {
		return xerrors.Errorf("invalid path %s: %w", value, err)
	}
	if !info.IsDir() {
		return xerrors.Errorf("invalid path %s: %w", value, ErrIsNotDirectory)
	}

	v.valueSet = true
	v.userValue = value
	return nil
}

// Type returns the unique type of the Value
func (v *DirPathValue) Type() string {
	return "path"
}
