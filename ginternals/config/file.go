package config

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// ErrUnsupportedFormatVersion is returned when the repository has been
// created with an unsupported version of the format
var ErrUnsupportedFormatVersion = errors.New("unsupported repository format version")

// SupportedFormatVersion is the only value of core.repositoryformatversion
// that can be read and written
const SupportedFormatVersion = 0

const (
	sectionCore             = "core"
	keyCoreFormatVersion    = "repositoryformatversion"
	keyCoreFileMode         = "filemode"
	keyCoreBare             = "bare"
	keyCoreLogAllRefUpdates = "logallrefupdates"
)

// defaultLoadOption contains the params used to load the config files
//
//nolint:gochecknoglobals // Treat this as a const
var defaultLoadOption = ini.LoadOptions{
	SkipUnrecognizableLines: true,
}

// File represents the config file of a repository
type File struct {
	data *ini.File
}

// NewDefaultFile returns the config file written when a repository
// is created
func NewDefaultFile() *File {
	f := ini.Empty(defaultLoadOption)
	core := f.Section(sectionCore)
	core.Key(keyCoreFormatVersion).SetValue(strconv.Itoa(SupportedFormatVersion))
	core.Key(keyCoreFileMode).SetValue("true")
	core.Key(keyCoreBare).SetValue("false")
	core.Key(keyCoreLogAllRefUpdates).SetValue("true")
	return &File{data: f}
}

// LoadFile reads and parses the config file at the given path.
// An empty config is returned if the file doesn't exist
func LoadFile(fs afero.Fs, path string) (*File, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return &File{data: ini.Empty(defaultLoadOption)}, nil
		}
		return nil, xerrors.Errorf("could not read config file %s: %w", path, err)
	}

	data, err := ini.LoadSources(defaultLoadOption, content)
	if err != nil {
		return nil, xerrors.Errorf("could not parse config file %s: %w", path, err)
	}
	return &File{data: data}, nil
}

// RepoFormatVersion returns the version of the format of the repo
func (f *File) RepoFormatVersion() (version int, ok bool) {
	v, err := f.data.Section(sectionCore).Key(keyCoreFormatVersion).Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate makes sure the repository can be used by this library
func (f *File) Validate() error {
	// git assumes 0 when the value is not set
	v, ok := f.RepoFormatVersion()
	if ok && v != SupportedFormatVersion {
		return xerrors.Errorf("version %d: %w", v, ErrUnsupportedFormatVersion)
	}
	return nil
}

// Save writes the config file at the given path
func (f *File) Save(fs afero.Fs, path string) error {
	buf := new(bytes.Buffer)
	if _, err := f.data.WriteTo(buf); err != nil {
		return xerrors.Errorf("could not serialize the config: %w", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return xerrors.Errorf("could not write config file %s: %w", path, err)
	}
	return nil
}
