package pathutil

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoRepo is an error returned when no repo are found
var ErrNoRepo = errors.New("not a git repository (or any of the parent directories)")

// WorkingTreeFromPath returns the absolute path to the root of a repo
// containing the provided directory.
// The lookup goes up the tree until a directory named dotGitDirName
// is found
func WorkingTreeFromPath(fs afero.Fs, p, dotGitDirName string) (path string, err error) {
	prev := ""
	for p != prev {
		isDir, err := afero.DirExists(fs, filepath.Join(p, dotGitDirName))
		if err == nil && isDir {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
