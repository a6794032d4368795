package backend

import (
	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/Nivl/git-odb/internal/gitpath"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Init initializes a repository.
// Running Init on an existing repository is safe: existing files
// are left untouched
func (b *Backend) Init() error {
	// Create the directories
	dirs := []string{
		b.Path(),
		ginternals.ObjectsPath(b.config),
		ginternals.RefsHeadsPath(b.config),
		ginternals.RefsTagsPath(b.config),
	}
	for _, d := range dirs {
		if err := b.fs.MkdirAll(d, 0o755); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	head := ginternals.HEADPath(b.config)
	found, err := afero.Exists(b.fs, head)
	if err != nil {
		return xerrors.Errorf("could not check if %s exists: %w", head, err)
	}
	if !found {
		content := []byte("ref: " + gitpath.LocalBranch(gitpath.DefaultBranch) + "\n")
		if err = afero.WriteFile(b.fs, head, content, 0o644); err != nil {
			return xerrors.Errorf("could not write HEAD: %w", err)
		}
	}

	found, err = afero.Exists(b.fs, b.config.LocalConfig)
	if err != nil {
		return xerrors.Errorf("could not check if %s exists: %w", b.config.LocalConfig, err)
	}
	if !found {
		if err = config.NewDefaultFile().Save(b.fs, b.config.LocalConfig); err != nil {
			return xerrors.Errorf("could not set the default config: %w", err)
		}
	}

	b.logger.Debug("repository initialized", zap.String("path", b.Path()))
	return nil
}
