// Package backend contains the object database: it stores and retrieves
// zlib compressed objects from the objects directory
package backend

import (
	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/Nivl/git-odb/internal/cache"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Options represents the optional params used to create a Backend
type Options struct {
	// Logger is used to log the activity of the backend.
	// Defaults to a no-op logger
	Logger *zap.Logger
}

// Backend is an object database stored on a filesystem.
// Objects are stored as loose objects at objects/{sha[:2]}/{sha[2:]}
type Backend struct {
	config *config.Config
	fs     afero.Fs
	cache  *cache.ObjectLRU
	logger *zap.Logger
}

// New returns a new Backend object using the paths and the filesystem
// of the given config
func New(cfg *config.Config, opts *Options) (*Backend, error) {
	if opts == nil {
		opts = &Options{}
	}
	b := &Backend{
		config: cfg,
		fs:     cfg.FS,
		logger: opts.Logger,
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	if cfg.CacheSize > 0 {
		c, err := cache.NewObjectLRU(cfg.CacheSize)
		if err != nil {
			return nil, xerrors.Errorf("could not create the object cache: %w", err)
		}
		b.cache = c
	}
	return b, nil
}

// Path returns the path of the .git directory
func (b *Backend) Path() string {
	return b.config.GitDirPath
}

// Close frees the resources used by the Backend
func (b *Backend) Close() error {
	if b.cache != nil {
		b.cache.Clear()
	}
	return nil
}
