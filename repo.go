// Package git contains methods to create and read the objects of a git
// repository: blobs, trees, and commits
package git

import (
	"errors"

	"github.com/Nivl/git-odb/backend"
	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// List of errors returned by the Repository struct
var (
	ErrRepositoryNotExist = errors.New("repository does not exist")
	// ErrRepositoryUnsupportedVersion is returned when opening a
	// repository using a format this package cannot read
	ErrRepositoryUnsupportedVersion = config.ErrUnsupportedFormatVersion
)

// Repository represent a git repository
// A Git repository is the .git/ folder inside a project.
// This repository tracks all changes made to files in your project,
// building a history over time.
// https://blog.axosoft.com/learning-git-repository/
type Repository struct {
	Config *config.Config

	dotGit *backend.Backend
	fs     afero.Fs
	logger *zap.Logger
}

// Options contains all the optional data used to initialize or
// open a repository
type Options struct {
	// Logger is used to log the activity of the repository and its
	// object database.
	// Defaults to a no-op logger
	Logger *zap.Logger
}

// InitRepository initialize a new git repository by creating the .git
// directory in the given path, which is where almost everything that
// Git stores and manipulates is located.
// https://git-scm.com/book/en/v2/Git-Internals-Plumbing-and-Porcelain#ch10-git-internals
func InitRepository(repoPath string) (*Repository, error) {
	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		WorkingDirectory: repoPath,
		SkipGitDirLookUp: true,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not create config: %w", err)
	}
	return InitRepositoryWithParams(cfg, Options{})
}

// InitRepositoryWithParams initialize a new git repository using the
// paths of the provided config.
// Initializing an existing repository is safe and doesn't alter its
// content
func InitRepositoryWithParams(cfg *config.Config, opts Options) (*Repository, error) {
	r, err := newRepository(cfg, opts)
	if err != nil {
		return nil, err
	}

	if err = r.dotGit.Init(); err != nil {
		r.Close() //nolint:errcheck // it already failed
		return nil, xerrors.Errorf("could not initialize the odb: %w", err)
	}
	return r, nil
}

// OpenRepository loads an existing git repository by reading its
// config file, and returns a Repository instance.
// The .git directory is looked for in repoPath and all its parents
func OpenRepository(repoPath string) (*Repository, error) {
	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		WorkingDirectory: repoPath,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not create config: %w", err)
	}
	return OpenRepositoryWithParams(cfg, Options{})
}

// OpenRepositoryWithParams loads an existing git repository using the
// paths of the provided config
func OpenRepositoryWithParams(cfg *config.Config, opts Options) (*Repository, error) {
	r, err := newRepository(cfg, opts)
	if err != nil {
		return nil, err
	}

	// HEAD should always be there, so its presence is used to know
	// if the repository exists
	found, err := afero.Exists(r.fs, ginternals.HEADPath(cfg))
	if err != nil {
		return nil, xerrors.Errorf("could not check if the repository exists: %w", err)
	}
	if !found {
		return nil, ErrRepositoryNotExist
	}

	// Load the config file
	// https://git-scm.com/docs/git-config
	f, err := config.LoadFile(r.fs, cfg.LocalConfig)
	if err != nil {
		return nil, xerrors.Errorf("could not read config file: %w", err)
	}
	if err = f.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid repository: %w", err)
	}

	return r, nil
}

func newRepository(cfg *config.Config, opts Options) (*Repository, error) {
	r := &Repository{
		Config: cfg,
		fs:     cfg.FS,
		logger: opts.Logger,
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
		cfg.FS = r.fs
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if cfg.Identity == (config.Identity{}) {
		cfg.Identity = config.DefaultIdentity()
	}
	// nil means unset, an empty slice is a valid value
	if cfg.IgnoredNames == nil {
		cfg.IgnoredNames = []string{config.DefaultDotGitDirName}
	}

	var err error
	r.dotGit, err = backend.New(cfg, &backend.Options{
		Logger: r.logger.Named("odb"),
	})
	if err != nil {
		return nil, xerrors.Errorf("could not create the odb: %w", err)
	}
	return r, nil
}

// Close frees the resources used by the repository
func (r *Repository) Close() error {
	return r.dotGit.Close()
}
