package main

import (
	"errors"

	git "github.com/Nivl/git-odb"
	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"golang.org/x/xerrors"
)

// List of the exit codes returned by the program
const (
	exitCodeFailure          = 1
	exitCodeObjectNotFound   = 2
	exitCodeCorruptObject    = 3
	exitCodeMalformedTree    = 4
	exitCodeUnsupportedEntry = 5
	exitCodeInvalidArgument  = 6
)

// exitCode returns the exit code matching the given error
func exitCode(err error) int {
	switch {
	case errors.Is(err, ginternals.ErrObjectNotFound):
		return exitCodeObjectNotFound
	case errors.Is(err, ginternals.ErrCorruptObject):
		return exitCodeCorruptObject
	case errors.Is(err, object.ErrTreeInvalid):
		return exitCodeMalformedTree
	case errors.Is(err, ginternals.ErrUnsupportedEntryKind):
		return exitCodeUnsupportedEntry
	case errors.Is(err, ginternals.ErrInvalidArgument),
		errors.Is(err, githash.ErrInvalidOid):
		return exitCodeInvalidArgument
	default:
		return exitCodeFailure
	}
}

func loadConfig(cfg *globalFlags, skipLookUp bool) (*config.Config, error) {
	return config.LoadConfig(cfg.env, config.LoadConfigOptions{
		WorkingDirectory: cfg.C.String(),
		SkipGitDirLookUp: skipLookUp,
	})
}

func loadRepository(cfg *globalFlags) (*git.Repository, error) {
	c, err := loadConfig(cfg, false)
	if err != nil {
		return nil, err
	}
	return git.OpenRepositoryWithParams(c, git.Options{
		Logger: cfg.logger,
	})
}

// parseOid parses an object name provided by the user
func parseOid(name string) (githash.Oid, error) {
	oid, err := githash.NewOidFromStr(name)
	if err != nil {
		return githash.NullOid, xerrors.Errorf("not a valid object name %s: %w", name, ginternals.ErrInvalidArgument)
	}
	return oid, nil
}
