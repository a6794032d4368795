// Package config contains structs to interact with the repository
// configuration as well as to configure the library
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nivl/git-odb/internal/env"
	"github.com/Nivl/git-odb/internal/gitpath"
	"github.com/Nivl/git-odb/internal/pathutil"
	"github.com/spf13/afero"
)

// ErrNoWorkTreeAlone is thrown when a work tree path is given without
// a git path
var ErrNoWorkTreeAlone = errors.New("cannot specify a work tree without also specifying a git dir")

const (
	// DefaultDotGitDirName contains the default name of the directory
	// holding the object database
	DefaultDotGitDirName = gitpath.DotGitPath
	// DefaultCacheSize is the number of decoded objects kept in memory
	// by the object store
	DefaultCacheSize = 1000
)

// Identity represents the person used as author and committer of all
// the commits created by the library.
// The identity is static configuration, it is never read from a
// config file or the env
type Identity struct {
	Name     string
	Email    string
	Location *time.Location
}

// DefaultIdentity returns the identity used when none is set
func DefaultIdentity() Identity {
	return Identity{
		Name:     "John Doe",
		Email:    "john.doe@example.com",
		Location: time.UTC,
	}
}

// Config represents the config of a repository
//
// If you decide to create a Config by yourself, make sure to set correct
// values everywhere
type Config struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs

	// GitDirPath represents the path to the .git directory
	// Maps to $GIT_DIR if set
	// Defaults to finding a ".git" folder in the current directory,
	// going up in the tree until reaching /
	GitDirPath string
	// WorkTreePath represents the path of the directory tracked by
	// the repository
	// Maps to $GIT_WORK_TREE
	// Defaults to $(GitDirPath)/.. or $(current-dir) depending on if
	// GitDirPath was set or not.
	WorkTreePath string
	// ObjectDirPath represents the path to the .git/objects directory
	// Maps to $GIT_OBJECT_DIRECTORY
	// Defaults to $(GitDirPath)/objects
	ObjectDirPath string
	// LocalConfig represents the config file to load
	// Maps to $GIT_CONFIG
	// Defaults to $(GitDirPath)/config if not sets
	LocalConfig string

	// Identity is used as author and committer of new commits
	// Defaults to DefaultIdentity()
	Identity Identity
	// IgnoredNames contains the names of the entries that are never
	// added to a tree, wherever they are in the working tree.
	// Defaults to the name of the .git directory
	IgnoredNames []string
	// CacheSize is the max number of objects kept in memory.
	// 0 disables the cache
	CacheSize int
}

// IsIgnored returns whether an entry with the given name should
// be skipped when building a tree
func (cfg *Config) IsIgnored(name string) bool {
	for _, n := range cfg.IgnoredNames {
		if n == name {
			return true
		}
	}
	return false
}

// LoadConfigOptions represents all the params used to set the default
// values of a Config object
type LoadConfigOptions struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs
	// WorkingDirectory represents the current working directory
	// Defaults to the current working directory
	WorkingDirectory string
	// WorkTreePath corresponds to the directory that should contain the .git.
	// Set this value to change the default behavior and overwrite
	// $GIT_WORK_TREE.
	WorkTreePath string
	// GitDirPath corresponds to the .git directory
	// Set this value to change the default behavior and overwrite
	// $GIT_DIR.
	GitDirPath string
	// SkipGitDirLookUp will disable automatic lookup of the .git directory.
	// Defaults to false which means that if no path is provided
	// to $GitDirPath or $GIT_DIR, the method will look for a .git dir in
	// $WorkingDirectory and will go up the tree until it finds one.
	//
	// You should only set this value to true if you want to initialize a
	// new repository.
	SkipGitDirLookUp bool
	// Identity overrides the default identity
	Identity *Identity
}

// LoadConfig returns a new Config that fetches the data from the
// env
func LoadConfig(e *env.Env, opts LoadConfigOptions) (*Config, error) {
	cfg := &Config{
		GitDirPath:    e.Get("GIT_DIR"),
		WorkTreePath:  e.Get("GIT_WORK_TREE"),
		ObjectDirPath: e.Get("GIT_OBJECT_DIRECTORY"),
		LocalConfig:   e.Get("GIT_CONFIG"),
		Identity:      DefaultIdentity(),
		IgnoredNames:  []string{DefaultDotGitDirName},
		CacheSize:     DefaultCacheSize,
	}
	if opts.Identity != nil {
		cfg.Identity = *opts.Identity
	}

	if err := setPaths(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigSkipEnv returns a new Config that skips the env
// and uses the default values
func LoadConfigSkipEnv(opts LoadConfigOptions) (*Config, error) {
	return LoadConfig(env.NewFromKVList([]string{}), opts)
}

func setPaths(p *Config, opts LoadConfigOptions) error {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	p.FS = opts.FS

	if opts.WorkingDirectory == "" || !filepath.IsAbs(opts.WorkingDirectory) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get the current directory: %w", err)
		}
		opts.WorkingDirectory = filepath.Join(wd, opts.WorkingDirectory)
	}

	// $GIT_WORK_TREE cannot be set if $GIT_DIR isn't set
	if opts.GitDirPath == "" && p.GitDirPath == "" && (opts.WorkTreePath != "" || p.WorkTreePath != "") {
		return ErrNoWorkTreeAlone
	}

	// GirDir rules:
	// - p.GitDirPath contains either nothing or $GIT_DIR
	// - opts.GitDirPath contains either nothing or a value used to override
	//   p.GitDirPath.
	// - If nothing set, a .git directory will looked for by walking up the
	//   current directory.
	// - If relative, the path will be appended to the current working
	//   directory.
	if opts.GitDirPath != "" {
		p.GitDirPath = opts.GitDirPath
	}
	guessedWorkingTree := opts.WorkingDirectory
	switch p.GitDirPath {
	default:
		if !filepath.IsAbs(p.GitDirPath) {
			p.GitDirPath = filepath.Join(opts.WorkingDirectory, p.GitDirPath)
		}
		guessedWorkingTree = filepath.Dir(p.GitDirPath)
	case "":
		if !opts.SkipGitDirLookUp {
			var err error
			guessedWorkingTree, err = pathutil.WorkingTreeFromPath(p.FS, opts.WorkingDirectory, DefaultDotGitDirName)
			if err != nil {
				return fmt.Errorf("could not find working tree: %w", err)
			}
		}
		p.GitDirPath = filepath.Join(guessedWorkingTree, DefaultDotGitDirName)
	}

	if p.LocalConfig == "" {
		p.LocalConfig = filepath.Join(p.GitDirPath, gitpath.ConfigPath)
	}
	if !filepath.IsAbs(p.LocalConfig) {
		p.LocalConfig = filepath.Join(opts.WorkingDirectory, p.LocalConfig)
	}

	if p.ObjectDirPath == "" {
		p.ObjectDirPath = filepath.Join(p.GitDirPath, gitpath.ObjectsPath)
	}
	if !filepath.IsAbs(p.ObjectDirPath) {
		p.ObjectDirPath = filepath.Join(opts.WorkingDirectory, p.ObjectDirPath)
	}

	// Worktree rules:
	// - p.WorkTreePath contains either nothing or $GIT_WORK_TREE.
	// - opts.WorkTreePath overrides p.WorkTreePath
	// - Fallback on the directory containing the .git directory
	if opts.WorkTreePath != "" {
		p.WorkTreePath = opts.WorkTreePath
	}
	if p.WorkTreePath == "" {
		p.WorkTreePath = guessedWorkingTree
	}
	if !filepath.IsAbs(p.WorkTreePath) {
		p.WorkTreePath = filepath.Join(opts.WorkingDirectory, p.WorkTreePath)
	}

	return nil
}
