package ginternals

import (
	"path/filepath"

	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/internal/gitpath"
)

// ObjectsPath returns the path to the directory containing the objects
func ObjectsPath(cfg *config.Config) string {
	return cfg.ObjectDirPath
}

// LooseObjectDirPath returns the path of the fan-out directory
// that contains the given object.
// Ex. for fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 it's:
// .git/objects/fc
func LooseObjectDirPath(cfg *config.Config, oid githash.Oid) string {
	sha := oid.String()
	return filepath.Join(ObjectsPath(cfg), sha[:2])
}

// LooseObjectPath returns the path of a loose object
// .git/objects/first_2_chars_of_sha/remaining_chars_of_sha
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// .git/objects/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func LooseObjectPath(cfg *config.Config, oid githash.Oid) string {
	sha := oid.String()
	return filepath.Join(ObjectsPath(cfg), sha[:2], sha[2:])
}

// HEADPath returns the path of the HEAD file
func HEADPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, gitpath.HEADPath)
}

// RefsHeadsPath returns the path of the directory containing the
// local branches
func RefsHeadsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, filepath.FromSlash(gitpath.RefsHeadsPath))
}

// RefsTagsPath returns the path of the directory containing the
// local tags
func RefsTagsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, filepath.FromSlash(gitpath.RefsTagsPath))
}
