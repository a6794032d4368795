package git

import (
	"os"
	"path/filepath"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// TreeBuilder is used to build trees
type TreeBuilder struct {
	repo    *Repository
	entries map[string]object.TreeEntry
}

// NewTreeBuilder create a new empty tree builder
func (r *Repository) NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		repo:    r,
		entries: map[string]object.TreeEntry{},
	}
}

// NewTreeBuilderFromTree create a new tree builder containing the
// entries of another tree
func (r *Repository) NewTreeBuilderFromTree(t *object.Tree) *TreeBuilder {
	tb := r.NewTreeBuilder()
	for _, e := range t.Entries() {
		tb.entries[e.Path] = e
	}
	return tb
}

// Insert inserts a new object in a tree. Inserting an object at a path
// already in use replaces the previous entry.
// The object must exist in the odb and match the mode
func (tb *TreeBuilder) Insert(path string, oid githash.Oid, mode object.TreeObjectMode) error {
	if !mode.IsValid() {
		return xerrors.Errorf("invalid mode %o: %w", mode, ginternals.ErrInvalidArgument)
	}
	if path == "" {
		return xerrors.Errorf("an entry needs a name: %w", ginternals.ErrInvalidArgument)
	}

	o, err := tb.repo.dotGit.Object(oid)
	if err != nil {
		return xerrors.Errorf("cannot verify object: %w", err)
	}
	if o.Type() != mode.ObjectType() {
		return xerrors.Errorf("unexpected %s for mode %s: %w", o.Type().String(), mode.String(), object.ErrObjectInvalid)
	}

	tb.insert(path, oid, mode)
	return nil
}

// insert adds an entry without any verification
func (tb *TreeBuilder) insert(path string, oid githash.Oid, mode object.TreeObjectMode) {
	tb.entries[path] = object.TreeEntry{
		Mode: mode,
		Path: path,
		ID:   oid,
	}
}

// Remove removes an object from tree
func (tb *TreeBuilder) Remove(path string) {
	delete(tb.entries, path)
}

// Write creates and persists a new Tree object
func (tb *TreeBuilder) Write() (*object.Tree, error) {
	entries := make([]object.TreeEntry, 0, len(tb.entries))
	for _, e := range tb.entries {
		entries = append(entries, e)
	}

	// NewTree takes care of the ordering
	t := object.NewTree(entries)
	if _, err := tb.repo.dotGit.WriteObject(t.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the object to the odb: %w", err)
	}
	return t, nil
}

// WriteTree creates and stores a tree from the content of the given
// directory, recursively. The blobs of all the files and the trees of
// all the sub-directories are stored as well.
//
// The entries matching the repository's ignored names are skipped,
// as well as the git directory and the object directory of the
// repository if they are part of dirPath.
// An empty directory produces an empty tree.
// ginternals.ErrUnsupportedEntryKind is returned if a symbolic link
// or any non-regular file is found. Objects stored before the error
// are not removed
func (r *Repository) WriteTree(dirPath string) (*object.Tree, error) {
	infos, err := afero.ReadDir(r.fs, dirPath)
	if err != nil {
		return nil, xerrors.Errorf("could not read directory %s: %w", dirPath, err)
	}

	tb := r.NewTreeBuilder()
	for _, info := range infos {
		name := info.Name()
		p := filepath.Join(dirPath, name)
		if r.Config.IsIgnored(name) || r.isStorePath(p) {
			continue
		}

		var oid githash.Oid
		var mode object.TreeObjectMode
		switch m := info.Mode(); {
		case m.IsDir():
			t, err := r.WriteTree(p)
			if err != nil {
				return nil, err
			}
			oid = t.ID()
			mode = object.ModeDirectory
		case m.IsRegular():
			blob, err := r.HashFile(p, true)
			if err != nil {
				return nil, xerrors.Errorf("could not store %s: %w", p, err)
			}
			oid = blob.ID()
			mode = object.ModeFile
			if m.Perm()&0o111 != 0 {
				mode = object.ModeExecutable
			}
		case m&os.ModeSymlink != 0:
			return nil, xerrors.Errorf("%s is a symbolic link: %w", p, ginternals.ErrUnsupportedEntryKind)
		default:
			return nil, xerrors.Errorf("%s has an unsupported type %s: %w", p, m.Type().String(), ginternals.ErrUnsupportedEntryKind)
		}

		// The object has just been stored with the right type
		tb.insert(name, oid, mode)
	}

	t, err := tb.Write()
	if err != nil {
		return nil, xerrors.Errorf("could not write tree of %s: %w", dirPath, err)
	}
	r.logger.Debug("tree stored",
		zap.String("path", dirPath),
		zap.Stringer("oid", t.ID()),
		zap.Int("entries", len(t.Entries())))
	return t, nil
}

// isStorePath returns whether p is the git directory or the object
// directory of the repository
func (r *Repository) isStorePath(p string) bool {
	p = filepath.Clean(p)
	return p == filepath.Clean(r.Config.GitDirPath) ||
		p == filepath.Clean(r.Config.ObjectDirPath)
}
