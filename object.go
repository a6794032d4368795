package git

import (
	"github.com/Nivl/git-odb/ginternals/compression"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"golang.org/x/xerrors"
)

// Object returns the object matching the given ID
func (r *Repository) Object(oid githash.Oid) (*object.Object, error) {
	return r.dotGit.Object(oid)
}

// HasObject returns whether the object matching the given ID is stored
// in the repository
func (r *Repository) HasObject(oid githash.Oid) (bool, error) {
	return r.dotGit.HasObject(oid)
}

// Tree returns the tree matching the given ID
func (r *Repository) Tree(oid githash.Oid) (*object.Tree, error) {
	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, xerrors.Errorf("could not get object %s: %w", oid.String(), err)
	}
	return o.AsTree()
}

// Commit returns the commit matching the given ID
func (r *Repository) Commit(oid githash.Oid) (*object.Commit, error) {
	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, xerrors.Errorf("could not get object %s: %w", oid.String(), err)
	}
	return o.AsCommit()
}

// ListTreeNames returns the names of all the entries of the given tree,
// in the order they are stored. Each name is followed by a \n.
// An empty tree returns an empty string
func (r *Repository) ListTreeNames(oid githash.Oid) (string, error) {
	data, err := r.dotGit.RawObject(oid)
	if err != nil {
		return "", err
	}
	framed, err := compression.Decompress(data)
	if err != nil {
		return "", xerrors.Errorf("could not decompress object %s: %w", oid.String(), err)
	}
	names, err := object.DecodeTreeNames(framed)
	if err != nil {
		return "", xerrors.Errorf("could not decode tree %s: %w", oid.String(), err)
	}
	return names, nil
}
