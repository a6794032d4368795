package git

import (
	"time"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// CommitTree creates and stores a new commit pointing to the given tree.
// parentID is optional, use githash.NullOid for a root commit.
// The author and committer are both the identity of the repository's
// config, dated now.
// The tree and the parent are not checked for existence
func (r *Repository) CommitTree(treeID githash.Oid, message string, parentID githash.Oid) (*object.Commit, error) {
	if treeID.IsZero() {
		return nil, xerrors.Errorf("a tree is required: %w", ginternals.ErrInvalidArgument)
	}

	opts := &object.CommitOptions{
		Message: message,
	}
	if !parentID.IsZero() {
		opts.ParentsID = []githash.Oid{parentID}
	}

	c := object.NewCommit(treeID, r.signature(), opts)
	if _, err := r.dotGit.WriteObject(c.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the object to the odb: %w", err)
	}
	r.logger.Debug("commit stored", zap.Stringer("oid", c.ID()), zap.Stringer("tree", treeID))
	return c, nil
}

// signature returns the signature of the repository's identity,
// dated now
func (r *Repository) signature() object.Signature {
	id := r.Config.Identity
	loc := id.Location
	if loc == nil {
		loc = time.UTC
	}
	return object.Signature{
		Name:  id.Name,
		Email: id.Email,
		Time:  time.Now().In(loc),
	}
}
