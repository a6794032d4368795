package git

import (
	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// HashBlob creates a Blob containing the given data and returns it.
// The blob is also stored in the object database when persist is true.
// The data are used as-is, without any transformation
func (r *Repository) HashBlob(data []byte, persist bool) (*object.Blob, error) {
	blob := object.NewBlobFromContent(data)
	if !persist {
		return blob, nil
	}

	if _, err := r.dotGit.WriteObject(blob.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the object to the odb: %w", err)
	}
	r.logger.Debug("blob stored", zap.Stringer("oid", blob.ID()), zap.Int("size", blob.Size()))
	return blob, nil
}

// HashFile creates a Blob from the content of the file at the given
// path and returns it.
// The blob is also stored in the object database when persist is true
func (r *Repository) HashFile(path string, persist bool) (*object.Blob, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, xerrors.Errorf("could not read %s: %w", path, err)
	}
	return r.HashBlob(data, persist)
}
