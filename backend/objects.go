package backend

import (
	"errors"
	"io/fs"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/Nivl/git-odb/internal/errutil"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Object returns the object that has given oid.
// ginternals.ErrObjectNotFound is returned if the object doesn't exist,
// ginternals.ErrCorruptObject is returned if the stored data cannot be
// decoded or doesn't match the oid
func (b *Backend) Object(oid githash.Oid) (*object.Object, error) {
	if b.cache != nil {
		if o, found := b.cache.Get(oid); found {
			b.logger.Debug("object cache hit", zap.Stringer("oid", oid))
			return o, nil
		}
	}

	data, err := b.RawObject(oid)
	if err != nil {
		return nil, err
	}
	o, err := object.NewFromCompressed(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse object %s: %w", oid.String(), err)
	}
	if o.ID() != oid {
		return nil, xerrors.Errorf("object %s has been stored with the ID %s: %w", o.ID().String(), oid.String(), ginternals.ErrCorruptObject)
	}

	if b.cache != nil {
		b.cache.Add(o)
	}
	return o, nil
}

// RawObject returns the object as it is stored on disk (zlib
// compressed)
// ginternals.ErrObjectNotFound is returned if the object doesn't exist
func (b *Backend) RawObject(oid githash.Oid) ([]byte, error) {
	p := ginternals.LooseObjectPath(b.config, oid)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, xerrors.Errorf("object %s: %w", oid.String(), ginternals.ErrObjectNotFound)
		}
		return nil, xerrors.Errorf("could not read object %s at path %s: %w", oid.String(), p, err)
	}
	return data, nil
}

// HasObject returns whether an object exists in the odb
func (b *Backend) HasObject(oid githash.Oid) (bool, error) {
	if b.cache != nil && b.cache.Contains(oid) {
		return true, nil
	}

	p := ginternals.LooseObjectPath(b.config, oid)
	found, err := afero.Exists(b.fs, p)
	if err != nil {
		return false, xerrors.Errorf("could not check if object %s exists: %w", oid.String(), err)
	}
	return found, nil
}

// WriteObject compresses and adds an object to the odb.
// Writing an object that already exists is a no-op
func (b *Backend) WriteObject(o *object.Object) (githash.Oid, error) {
	found, err := b.HasObject(o.ID())
	if err != nil {
		return githash.NullOid, err
	}
	if found {
		b.logger.Debug("object already stored", zap.Stringer("oid", o.ID()))
		return o.ID(), nil
	}

	data, err := o.Compress()
	if err != nil {
		return githash.NullOid, xerrors.Errorf("could not compress object: %w", err)
	}
	if err = b.WriteRawObject(o.ID(), data); err != nil {
		return githash.NullOid, err
	}

	if b.cache != nil {
		b.cache.Add(o)
	}
	return o.ID(), nil
}

// WriteRawObject persists already compressed data at the path of the
// given oid. The data are not checked.
// Any existing file at the same path is overwritten
func (b *Backend) WriteRawObject(oid githash.Oid, data []byte) (err error) {
	// We need to make sure the dest dir exists. MkdirAll doesn't fail
	// if the directory already exists
	dest := ginternals.LooseObjectDirPath(b.config, oid)
	if err = b.fs.MkdirAll(dest, 0o755); err != nil {
		return xerrors.Errorf("could not create the destination directory %s: %w", dest, err)
	}

	// The data are first written in a temporary file that is then moved
	// to its final destination, so a reader never sees a partial object
	tmp, err := afero.TempFile(b.fs, dest, "tmp_obj_")
	if err != nil {
		return xerrors.Errorf("could not create temporary file in %s: %w", dest, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			// the file may have already been moved
			if e := b.fs.Remove(tmpPath); e != nil && !errors.Is(e, fs.ErrNotExist) {
				b.logger.Warn("could not remove temporary object", zap.String("path", tmpPath), zap.Error(e))
			}
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		errutil.Close(tmp, &err)
		return xerrors.Errorf("could not write object %s: %w", oid.String(), err)
	}
	if err = tmp.Close(); err != nil {
		return xerrors.Errorf("could not close temporary file %s: %w", tmpPath, err)
	}

	// We use 444 because git object are read-only
	if err = b.fs.Chmod(tmpPath, 0o444); err != nil {
		return xerrors.Errorf("could not set permissions on %s: %w", tmpPath, err)
	}

	p := ginternals.LooseObjectPath(b.config, oid)
	if err = b.fs.Rename(tmpPath, p); err != nil {
		return xerrors.Errorf("could not persist object %s at path %s: %w", oid.String(), p, err)
	}

	b.logger.Debug("object written", zap.Stringer("oid", oid), zap.Int("size", len(data)))
	return nil
}
