// Package compression contains the codec used to store objects on disk.
// Loose objects are zlib streams of their framed content
package compression

import (
	"bytes"
	"io"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/internal/errutil"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/xerrors"
)

// Compress returns data zlib compressed
func Compress(data []byte) (out []byte, err error) {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the errors can only come from zlib
	buf := new(bytes.Buffer)
	zw := zlib.NewWriter(buf)
	if _, err = zw.Write(data); err != nil {
		zw.Close() //nolint:errcheck // it failed anyway
		return nil, xerrors.Errorf("could not zlib the data: %w", err)
	}
	// Close() flushes the end of the stream, so it needs to happen
	// before we read the buffer
	if err = zw.Close(); err != nil {
		return nil, xerrors.Errorf("could not finish the zlib stream: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress returns the inflated version of data.
// ginternals.ErrCorruptObject is returned if data is not a valid zlib stream
func Decompress(data []byte) (out []byte, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Errorf("could not read zlib header (%s): %w", err.Error(), ginternals.ErrCorruptObject)
	}
	defer errutil.Close(zr, &err)

	out, err = io.ReadAll(zr)
	if err != nil {
		return nil, xerrors.Errorf("could not inflate data (%s): %w", err.Error(), ginternals.ErrCorruptObject)
	}
	return out, nil
}
