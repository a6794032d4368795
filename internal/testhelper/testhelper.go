// Package testhelper contains helpers to simplify tests
package testhelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempDir creates a temp dir and returns a cleanup method
func TempDir(t *testing.T) (out string, cleanup func()) {
	t.Helper()

	out, err := os.MkdirTemp("", strings.ReplaceAll(t.Name(), "/", "_")+"_")
	require.NoError(t, err)
	// On some systems (macOS) the temp dir is behind a symlink
	out, err = filepath.EvalSymlinks(out)
	require.NoError(t, err)

	cleanup = func() {
		require.NoError(t, os.RemoveAll(out))
	}
	return out, cleanup
}

// TempFile creates a temp file and returns a cleanup method
func TempFile(t *testing.T) (out *os.File, cleanup func()) {
	t.Helper()

	out, err := os.CreateTemp("", strings.ReplaceAll(t.Name(), "/", "_")+"_")
	require.NoError(t, err)

	cleanup = func() {
		require.NoError(t, out.Close())
		require.NoError(t, os.RemoveAll(out.Name()))
	}
	return out, cleanup
}

// File represents a file to create with WriteTree
type File struct {
	Content    string
	Executable bool
}

// WriteTree creates all the provided files in root. Each key is a
// slash-separated path relative to root, parent directories are
// created automatically.
func WriteTree(t *testing.T, root string, files map[string]File) {
	t.Helper()

	for p, f := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))

		perm := os.FileMode(0o644)
		if f.Executable {
			perm = 0o755
		}
		require.NoError(t, os.WriteFile(fullPath, []byte(f.Content), perm))
		// WriteFile is subject to the umask
		require.NoError(t, os.Chmod(fullPath, perm))
	}
}
