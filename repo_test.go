package git_test

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/Nivl/git-odb"
	"github.com/Nivl/git-odb/ginternals/config"
	"github.com/Nivl/git-odb/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRepository creates a new repository in a temporary directory and
// returns it with the path of its working tree
func newRepository(t *testing.T) (r *git.Repository, dir string) {
	t.Helper()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	r, err := git.InitRepository(dir)
	require.NoError(t, err, "failed creating a repo")
	t.Cleanup(func() {
		require.NoError(t, r.Close(), "failed closing repo")
	})
	return r, dir
}

// newMemRepository creates a new repository in memory
func newMemRepository(t *testing.T) *git.Repository {
	t.Helper()

	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		FS:               afero.NewMemMapFs(),
		WorkingDirectory: filepath.Join(string(filepath.Separator), "repo"),
		SkipGitDirLookUp: true,
	})
	require.NoError(t, err)

	r, err := git.InitRepositoryWithParams(cfg, git.Options{})
	require.NoError(t, err, "failed creating a repo")
	t.Cleanup(func() {
		require.NoError(t, r.Close(), "failed closing repo")
	})
	return r
}

func TestInitRepository(t *testing.T) {
	t.Parallel()

	t.Run("should create the .git directory", func(t *testing.T) {
		t.Parallel()

		r, dir := newRepository(t)
		assert.Equal(t, dir, r.Config.WorkTreePath)
		assert.Equal(t, filepath.Join(dir, ".git"), r.Config.GitDirPath)

		checks := []struct {
			path  string
			isDir bool
		}{
			{path: ".git", isDir: true},
			{path: filepath.Join(".git", "objects"), isDir: true},
			{path: filepath.Join(".git", "refs", "heads"), isDir: true},
			{path: filepath.Join(".git", "refs", "tags"), isDir: true},
			{path: filepath.Join(".git", "HEAD"), isDir: false},
			{path: filepath.Join(".git", "config"), isDir: false},
		}
		for _, check := range checks {
			fp := filepath.Join(dir, check.path)
			s, err := os.Stat(fp)
			require.NoError(t, err, "%s should exist at %s", check.path, fp)
			assert.Equal(t, check.isDir, s.IsDir(), "unexpected type for %s", check.path)
		}
	})

	t.Run("re-initializing a repository should work", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		r, err := git.InitRepository(dir)
		require.NoError(t, err)
		require.NoError(t, r.Close())
	})
}

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	t.Run("should open an existing repository", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		r, err := git.OpenRepository(dir)
		require.NoError(t, err, "failed loading a repo")
		require.NotNil(t, r, "repository should not be nil")
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})

		assert.Equal(t, dir, r.Config.WorkTreePath)
		assert.Equal(t, filepath.Join(dir, ".git"), r.Config.GitDirPath)
	})

	t.Run("should open a repository from a sub directory", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		sub := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		r, err := git.OpenRepository(sub)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})
		assert.Equal(t, dir, r.Config.WorkTreePath)
	})

	t.Run("should fail if HEAD is missing", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		require.NoError(t, os.Remove(filepath.Join(dir, ".git", "HEAD")))

		_, err := git.OpenRepository(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, git.ErrRepositoryNotExist)
	})

	t.Run("should fail if the repository format is not supported", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		cfg := "[core]\n\trepositoryformatversion = 1\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(cfg), 0o644))

		_, err := git.OpenRepository(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, git.ErrRepositoryUnsupportedVersion)
		assert.ErrorIs(t, err, config.ErrUnsupportedFormatVersion)
	})

	t.Run("a missing config file should be treated as version 0", func(t *testing.T) {
		t.Parallel()

		_, dir := newRepository(t)
		require.NoError(t, os.Remove(filepath.Join(dir, ".git", "config")))

		r, err := git.OpenRepository(dir)
		require.NoError(t, err)
		require.NoError(t, r.Close())
	})

	t.Run("should fail outside of a repository", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		_, err := git.OpenRepository(dir)
		require.Error(t, err)
	})
}
