package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/Nivl/git-odb/internal/env"
	"github.com/Nivl/git-odb/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// run executes the command with the given args from the given directory
// and returns its output
func run(t *testing.T, cwd string, args ...string) (string, error) {
	t.Helper()

	outBuf := new(bytes.Buffer)
	cmd := newRootCmd(cwd, env.NewFromKVList([]string{}))
	cmd.SetArgs(args)
	cmd.SetOut(outBuf)

	var err error
	require.NotPanics(t, func() {
		err = cmd.Execute()
	})
	return outBuf.String(), err
}

// newRepo creates a new repository using the init command
func newRepo(t *testing.T) string {
	t.Helper()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	out, err := run(t, dir, "init")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Initialized empty Git repository in %s\n", filepath.Join(dir, ".git")), out)
	return dir
}

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("should work with -C", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		_, err = run(t, cwd, "init", "-C", dir)
		require.NoError(t, err)

		head, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
		require.NoError(t, err)
		assert.Equal(t, "ref: refs/heads/main\n", string(head))
	})

	t.Run("-C should fail on a file", func(t *testing.T) {
		t.Parallel()

		f, cleanup := testhelper.TempFile(t)
		t.Cleanup(cleanup)

		_, err := run(t, filepath.Dir(f.Name()), "init", "-C", f.Name())
		require.Error(t, err)
	})
}

func TestHashObject(t *testing.T) {
	t.Parallel()

	t.Run("should not write without -w", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		testhelper.WriteTree(t, dir, map[string]testhelper.File{
			"README.md": {Content: "hello world\n"},
		})

		out, err := run(t, dir, "hash-object", "README.md")
		require.NoError(t, err)
		assert.Equal(t, "3b18e512dba79e4c8300dd08aeb37f8e728b8dad\n", out)

		_, err = os.Stat(filepath.Join(dir, ".git", "objects", "3b"))
		assert.True(t, errors.Is(err, os.ErrNotExist), "object should not have been written")
	})

	t.Run("should write with -w", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		testhelper.WriteTree(t, dir, map[string]testhelper.File{
			"empty": {},
		})

		out, err := run(t, dir, "hash-object", "-w", filepath.Join(dir, "empty"))
		require.NoError(t, err)
		assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391\n", out)

		_, err = os.Stat(filepath.Join(dir, ".git", "objects", "e6", "9de29bb2d1d6434b8b29ae775ad8c2e48c5391"))
		assert.NoError(t, err)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		_, err := run(t, dir, "hash-object", "nope")
		require.Error(t, err)
	})
}

func TestWorkflow(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	testhelper.WriteTree(t, dir, map[string]testhelper.File{
		"test.1":    {Content: "1"},
		"test.3":    {Content: "3"},
		"bin/run":   {Content: "#!/bin/sh\n", Executable: true},
		"doc/a.txt": {Content: "a"},
	})

	out, err := run(t, dir, "write-tree")
	require.NoError(t, err)
	treeSHA := strings.TrimSpace(out)
	require.Len(t, treeSHA, githash.OidHexSize)

	out, err = run(t, dir, "ls-tree", "--name-only", treeSHA)
	require.NoError(t, err)
	assert.Equal(t, "bin\ndoc\ntest.1\ntest.3\n", out)

	out, err = run(t, dir, "cat-file", "-t", treeSHA)
	require.NoError(t, err)
	assert.Equal(t, "tree\n", out)

	out, err = run(t, dir, "cat-file", "-p", treeSHA)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "040000 tree "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "\tbin"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "100644 blob "), lines[2])

	out, err = run(t, dir, "commit-tree", treeSHA, "-m", "initial commit")
	require.NoError(t, err)
	firstSHA := strings.TrimSpace(out)

	out, err = run(t, dir, "cat-file", "-p", firstSHA)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tree "+treeSHA+"\nauthor John Doe <john.doe@example.com> "), out)
	assert.True(t, strings.HasSuffix(out, "\n\ninitial commit\n"), out)
	assert.NotContains(t, out, "parent ")

	out, err = run(t, dir, "commit-tree", treeSHA, "-p", firstSHA, "-m", "second commit")
	require.NoError(t, err)
	secondSHA := strings.TrimSpace(out)

	out, err = run(t, dir, "cat-file", "commit", secondSHA)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tree "+treeSHA+"\nparent "+firstSHA+"\nauthor "), out)

	out, err = run(t, dir, "cat-file", "-s", secondSHA)
	require.NoError(t, err)
	assert.NotEqual(t, "0\n", out)

	_, err = run(t, dir, "cat-file", "blob", secondSHA)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBadFile)
}

func TestCatFileParams(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc string
		args []string
	}{
		{
			desc: "-t cannot be used with -p",
			args: []string{"cat-file", "-p", "-t", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "-s cannot be used with -p",
			args: []string{"cat-file", "-p", "-s", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "-s cannot be used with -t",
			args: []string{"cat-file", "-t", "-s", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "no type allowed with -t",
			args: []string{"cat-file", "-t", "blob", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "no type allowed with -p",
			args: []string{"cat-file", "-p", "blob", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "type required when no -p -s -t",
			args: []string{"cat-file", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
		{
			desc: "unknown type",
			args: []string{"cat-file", "tag", "642480605b8b0fd464ab5762e044269cf29a60a3"},
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			dir := newRepo(t)
			_, err := run(t, dir, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		_, err := run(t, dir, "cat-file", "-p", "1111111111111111111111111111111111111111")
		require.Error(t, err)
		assert.Equal(t, exitCodeObjectNotFound, exitCode(err))
	})

	t.Run("invalid object name", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		_, err := run(t, dir, "ls-tree", "--name-only", "nope")
		require.Error(t, err)
		assert.Equal(t, exitCodeInvalidArgument, exitCode(err))
	})

	t.Run("commit-tree requires a message", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		_, err := run(t, dir, "commit-tree", "4b825dc642cb6eb9a060e54bf8d69288fbee4904")
		require.Error(t, err)
		assert.Equal(t, exitCodeInvalidArgument, exitCode(err))
	})

	t.Run("symbolic links are not supported", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		require.NoError(t, os.Symlink("nowhere", filepath.Join(dir, "link")))
		_, err := run(t, dir, "write-tree")
		require.Error(t, err)
		assert.Equal(t, exitCodeUnsupportedEntry, exitCode(err))
	})

	t.Run("corrupt object", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		sha := "1111111111111111111111111111111111111111"
		p := filepath.Join(dir, ".git", "objects", sha[:2])
		require.NoError(t, os.MkdirAll(p, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(p, sha[2:]), []byte("not zlib"), 0o444))

		_, err := run(t, dir, "ls-tree", "--name-only", sha)
		require.Error(t, err)
		assert.Equal(t, exitCodeCorruptObject, exitCode(err))
	})

	t.Run("outside of a repository", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)
		_, err := run(t, dir, "write-tree")
		require.Error(t, err)
		assert.Equal(t, exitCodeFailure, exitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err      error
		expected int
	}{
		{err: xerrors.Errorf("wrapped: %w", ginternals.ErrObjectNotFound), expected: exitCodeObjectNotFound},
		{err: ginternals.ErrCorruptObject, expected: exitCodeCorruptObject},
		{err: xerrors.Errorf("wrapped: %w", object.ErrTreeInvalid), expected: exitCodeMalformedTree},
		{err: ginternals.ErrUnsupportedEntryKind, expected: exitCodeUnsupportedEntry},
		{err: ginternals.ErrInvalidArgument, expected: exitCodeInvalidArgument},
		{err: githash.ErrInvalidOid, expected: exitCodeInvalidArgument},
		{err: errors.New("anything"), expected: exitCodeFailure},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.err.Error()), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, exitCode(tc.err))
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("invalid level should fail", func(t *testing.T) {
		t.Parallel()

		dir := newRepo(t)
		_, err := run(t, dir, "--log-level", "nope", "write-tree")
		require.Error(t, err)
	})

	t.Run("invalid format should fail", func(t *testing.T) {
		t.Parallel()

		_, err := newLogger(new(bytes.Buffer), "debug", "nope")
		require.Error(t, err)
	})

	t.Run("debug logs should be written", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		logger, err := newLogger(buf, "debug", "json")
		require.NoError(t, err)
		logger.Debug("message")
		assert.Contains(t, buf.String(), `"msg":"message"`)
	})
}
