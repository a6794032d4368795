package git_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitTree(t *testing.T) {
	t.Parallel()

	t.Run("root commit should not have a parent", func(t *testing.T) {
		t.Parallel()

		r := newMemRepository(t)
		tree, err := r.NewTreeBuilder().Write()
		require.NoError(t, err)

		before := time.Now().Unix()
		c, err := r.CommitTree(tree.ID(), "initial commit", githash.NullOid)
		require.NoError(t, err)
		after := time.Now().Unix()

		assert.Empty(t, c.ParentIDs())
		assert.Equal(t, tree.ID(), c.TreeID())
		assert.Equal(t, "initial commit", c.Message())
		assert.Equal(t, "John Doe", c.Author().Name)
		assert.Equal(t, "john.doe@example.com", c.Author().Email)
		assert.Equal(t, c.Author(), c.Committer())
		assert.GreaterOrEqual(t, c.Author().Time.Unix(), before)
		assert.LessOrEqual(t, c.Author().Time.Unix(), after)

		// the commit should have been stored
		o, err := r.Object(c.ID())
		require.NoError(t, err)
		assert.NotContains(t, string(o.Bytes()), "parent ")

		expectedSig := fmt.Sprintf("John Doe <john.doe@example.com> %d +0000", c.Author().Time.Unix())
		expected := "tree " + tree.ID().String() + "\n" +
			"author " + expectedSig + "\n" +
			"committer " + expectedSig + "\n" +
			"\n" +
			"initial commit\n"
		assert.Equal(t, expected, string(o.Bytes()))
	})

	t.Run("parent should be right after the tree", func(t *testing.T) {
		t.Parallel()

		r := newMemRepository(t)
		tree, err := r.NewTreeBuilder().Write()
		require.NoError(t, err)
		parent, err := r.CommitTree(tree.ID(), "first", githash.NullOid)
		require.NoError(t, err)

		c, err := r.CommitTree(tree.ID(), "second", parent.ID())
		require.NoError(t, err)
		assert.Equal(t, []githash.Oid{parent.ID()}, c.ParentIDs())

		stored, err := r.Commit(c.ID())
		require.NoError(t, err)
		assert.Equal(t, []githash.Oid{parent.ID()}, stored.ParentIDs())
		assert.Equal(t, "second", stored.Message())

		lines := bytes.Split(stored.ToObject().Bytes(), []byte{'\n'})
		require.True(t, len(lines) > 2)
		assert.Equal(t, "tree "+tree.ID().String(), string(lines[0]))
		assert.Equal(t, "parent "+parent.ID().String(), string(lines[1]))
		assert.Equal(t, 1, strings.Count(string(stored.ToObject().Bytes()), "parent "))
	})

	t.Run("dangling references are allowed", func(t *testing.T) {
		t.Parallel()

		r := newMemRepository(t)
		treeID, err := githash.NewOidFromStr("1111111111111111111111111111111111111111")
		require.NoError(t, err)

		c, err := r.CommitTree(treeID, "dangling", githash.NullOid)
		require.NoError(t, err)
		found, err := r.HasObject(c.ID())
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("a tree is required", func(t *testing.T) {
		t.Parallel()

		r := newMemRepository(t)
		_, err := r.CommitTree(githash.NullOid, "message", githash.NullOid)
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrInvalidArgument)
	})
}
