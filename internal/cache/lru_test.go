package cache_test

import (
	"testing"

	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/Nivl/git-odb/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectLRU(t *testing.T) {
	t.Parallel()

	t.Run("Add and get data", func(t *testing.T) {
		t.Parallel()

		c, err := cache.NewObjectLRU(1)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len(), "expected an empty cache")

		o := object.New(object.TypeBlob, []byte("data"))
		rv, ok := c.Get(o.ID())
		assert.False(t, ok, "should not find data that does not exist")
		assert.Nil(t, rv, "returned value should be nil when not found")

		c.Add(o)
		assert.Equal(t, 1, c.Len(), "expected 1 item in the cache")
		assert.True(t, c.Contains(o.ID()))

		rv, ok = c.Get(o.ID())
		assert.True(t, ok, "should have found data")
		assert.Equal(t, o, rv, "unexpected data retrieved from cache")

		c.Clear()
		assert.Equal(t, 0, c.Len(), "expected the cache to have been emptied")
	})

	t.Run("oldest entry should be evicted", func(t *testing.T) {
		t.Parallel()

		c, err := cache.NewObjectLRU(1)
		require.NoError(t, err)

		o1 := object.New(object.TypeBlob, []byte("1"))
		o2 := object.New(object.TypeBlob, []byte("2"))
		c.Add(o1)
		c.Add(o2)
		assert.Equal(t, 1, c.Len())
		assert.False(t, c.Contains(o1.ID()))
		assert.True(t, c.Contains(o2.ID()))
	})

	t.Run("invalid size should fail", func(t *testing.T) {
		t.Parallel()

		_, err := cache.NewObjectLRU(0)
		require.Error(t, err)
	})
}
