// Package cache contains in-memory caches used to avoid reading and
// inflating the same objects over and over
package cache

import (
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/ginternals/object"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/xerrors"
)

// ObjectLRU is a LRU cache of parsed objects, indexed by their ID.
// It's safe for concurrent use
type ObjectLRU struct {
	cache *lru.Cache
}

// NewObjectLRU creates a new LRU cache that can hold up to
// maxEntries objects
func NewObjectLRU(maxEntries int) (*ObjectLRU, error) {
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, xerrors.Errorf("could not create cache of size %d: %w", maxEntries, err)
	}
	return &ObjectLRU{
		cache: c,
	}, nil
}

// Get looks up an object from the cache
func (c *ObjectLRU) Get(oid githash.Oid) (o *object.Object, ok bool) {
	v, ok := c.cache.Get(oid)
	if !ok {
		return nil, false
	}
	o, ok = v.(*object.Object)
	return o, ok
}

// Contains returns whether the object is in the cache, without
// updating its recentness
func (c *ObjectLRU) Contains(oid githash.Oid) bool {
	return c.cache.Contains(oid)
}

// Add adds an object to the cache
func (c *ObjectLRU) Add(o *object.Object) {
	c.cache.Add(o.ID(), o)
}

// Clear purges all stored objects from the cache
func (c *ObjectLRU) Clear() {
	c.cache.Purge()
}

// Len returns the number of objects in the cache
func (c *ObjectLRU) Len() int {
	return c.cache.Len()
}
