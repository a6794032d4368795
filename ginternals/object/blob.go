package object

import "github.com/Nivl/git-odb/ginternals/githash"

// Blob represents a blob object.
// The content of a blob is opaque, it's never transformed in any way
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob object from a git Object
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// NewBlobFromContent returns a new Blob containing the given data
func NewBlobFromContent(data []byte) *Blob {
	return NewBlob(New(TypeBlob, data))
}

// ID returns the blob's ID
func (b *Blob) ID() githash.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.rawObject.Bytes()
}

// Size returns the size of the blob
func (b *Blob) Size() int {
	return b.rawObject.Size()
}

// ToObject returns the Blob's underlying Object
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
