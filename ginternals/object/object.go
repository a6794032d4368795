// Package object contains methods and objects to work with git objects
package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/compression"
	"github.com/Nivl/git-odb/ginternals/githash"
	"golang.org/x/xerrors"
)

var (
	// ErrObjectUnknown represents an error thrown when encoutering an
	// unknown object
	ErrObjectUnknown = errors.New("invalid object type")

	// ErrObjectInvalid represents an error thrown when an object contains
	// unexpected data or when the wrong object is provided to a method.
	// Ex. Parsing a blob as a tree
	ErrObjectInvalid = errors.New("invalid object")

	// ErrTreeInvalid represents an error thrown when parsing an invalid
	// tree object
	ErrTreeInvalid = errors.New("invalid tree")

	// ErrCommitInvalid represents an error thrown when parsing an invalid
	// commit object
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type represents the type of an object
type Type int8

// List of all the supported object types.
// The values match the ones used by git in packfiles
const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	default:
		panic(fmt.Sprintf("unknown object type %d", t))
	}
}

// IsValid check id the object type is an existing type
func (t Type) IsValid() bool {
	switch t {
	case TypeCommit, TypeTree, TypeBlob:
		return true
	default:
		return false
	}
}

// NewTypeFromString returns an Type from its string
// representation
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// Object represents a git object. An object can be of multiple types
// but they all share similarities (same storage system, same header,
// etc.).
// Object are stored in .git/objects, zlib compressed and framed as:
// {type} {size}\0{content}
// The ID of an object is the SHA1 of its framed content
// https://git-scm.com/book/en/v2/Git-Internals-Git-Objects
type Object struct {
	id      githash.Oid
	typ     Type
	content []byte
}

// New creates a new git object of the given type
func New(typ Type, content []byte) *Object {
	o := &Object{
		typ:     typ,
		content: content,
	}
	o.id = githash.Sum(o.Frame())
	return o
}

// ID returns the ID of the object.
func (o *Object) ID() githash.Oid {
	return o.id
}

// Size returns the size of the object
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the Type for this object
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the object's contents
func (o *Object) Bytes() []byte {
	return o.content
}

// Frame returns the object as it should be hashed and stored:
// The type in ascii, followed by a space, followed by the size in ascii,
// followed by a null character (0), followed by the object data
func (o *Object) Frame() []byte {
	size := strconv.Itoa(o.Size())
	typ := o.Type().String()

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	w := bytes.NewBuffer(make([]byte, 0, len(typ)+len(size)+2+o.Size()))
	w.WriteString(typ)
	w.WriteByte(' ')
	w.WriteString(size)
	w.WriteByte(0)
	w.Write(o.content)
	return w.Bytes()
}

// Compress returns the framed object zlib compressed
func (o *Object) Compress() ([]byte, error) {
	data, err := compression.Compress(o.Frame())
	if err != nil {
		return nil, xerrors.Errorf("could not compress object %s: %w", o.ID().String(), err)
	}
	return data, nil
}

// NewFromFrame parses a framed object ({type} {size}\0{content}).
// ginternals.ErrCorruptObject is returned if the header is invalid or
// if the size doesn't match the content
func NewFromFrame(data []byte) (*Object, error) {
	header, content, found := bytes.Cut(data, []byte{0})
	if !found {
		return nil, xerrors.Errorf("could not find the end of the header: %w", ginternals.ErrCorruptObject)
	}

	rawType, rawSize, found := bytes.Cut(header, []byte{' '})
	if !found {
		return nil, xerrors.Errorf("could not find the size in header %q: %w", header, ginternals.ErrCorruptObject)
	}
	typ, err := NewTypeFromString(string(rawType))
	if err != nil {
		return nil, xerrors.Errorf("unsupported type %q (%s): %w", rawType, err.Error(), ginternals.ErrCorruptObject)
	}
	size, err := strconv.Atoi(string(rawSize))
	if err != nil || size < 0 {
		return nil, xerrors.Errorf("invalid size %q: %w", rawSize, ginternals.ErrCorruptObject)
	}
	if size != len(content) {
		return nil, xerrors.Errorf("object marked as size %d, but has %d: %w", size, len(content), ginternals.ErrCorruptObject)
	}

	return New(typ, content), nil
}

// NewFromCompressed inflates and parses an object as stored on disk
func NewFromCompressed(data []byte) (*Object, error) {
	framed, err := compression.Decompress(data)
	if err != nil {
		return nil, err
	}
	return NewFromFrame(framed)
}

// AsBlob parses the object as Blob
func (o *Object) AsBlob() *Blob {
	return NewBlob(o)
}

// AsTree parses the object as Tree
func (o *Object) AsTree() (*Tree, error) {
	return NewTreeFromObject(o)
}

// AsCommit parses the object as Commit
func (o *Object) AsCommit() (*Commit, error) {
	return NewCommitFromObject(o)
}
