// Package ginternals contains the errors and paths shared by all the
// packages working with the object database
package ginternals

import "errors"

// List of errors that can be returned when working with the object
// database.
// IO failures are not listed, the underlying error is returned instead
var (
	// ErrObjectNotFound is an error corresponding to a git object not being
	// found
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject is returned when a stored object cannot be
	// decompressed or has an invalid header
	ErrCorruptObject = errors.New("corrupt object")

	// ErrUnsupportedEntryKind is returned when trying to add a file
	// that cannot be represented in a tree, like a symbolic link
	ErrUnsupportedEntryKind = errors.New("unsupported entry kind")

	// ErrInvalidArgument is returned when a required value is missing or
	// malformed, like an empty tree id
	ErrInvalidArgument = errors.New("invalid argument")
)
