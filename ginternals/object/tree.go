package object

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/Nivl/git-odb/ginternals/githash"
	"golang.org/x/xerrors"
)

// TreeObjectMode represents the mode of an object inside a tree.
// Non-standard modes (like 0o100664) can be read but cannot be used
// to build a tree
type TreeObjectMode int32

const (
	// ModeFile represents the mode to use for a regular file
	ModeFile TreeObjectMode = 0o100644
	// ModeExecutable represents the mode to use for a executable file
	ModeExecutable TreeObjectMode = 0o100755
	// ModeDirectory represents the mode to use for a directory
	ModeDirectory TreeObjectMode = 0o040000
	// ModeSymLink represents the mode to use for a symbolic link
	ModeSymLink TreeObjectMode = 0o120000
	// ModeGitLink represents the mode to use for a gitlink (submodule)
	ModeGitLink TreeObjectMode = 0o160000
)

// IsValid returns whether the mode is a supported mode or not
func (m TreeObjectMode) IsValid() bool {
	// we use a switch because any missing value will be detected
	// by our linter
	switch m {
	case ModeFile, ModeExecutable, ModeDirectory, ModeSymLink, ModeGitLink:
		return true
	default:
		return false
	}
}

// ObjectType returns the object type associated to a mode
func (m TreeObjectMode) ObjectType() Type {
	switch m {
	case ModeDirectory:
		return TypeTree
	case ModeGitLink:
		return TypeCommit
	case ModeExecutable, ModeFile, ModeSymLink:
		return TypeBlob
	default:
		// We treat anything unexpected as blob
		return TypeBlob
	}
}

// String returns the mode as it's written in a tree: octal, without
// leading 0 (40000 for a directory)
func (m TreeObjectMode) String() string {
	return strconv.FormatInt(int64(m), 8)
}

// TreeEntry represents an entry inside a git tree
type TreeEntry struct {
	Path string
	ID   githash.Oid
	Mode TreeObjectMode
}

// Tree represents a git tree object
type Tree struct {
	rawObject *Object
	// we don't use pointers to make sure entries are immutable
	entries []TreeEntry
}

// NewTree returns a new tree with the given entries.
// The entries are sorted by path, byte-wise, so the ID of the tree
// doesn't depend on the order they were provided in.
// Paths are not checked for duplicates
func NewTree(entries []TreeEntry) *Tree {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	t := &Tree{
		entries: sorted,
	}
	t.rawObject = t.ToObject()
	return t
}

// NewTreeFromObject returns a new tree from an object
//
// A tree has following format:
//
// {octal_mode} {path_name}\0{encoded_sha}
//
// Note:
// - a Tree may have multiple entries
// - encoded_sha is the raw 20 bytes of the oid, not its hex
// representation
func NewTreeFromObject(o *Object) (*Tree, error) {
	if o.Type() != TypeTree {
		return nil, xerrors.Errorf("type %s is not a tree: %w", o.Type(), ErrObjectInvalid)
	}

	entries := []TreeEntry{}
	objData := o.Bytes()
	// the variable i is only use for logs and error messages, not for
	// actual processing
	for i := 1; len(objData) > 0; i++ {
		rawMode, rest, found := bytes.Cut(objData, []byte{' '})
		if !found || len(rawMode) == 0 {
			return nil, xerrors.Errorf("could not retrieve the mode of entry %d: %w", i, ErrTreeInvalid)
		}
		// Any mode is accepted as long as it's octal, since old versions
		// of git were writing non-standard modes
		mode, err := strconv.ParseInt(string(rawMode), 8, 32)
		if err != nil {
			return nil, xerrors.Errorf("invalid mode %q for entry %d: %w", rawMode, i, ErrTreeInvalid)
		}

		path, rest, found := bytes.Cut(rest, []byte{0})
		if !found || len(path) == 0 {
			return nil, xerrors.Errorf("could not retrieve the path of entry %d: %w", i, ErrTreeInvalid)
		}

		if len(rest) < githash.OidSize {
			return nil, xerrors.Errorf("not enough space to retrieve the ID of entry %d: %w", i, ErrTreeInvalid)
		}
		// can't fail since we have the exact amount of bytes needed
		oid, _ := githash.NewOidFromBytes(rest[:githash.OidSize])

		entries = append(entries, TreeEntry{
			Mode: TreeObjectMode(mode),
			Path: string(path),
			ID:   oid,
		})
		objData = rest[githash.OidSize:]
	}

	return &Tree{
		rawObject: o,
		entries:   entries,
	}, nil
}

// DecodeTreeNames parses a framed tree object ({type} {size}\0{entries})
// and returns the name of all its entries, in the order they are stored,
// one per line. Each line ends with a \n.
// An empty tree returns an empty string
func DecodeTreeNames(framed []byte) (string, error) {
	o, err := NewFromFrame(framed)
	if err != nil {
		return "", xerrors.Errorf("could not parse object: %w", err)
	}
	t, err := NewTreeFromObject(o)
	if err != nil {
		return "", err
	}
	return t.Names(), nil
}

// Names returns the paths of all the entries, one per line
func (t *Tree) Names() string {
	sb := new(strings.Builder)
	for _, e := range t.entries {
		sb.WriteString(e.Path)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Entries returns a copy of tree entries
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry returns the entry matching the given path
func (t *Tree) Entry(path string) (TreeEntry, bool) {
	for _, e := range t.entries {
		if e.Path == path {
			return e, true
		}
	}
	return TreeEntry{}, false
}

// ID returns the object's ID
func (t *Tree) ID() githash.Oid {
	return t.rawObject.ID()
}

// ToObject returns an Object representing the tree
func (t *Tree) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)

	// The format of an tree entry is:
	// {octal_mode} {path_name}\0{encoded_sha}
	// A tree object is only composed of a bunch of entries back to back
	for _, e := range t.entries {
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		buf.Write(e.ID.Bytes())
	}

	return New(TypeTree, buf.Bytes())
}
