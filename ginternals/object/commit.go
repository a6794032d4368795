package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nivl/git-odb/ginternals/githash"
	"golang.org/x/xerrors"
)

// ErrSignatureInvalid is an error thrown when the signature of a commit
// couldn't be parsed
var ErrSignatureInvalid = errors.New("commit signature is invalid")

// Signature represents the author/committer and time of a commit
type Signature struct {
	Time  time.Time
	Name  string
	Email string
}

// String returns a stringified version of the Signature
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.Time.Unix(), s.Time.Format("-0700"))
}

// IsZero returns whether the signature has Zero value
func (s Signature) IsZero() bool {
	return s.Time.IsZero() && s.Name == "" && s.Email == ""
}

// NewSignature generates a signature at the current date and time
func NewSignature(name, email string) Signature {
	return Signature{
		Name:  name,
		Email: email,
		Time:  time.Now(),
	}
}

// NewSignatureFromBytes returns a signature from an array of byte
//
// A signature has the following format:
// User Name <user.email@domain.tld> timestamp timezone
// Ex:
// John Doe <john.doe@example.com> 1566115917 -0700
func NewSignatureFromBytes(b []byte) (Signature, error) {
	sig := Signature{}
	if len(b) == 0 {
		return sig, xerrors.Errorf("couldn't retrieve the name: %w", ErrSignatureInvalid)
	}

	// The name goes up to the "<", with an extra space we need to trim
	rawName, rest, found := bytes.Cut(b, []byte{'<'})
	if !found {
		return sig, xerrors.Errorf("signature stopped after the name: %w", ErrSignatureInvalid)
	}
	sig.Name = strings.TrimSpace(string(rawName))

	// Now we get the email, which is between "<" and ">"
	email, rest, found := bytes.Cut(rest, []byte{'>'})
	if !found || len(email) == 0 {
		return sig, xerrors.Errorf("couldn't retrieve the email: %w", ErrSignatureInvalid)
	}
	sig.Email = string(email)

	rest = bytes.TrimPrefix(rest, []byte{' '})
	if len(rest) == 0 {
		return sig, xerrors.Errorf("signature stopped after the email: %w", ErrSignatureInvalid)
	}

	// Next is the timestamp and the timezone
	timestamp, timezone, found := bytes.Cut(rest, []byte{' '})
	if !found {
		return sig, xerrors.Errorf("invalid timestamp %q, no timezone: %w", timestamp, ErrSignatureInvalid)
	}
	if len(timezone) == 0 {
		return sig, xerrors.Errorf("signature stopped after the timestamp: %w", ErrSignatureInvalid)
	}

	t, err := strconv.ParseInt(string(timestamp), 10, 64)
	if err != nil {
		return sig, xerrors.Errorf("invalid timestamp %q (%s): %w", timestamp, err.Error(), ErrSignatureInvalid)
	}

	// To get the location we can just parse the time with an empty
	// date and copy it over to the signature
	tz, err := time.Parse("-0700", string(timezone))
	if err != nil {
		return sig, xerrors.Errorf("invalid timezone format %q (%s): %w", timezone, err.Error(), ErrSignatureInvalid)
	}
	sig.Time = time.Unix(t, 0).In(tz.Location())
	return sig, nil
}

// CommitOptions represents all the optional data available to create a commit
type CommitOptions struct {
	Message string
	// Committer represent the person creating the commit.
	// If not provided, the author will be used as committer
	Committer Signature
	ParentsID []githash.Oid
}

// Commit represents a commit object
type Commit struct {
	rawObject *Object

	author    Signature
	committer Signature

	message string

	parentIDs []githash.Oid
	treeID    githash.Oid
}

// NewCommit creates a new Commit object
// Any provided Oids won't be check
func NewCommit(treeID githash.Oid, author Signature, opts *CommitOptions) *Commit {
	if opts == nil {
		opts = &CommitOptions{}
	}
	c := &Commit{
		treeID:    treeID,
		author:    author,
		committer: opts.Committer,
		message:   opts.Message,
		parentIDs: opts.ParentsID,
	}

	if c.committer.IsZero() {
		c.committer = author
	}
	c.rawObject = c.ToObject()

	return c
}

// NewCommitFromObject creates a commit from a raw object
//
// A commit has following format:
//
// tree {sha}
// parent {sha}
// author {author_name} <{author_email}> {author_date_seconds} {author_date_timezone}
// committer {committer_name} <{committer_email}> {committer_date_seconds} {committer_date_timezone}
// {a blank line}
// {commit message}
//
// Note:
// - A commit can have 0 or 1 parent line.
//   The very first commit of a repo has no parents
// - The message is always followed by a \n that is not part of the
//   message
func NewCommitFromObject(o *Object) (*Commit, error) {
	if o.Type() != TypeCommit {
		return nil, xerrors.Errorf("type %s is not a commit: %w", o.Type(), ErrObjectInvalid)
	}
	ci := &Commit{
		rawObject: o,
	}

	headers, message, found := bytes.Cut(o.Bytes(), []byte("\n\n"))
	if !found {
		return nil, xerrors.Errorf("could not find the end of the headers: %w", ErrCommitInvalid)
	}
	ci.message = string(bytes.TrimSuffix(message, []byte{'\n'}))

	for i, line := range bytes.Split(headers, []byte{'\n'}) {
		key, value, found := bytes.Cut(line, []byte{' '})
		if !found {
			return nil, xerrors.Errorf("line %d has no value: %w", i+1, ErrCommitInvalid)
		}

		var err error
		switch string(key) {
		case "tree":
			ci.treeID, err = githash.NewOidFromChars(value)
			if err != nil {
				return nil, xerrors.Errorf("could not parse tree id %q (%s): %w", value, err.Error(), ErrCommitInvalid)
			}
		case "parent":
			oid, err := githash.NewOidFromChars(value)
			if err != nil {
				return nil, xerrors.Errorf("could not parse parent id %q (%s): %w", value, err.Error(), ErrCommitInvalid)
			}
			ci.parentIDs = append(ci.parentIDs, oid)
		case "author":
			ci.author, err = NewSignatureFromBytes(value)
			if err != nil {
				return nil, xerrors.Errorf("could not parse author signature: %w", err)
			}
		case "committer":
			ci.committer, err = NewSignatureFromBytes(value)
			if err != nil {
				return nil, xerrors.Errorf("could not parse committer signature: %w", err)
			}
		default:
			return nil, xerrors.Errorf("unexpected header %q: %w", key, ErrCommitInvalid)
		}
	}

	// validate the commit
	if ci.author.IsZero() {
		return nil, xerrors.Errorf("commit has no author: %w", ErrCommitInvalid)
	}
	if ci.treeID.IsZero() {
		return nil, xerrors.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}

	return ci, nil
}

// ID returns the SHA of the commit object
func (c *Commit) ID() githash.Oid {
	return c.rawObject.ID()
}

// Author returns the Signature of the person that made the changes
func (c *Commit) Author() Signature {
	return c.author
}

// Committer returns the Signature of the person that created the commit
func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the commit's message
func (c *Commit) Message() string {
	return c.message
}

// ParentIDs returns the list of SHA of the parent commits (if any)
func (c *Commit) ParentIDs() []githash.Oid {
	out := make([]githash.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// TreeID returns the SHA of the commit's tree
func (c *Commit) TreeID() githash.Oid {
	return c.treeID
}

// ToObject returns the underlying Object
func (c *Commit) ToObject() *Object {
	if c.rawObject != nil {
		return c.rawObject
	}

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	buf.WriteString("tree ")
	buf.WriteString(c.treeID.String())
	buf.WriteByte('\n')

	for _, p := range c.parentIDs {
		buf.WriteString("parent ")
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("author ")
	buf.WriteString(c.author.String())
	buf.WriteByte('\n')

	buf.WriteString("committer ")
	buf.WriteString(c.committer.String())
	buf.WriteByte('\n')

	buf.WriteByte('\n')
	buf.WriteString(c.message)
	buf.WriteByte('\n')
	return New(TypeCommit, buf.Bytes())
}
