// Package githash contains the digest used to identify git objects
package githash

import (
	"crypto/sha1" //nolint:gosec // sha1 is the object format, not a security primitive
	"encoding/hex"
	"errors"
)

// OidSize is the length of an oid, in bytes
const OidSize = sha1.Size

// OidHexSize is the length of an oid, in hexadecimal characters
const OidHexSize = OidSize * 2

var (
	// NullOid is the value of an empty Oid, or one that's all 0s
	NullOid = Oid{}

	// ErrInvalidOid is returned when a given value isn't a valid Oid
	ErrInvalidOid = errors.New("invalid Oid")
)

// Oid represents a git Object ID: the SHA1 sum of the framed object
type Oid [OidSize]byte

// Sum returns the Oid of the given content.
// The content is expected to be a framed object ("type size\0data"),
// never the raw payload
func Sum(content []byte) Oid {
	return sha1.Sum(content) //nolint:gosec // see import
}

// NewOidFromStr returns an Oid from the given string
// For the SHA 9b91da06e69613397b38e0808e0ba5ee6983251b
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromStr(id string) (Oid, error) {
	if len(id) != OidHexSize {
		return NullOid, ErrInvalidOid
	}
	b, err := hex.DecodeString(id)
	if err != nil {
		return NullOid, ErrInvalidOid
	}
	return NewOidFromBytes(b)
}

// NewOidFromChars returns an Oid from the given char bytes
// For the SHA {'9', 'b', '9', '1', 'd', 'a', ...}
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromStr(string(id))
}

// NewOidFromBytes returns an Oid from the provided byte-encoded oid
// This basically cast a slice that contains an encoded oid into
// a Oid object
func NewOidFromBytes(id []byte) (Oid, error) {
	if len(id) != OidSize {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], id)
	return oid, nil
}

// Bytes returns the raw Oid as []byte.
// This is different than doing []byte(oid.String())
// For the oid 642480605b8b0fd464ab5762e044269cf29a60a3:
// oid.Bytes(): []byte{ 0x64, 0x24, 0x80, ... }
// []byte(oid.String()): []byte{ '6', '4', '2', '4', '8' '0', ... }
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an oid to a lowercase hexadecimal string
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}
