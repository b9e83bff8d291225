// Package gid defines the opaque endpoint identifier shared by every
// discovery record in the graph cache.
package gid

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// StorageSize is the ABI-defined width of a Gid, matching the DDS
// vendor SDK's RMW_GID_STORAGE_SIZE constant.
const StorageSize = 24

// Gid is a fixed-width opaque endpoint identifier. It is comparable and
// cheap to copy, so it is used directly as a map key throughout the
// graph cache.
type Gid [StorageSize]byte

// Zero is the zero-valued Gid.
var Zero Gid

// FromBytes copies b into a new Gid. b must be exactly StorageSize
// bytes long.
func FromBytes(b []byte) (Gid, error) {
	var g Gid
	if len(b) != StorageSize {
		return g, fmt.Errorf("gid: expected %d bytes, got %d", StorageSize, len(b))
	}
	copy(g[:], b)
	return g, nil
}

// Bytes returns a copy of the underlying byte array.
func (g Gid) Bytes() [StorageSize]byte {
	return g
}

// IsZero reports whether g is the zero-valued Gid.
func (g Gid) IsZero() bool {
	return g == Zero
}

// Compare returns -1, 0, or 1 as a is byte-wise lexicographically less
// than, equal to, or greater than b.
func Compare(a, b Gid) int {
	return bytes.Compare(a[:], b[:])
}

// Less reports whether a sorts before b.
func Less(a, b Gid) bool {
	return Compare(a, b) < 0
}

// Equal reports whether a and b are the same identifier.
func Equal(a, b Gid) bool {
	return a == b
}

// String renders the Gid as a hex string for logging and debug dumps.
func (g Gid) String() string {
	return hex.EncodeToString(g[:])
}
