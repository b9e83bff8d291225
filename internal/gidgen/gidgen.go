// Package gidgen synthesizes random Gids for demo traces and test
// fixtures. It is deliberately kept separate from internal/gid, which
// stays a dependency-free ABI type: nothing in the graph cache's
// discovery path needs to manufacture a Gid, only tooling that
// fabricates one for a synthetic scenario.
package gidgen

import (
	"github.com/google/uuid"

	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// New returns a fresh random Gid, built from two RFC 4122 random
// UUIDs truncated to fill gid.StorageSize bytes. It never collides in
// practice, which is all a demo/test fixture generator needs.
func New() gid.Gid {
	var g gid.Gid
	a := uuid.New()
	b := uuid.New()
	n := copy(g[:], a[:])
	copy(g[n:], b[:gid.StorageSize-n])
	return g
}
