// Package graphcache implements the concurrent in-memory projection of
// the distributed discovery graph: per-endpoint and per-participant
// discovery state, local node overlays, introspection queries, and a
// single change-notification callback fired synchronously on every
// state-changing operation.
//
// The whole cache is guarded by one sync.Mutex (not RWMutex — see
// DESIGN.md): every public method, mutation or query, takes the lock
// for its full duration, and the change callback (if any) fires while
// that lock is still held. Callers must not re-enter the cache from
// the callback.
package graphcache

import (
	"errors"
	"sync"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/rmwlog"
)

// Placeholder names used by the reverse-lookup algorithm when a node
// cannot be identified.
const (
	UnknownNodeName      = "_NODE_NAME_UNKNOWN_"
	UnknownNodeNamespace = "_NODE_NAMESPACE_UNKNOWN_"
	BareDDSNodeName      = "_CREATED_BY_BARE_DDS_APP_"
	BareDDSNodeNamespace = "_CREATED_BY_BARE_DDS_APP_"
)

// ErrNodeNotFound is returned by the by-node introspection queries
// when no node matches the given (name, namespace).
var ErrNodeNotFound = errors.New("graphcache: node not found")

// NodeOrigin classifies the outcome of the endpoint-to-node
// reverse-lookup.
type NodeOrigin int

const (
	// RosNode: the endpoint is claimed by a node in the participant's
	// node-entities list.
	RosNode NodeOrigin = iota
	// UndiscoveredRosNode: the participant is known, but no node in it
	// claims the endpoint — the peer's ParticipantEntitiesInfo hasn't
	// arrived yet or hasn't been processed.
	UndiscoveredRosNode
	// BareDdsParticipant: the participant itself is unknown to the
	// cache — the endpoint belongs to a non-framework DDS application.
	BareDdsParticipant
)

// EndpointKind distinguishes a data writer from a data reader in
// introspection results.
type EndpointKind int

const (
	EndpointWriter EndpointKind = iota
	EndpointReader
)

// EndpointInfo is one row of a by-topic introspection query result.
type EndpointInfo struct {
	NodeName      string
	NodeNamespace string
	TopicType     string
	TypeHash      entities.TypeHash
	Kind          EndpointKind
	Gid           gid.Gid
	QoS           entities.EntityInfo
}

// DemangleFunc maps a vendor-mangled name to a framework-facing one.
// An empty return filters the entry out of aggregate queries.
type DemangleFunc func(string) string

// identity is the no-op DemangleFunc, useful in tests and for callers
// that don't need vendor name mangling.
func identity(s string) string { return s }

// Identity returns the no-op DemangleFunc.
func Identity() DemangleFunc { return identity }

// ChangeCallback is invoked synchronously, while the cache's lock is
// held, exactly once per successful state-changing operation.
type ChangeCallback func()

// Cache is the concurrent discovery graph store. The zero value is not
// usable; construct with New.
type Cache struct {
	mu           sync.Mutex
	writers      map[gid.Gid]entities.EntityInfo
	readers      map[gid.Gid]entities.EntityInfo
	participants map[gid.Gid]entities.ParticipantInfo
	onChange     ChangeCallback
	log          *rmwlog.Logger
	metrics      *instruments
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		writers:      make(map[gid.Gid]entities.EntityInfo),
		readers:      make(map[gid.Gid]entities.EntityInfo),
		participants: make(map[gid.Gid]entities.ParticipantInfo),
		log:          rmwlog.For("graphcache"),
	}
}

// SetChangeCallback replaces any previously registered change callback.
func (c *Cache) SetChangeCallback(cb ChangeCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = cb
}

// ClearChangeCallback removes any registered change callback.
func (c *Cache) ClearChangeCallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = nil
}

// notify fires the registered callback, if any. Must be called with
// the lock held, and only after a change actually happened.
func (c *Cache) notify() {
	c.metrics.recordMutation()
	if c.onChange != nil {
		c.onChange()
	}
}

func endpointMap(c *Cache, isReader bool) map[gid.Gid]entities.EntityInfo {
	if isReader {
		return c.readers
	}
	return c.writers
}
