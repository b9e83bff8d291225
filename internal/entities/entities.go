// Package entities defines the value-type discovery records the graph
// cache stores: per-endpoint EntityInfo, per-participant
// ParticipantInfo, and the NodeEntitiesInfo records layered over a
// participant by peer discovery messages.
package entities

import (
	"fmt"

	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/qos"
)

// TypeHashSize is the width of the structured type-hash digest.
const TypeHashSize = 32

// TypeHash is a structured, versioned hash of a topic's message type.
// The zero value means "unknown".
type TypeHash struct {
	Version uint8
	Value   [TypeHashSize]byte
}

// IsUnset reports whether h is the zero-valued, "unknown" hash.
func (h TypeHash) IsUnset() bool {
	return h.Version == 0
}

// String renders the hash in the RIHS01_<hex> form used on the wire.
func (h TypeHash) String() string {
	if h.IsUnset() {
		return ""
	}
	return fmt.Sprintf("RIHS%02d_%x", h.Version, h.Value)
}

// EntityInfo is an immutable record of a single discovered data writer
// or data reader.
type EntityInfo struct {
	TopicName      string
	TopicType      string
	TopicTypeHash  TypeHash
	ParticipantGid gid.Gid
	QoS            qos.Profile
}

// NodeEntitiesInfo is the set of endpoints a single framework node
// owns within one participant.
type NodeEntitiesInfo struct {
	NodeName      string
	NodeNamespace string
	WriterGidSeq  []gid.Gid
	ReaderGidSeq  []gid.Gid
}

// Key identifies a node within a participant by its (name, namespace)
// pair, which spec.md requires to be unique within one participant.
type Key struct {
	Name      string
	Namespace string
}

// ParticipantInfo is the per-participant state the graph cache tracks:
// a security enclave label plus the node-entities layered over this
// participant by local calls or peer discovery messages.
type ParticipantInfo struct {
	Enclave             string
	NodeEntitiesInfoSeq []NodeEntitiesInfo
}

// FindNode returns the index of the node matching key within p, or -1
// if no such node exists.
func (p ParticipantInfo) FindNode(key Key) int {
	for i, n := range p.NodeEntitiesInfoSeq {
		if n.NodeName == key.Name && n.NodeNamespace == key.Namespace {
			return i
		}
	}
	return -1
}
