package graphcache

import (
	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/wire"
)

// UpdateParticipantEntities applies a peer's ParticipantEntitiesInfo
// discovery message, replacing that participant's node-entities
// overlay wholesale (the message is always a full snapshot, never a
// delta). The participant's enclave label, if already known locally,
// is preserved — enclaves are never carried on the wire. It returns
// the participant's state after the update and whether the
// participant was newly created by this call.
func (c *Cache) UpdateParticipantEntities(msg wire.ParticipantEntitiesInfo) (entities.ParticipantInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := msg.Gid.ToGid()
	existing, known := c.participants[g]

	updated := entities.ParticipantInfo{
		Enclave:             existing.Enclave,
		NodeEntitiesInfoSeq: msg.ToNodeEntitiesInfoSeq(),
	}
	c.participants[g] = updated

	c.log.Debug("participant entities updated", "gid", g.String(), "nodes", len(updated.NodeEntitiesInfoSeq), "new", !known)
	c.notify()
	return updated, !known
}
