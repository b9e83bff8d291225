package graphcache

import (
	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/wire"
)

// The local-node-plane operations mutate the node-entities overlay for
// a participant this process owns, and return the participant's full
// ParticipantEntitiesInfo afterward so the caller can publish it on
// the discovery topic without a separate read-back.

func (c *Cache) participantSnapshotLocked(pg gid.Gid) wire.ParticipantEntitiesInfo {
	return wire.FromParticipantInfo(pg, c.participants[pg])
}

// AddNode creates an empty node-entities record for (name, namespace)
// under participant pg. It is a no-op if that node already exists.
func (c *Cache) AddNode(pg gid.Gid, name, namespace string) wire.ParticipantEntitiesInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.participants[pg]
	key := entities.Key{Name: name, Namespace: namespace}
	if p.FindNode(key) < 0 {
		p.NodeEntitiesInfoSeq = append(p.NodeEntitiesInfoSeq, entities.NodeEntitiesInfo{
			NodeName:      name,
			NodeNamespace: namespace,
		})
		c.participants[pg] = p
		c.log.Debug("node added", "participant", pg.String(), "node", namespace+name)
		c.notify()
	}
	return c.participantSnapshotLocked(pg)
}

// RemoveNode forgets the node-entities record for (name, namespace)
// under participant pg. It is a no-op if no such node exists.
func (c *Cache) RemoveNode(pg gid.Gid, name, namespace string) wire.ParticipantEntitiesInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.participants[pg]
	key := entities.Key{Name: name, Namespace: namespace}
	if idx := p.FindNode(key); idx >= 0 {
		p.NodeEntitiesInfoSeq = append(p.NodeEntitiesInfoSeq[:idx], p.NodeEntitiesInfoSeq[idx+1:]...)
		c.participants[pg] = p
		c.log.Debug("node removed", "participant", pg.String(), "node", namespace+name)
		c.notify()
	}
	return c.participantSnapshotLocked(pg)
}

// associate appends an endpoint gid to a node's writer or reader list,
// creating the node record if it doesn't already exist. Re-associating
// an already-associated endpoint is a no-op.
func (c *Cache) associate(pg gid.Gid, name, namespace string, eg gid.Gid, isReader bool) wire.ParticipantEntitiesInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.participants[pg]
	key := entities.Key{Name: name, Namespace: namespace}
	idx := p.FindNode(key)
	if idx < 0 {
		p.NodeEntitiesInfoSeq = append(p.NodeEntitiesInfoSeq, entities.NodeEntitiesInfo{
			NodeName:      name,
			NodeNamespace: namespace,
		})
		idx = len(p.NodeEntitiesInfoSeq) - 1
	}

	node := p.NodeEntitiesInfoSeq[idx]
	seq := node.WriterGidSeq
	if isReader {
		seq = node.ReaderGidSeq
	}
	for _, existing := range seq {
		if existing == eg {
			c.participants[pg] = p
			return c.participantSnapshotLocked(pg)
		}
	}
	seq = append(seq, eg)
	if isReader {
		node.ReaderGidSeq = seq
	} else {
		node.WriterGidSeq = seq
	}
	p.NodeEntitiesInfoSeq[idx] = node
	c.participants[pg] = p
	c.log.Debug("endpoint associated", "participant", pg.String(), "node", namespace+name, "gid", eg.String(), "reader", isReader)
	c.notify()
	return c.participantSnapshotLocked(pg)
}

// dissociate removes an endpoint gid from a node's writer or reader
// list. It is a no-op if the node or the association doesn't exist.
func (c *Cache) dissociate(pg gid.Gid, name, namespace string, eg gid.Gid, isReader bool) wire.ParticipantEntitiesInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.participants[pg]
	key := entities.Key{Name: name, Namespace: namespace}
	idx := p.FindNode(key)
	if idx < 0 {
		return c.participantSnapshotLocked(pg)
	}

	node := p.NodeEntitiesInfoSeq[idx]
	seq := node.WriterGidSeq
	if isReader {
		seq = node.ReaderGidSeq
	}
	for i, existing := range seq {
		if existing == eg {
			seq = append(seq[:i], seq[i+1:]...)
			if isReader {
				node.ReaderGidSeq = seq
			} else {
				node.WriterGidSeq = seq
			}
			p.NodeEntitiesInfoSeq[idx] = node
			c.participants[pg] = p
			c.log.Debug("endpoint dissociated", "participant", pg.String(), "node", namespace+name, "gid", eg.String(), "reader", isReader)
			c.notify()
			break
		}
	}
	return c.participantSnapshotLocked(pg)
}

// AssociateWriter records that node (name, namespace) under
// participant pg owns the data writer wg.
func (c *Cache) AssociateWriter(pg gid.Gid, name, namespace string, wg gid.Gid) wire.ParticipantEntitiesInfo {
	return c.associate(pg, name, namespace, wg, false)
}

// DissociateWriter undoes a prior AssociateWriter.
func (c *Cache) DissociateWriter(pg gid.Gid, name, namespace string, wg gid.Gid) wire.ParticipantEntitiesInfo {
	return c.dissociate(pg, name, namespace, wg, false)
}

// AssociateReader records that node (name, namespace) under
// participant pg owns the data reader rg.
func (c *Cache) AssociateReader(pg gid.Gid, name, namespace string, rg gid.Gid) wire.ParticipantEntitiesInfo {
	return c.associate(pg, name, namespace, rg, true)
}

// DissociateReader undoes a prior AssociateReader.
func (c *Cache) DissociateReader(pg gid.Gid, name, namespace string, rg gid.Gid) wire.ParticipantEntitiesInfo {
	return c.dissociate(pg, name, namespace, rg, true)
}
