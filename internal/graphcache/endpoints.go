package graphcache

import (
	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// AddEntity records a newly discovered data writer (isReader=false) or
// data reader (isReader=true). It returns true the first time g is
// added and false on every immediate repeat — re-adding an
// already-known gid is a no-op, matching the idempotent add_* contract
// the rest of the discovery-plane operations share.
func (c *Cache) AddEntity(g gid.Gid, info entities.EntityInfo, isReader bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := endpointMap(c, isReader)
	if _, known := m[g]; known {
		return false
	}
	m[g] = info
	c.log.Debug("entity added", "gid", g.String(), "reader", isReader, "topic", info.TopicName)
	c.notify()
	c.metrics.recordEntityDelta(1)
	return true
}

// RemoveEntity forgets a previously discovered endpoint. It returns
// true exactly once per prior successful add, and false if g is
// unknown.
func (c *Cache) RemoveEntity(g gid.Gid, isReader bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := endpointMap(c, isReader)
	if _, ok := m[g]; !ok {
		return false
	}
	delete(m, g)
	c.log.Debug("entity removed", "gid", g.String(), "reader", isReader)
	c.notify()
	c.metrics.recordEntityDelta(-1)
	return true
}

// AddWriter records a newly discovered data writer.
func (c *Cache) AddWriter(g gid.Gid, info entities.EntityInfo) bool {
	return c.AddEntity(g, info, false)
}

// AddReader records a newly discovered data reader.
func (c *Cache) AddReader(g gid.Gid, info entities.EntityInfo) bool {
	return c.AddEntity(g, info, true)
}

// RemoveWriter forgets a previously discovered data writer.
func (c *Cache) RemoveWriter(g gid.Gid) bool {
	return c.RemoveEntity(g, false)
}

// RemoveReader forgets a previously discovered data reader.
func (c *Cache) RemoveReader(g gid.Gid) bool {
	return c.RemoveEntity(g, true)
}

// AddWriterNoTypeHash is the legacy entry point used by callers that
// predate the structured TypeHash field; it records a writer with the
// zero (unknown) type hash.
func (c *Cache) AddWriterNoTypeHash(g gid.Gid, topicName, topicType string, participantGid gid.Gid, qosProfile entities.EntityInfo) bool {
	info := qosProfile
	info.TopicName = topicName
	info.TopicType = topicType
	info.TopicTypeHash = entities.TypeHash{}
	info.ParticipantGid = participantGid
	return c.AddWriter(g, info)
}

// AddReaderNoTypeHash is the reader counterpart of AddWriterNoTypeHash.
func (c *Cache) AddReaderNoTypeHash(g gid.Gid, topicName, topicType string, participantGid gid.Gid, qosProfile entities.EntityInfo) bool {
	info := qosProfile
	info.TopicName = topicName
	info.TopicType = topicType
	info.TopicTypeHash = entities.TypeHash{}
	info.ParticipantGid = participantGid
	return c.AddReader(g, info)
}

// GetWriterCount returns the number of known data writers on topicName,
// matched directly against each entity's recorded topic name (no
// demangling — callers that need a demangled count should filter the
// result of GetWritersInfoByTopic instead).
func (c *Cache) GetWriterCount(topicName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, info := range c.writers {
		if info.TopicName == topicName {
			n++
		}
	}
	return n
}

// GetReaderCount is the reader counterpart of GetWriterCount.
func (c *Cache) GetReaderCount(topicName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, info := range c.readers {
		if info.TopicName == topicName {
			n++
		}
	}
	return n
}
