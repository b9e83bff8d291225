package graphcache

import (
	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// resolveOriginLocked implements the reverse-lookup tri-state: given
// the owning participant and an endpoint gid, it reports which node
// (if any) claims the endpoint. Callers must hold c.mu.
func (c *Cache) resolveOriginLocked(pg, eg gid.Gid, isReader bool) (origin NodeOrigin, name, namespace string) {
	p, known := c.participants[pg]
	if !known {
		return BareDdsParticipant, BareDDSNodeName, BareDDSNodeNamespace
	}
	for _, n := range p.NodeEntitiesInfoSeq {
		seq := n.WriterGidSeq
		if isReader {
			seq = n.ReaderGidSeq
		}
		for _, g := range seq {
			if g == eg {
				return RosNode, n.NodeName, n.NodeNamespace
			}
		}
	}
	return UndiscoveredRosNode, UnknownNodeName, UnknownNodeNamespace
}

// ResolveOrigin is the exported form of resolveOriginLocked for
// callers that need the tri-state classification directly, e.g.
// diagnostics tooling.
func (c *Cache) ResolveOrigin(pg, eg gid.Gid, isReader bool) NodeOrigin {
	c.mu.Lock()
	defer c.mu.Unlock()
	origin, _, _ := c.resolveOriginLocked(pg, eg, isReader)
	return origin
}

func (c *Cache) endpointInfoLocked(g gid.Gid, info entities.EntityInfo, kind EndpointKind, demangleType DemangleFunc) EndpointInfo {
	_, name, namespace := c.resolveOriginLocked(info.ParticipantGid, g, kind == EndpointReader)
	return EndpointInfo{
		NodeName:      name,
		NodeNamespace: namespace,
		TopicType:     demangleType(info.TopicType),
		TypeHash:      info.TopicTypeHash,
		Kind:          kind,
		Gid:           g,
		QoS:           info,
	}
}

// GetWritersInfoByTopic returns every known data writer on topicName,
// matched directly against each entity's recorded topic name, with
// demangleType applied to each result's reported type.
func (c *Cache) GetWritersInfoByTopic(topicName string, demangleType DemangleFunc) []EndpointInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []EndpointInfo
	for g, info := range c.writers {
		if info.TopicName == topicName {
			out = append(out, c.endpointInfoLocked(g, info, EndpointWriter, demangleType))
		}
	}
	return out
}

// GetReadersInfoByTopic is the reader counterpart of
// GetWritersInfoByTopic.
func (c *Cache) GetReadersInfoByTopic(topicName string, demangleType DemangleFunc) []EndpointInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []EndpointInfo
	for g, info := range c.readers {
		if info.TopicName == topicName {
			out = append(out, c.endpointInfoLocked(g, info, EndpointReader, demangleType))
		}
	}
	return out
}

// GetNamesAndTypes returns every demangled topic name known to the
// cache (writer or reader side) mapped to the distinct set of
// demangled types published or subscribed under that name. Topics
// whose demangled name is empty are filtered out.
func (c *Cache) GetNamesAndTypes(demangleTopic, demangleType DemangleFunc) map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]map[string]struct{})
	add := func(info entities.EntityInfo) {
		name := demangleTopic(info.TopicName)
		if name == "" {
			return
		}
		types, ok := seen[name]
		if !ok {
			types = make(map[string]struct{})
			seen[name] = types
		}
		types[demangleType(info.TopicType)] = struct{}{}
	}
	for _, info := range c.writers {
		add(info)
	}
	for _, info := range c.readers {
		add(info)
	}

	out := make(map[string][]string, len(seen))
	for name, types := range seen {
		list := make([]string, 0, len(types))
		for t := range types {
			list = append(list, t)
		}
		out[name] = list
	}
	return out
}

func (c *Cache) findNodeLocked(name, namespace string) (gid.Gid, entities.NodeEntitiesInfo, bool) {
	key := entities.Key{Name: name, Namespace: namespace}
	for pg, p := range c.participants {
		if idx := p.FindNode(key); idx >= 0 {
			return pg, p.NodeEntitiesInfoSeq[idx], true
		}
	}
	return gid.Gid{}, entities.NodeEntitiesInfo{}, false
}

func (c *Cache) namesAndTypesByNodeLocked(name, namespace string, demangleTopic, demangleType DemangleFunc, isReader bool) (map[string][]string, error) {
	_, node, ok := c.findNodeLocked(name, namespace)
	if !ok {
		return nil, ErrNodeNotFound
	}

	gids := node.WriterGidSeq
	m := c.writers
	if isReader {
		gids = node.ReaderGidSeq
		m = c.readers
	}

	out := make(map[string][]string)
	for _, g := range gids {
		info, known := m[g]
		if !known {
			continue
		}
		topicName := demangleTopic(info.TopicName)
		if topicName == "" {
			continue
		}
		out[topicName] = append(out[topicName], demangleType(info.TopicType))
	}
	return out, nil
}

// GetWriterNamesAndTypesByNode returns the topics and types written by
// node (name, namespace), or ErrNodeNotFound if no such node exists in
// any known participant.
func (c *Cache) GetWriterNamesAndTypesByNode(name, namespace string, demangleTopic, demangleType DemangleFunc) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namesAndTypesByNodeLocked(name, namespace, demangleTopic, demangleType, false)
}

// GetReaderNamesAndTypesByNode is the reader counterpart of
// GetWriterNamesAndTypesByNode.
func (c *Cache) GetReaderNamesAndTypesByNode(name, namespace string, demangleTopic, demangleType DemangleFunc) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namesAndTypesByNodeLocked(name, namespace, demangleTopic, demangleType, true)
}

// GetNumberOfNodes returns the count of distinct nodes across every
// known participant.
func (c *Cache) GetNumberOfNodes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.participants {
		n += len(p.NodeEntitiesInfoSeq)
	}
	return n
}

// NodeIdentity is one row of a GetNodeNames result: a node's (name,
// namespace) pair plus the security enclave of the participant that
// owns it.
type NodeIdentity struct {
	Name      string
	Namespace string
	Enclave   string
}

// GetNodeNames returns the (name, namespace, enclave) triple of every
// known node across every participant — the three parallel arrays
// get_node_names would fill, collapsed into one slice of rows.
func (c *Cache) GetNodeNames() []NodeIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []NodeIdentity
	for _, p := range c.participants {
		for _, n := range p.NodeEntitiesInfoSeq {
			out = append(out, NodeIdentity{Name: n.NodeName, Namespace: n.NodeNamespace, Enclave: p.Enclave})
		}
	}
	return out
}
