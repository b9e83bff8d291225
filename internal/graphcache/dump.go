package graphcache

import (
	"fmt"
	"io"
	"sort"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// Snapshot is a point-in-time, deep copy of the cache contents,
// useful for tests and for the graphdump CLI's "dump" command.
type Snapshot struct {
	Writers      map[gid.Gid]entities.EntityInfo
	Readers      map[gid.Gid]entities.EntityInfo
	Participants map[gid.Gid]entities.ParticipantInfo
}

// Snapshot returns a deep copy of the cache's current state. The
// returned maps are independent of the cache; mutating them has no
// effect on it.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Writers:      make(map[gid.Gid]entities.EntityInfo, len(c.writers)),
		Readers:      make(map[gid.Gid]entities.EntityInfo, len(c.readers)),
		Participants: make(map[gid.Gid]entities.ParticipantInfo, len(c.participants)),
	}
	for g, info := range c.writers {
		snap.Writers[g] = info
	}
	for g, info := range c.readers {
		snap.Readers[g] = info
	}
	for g, p := range c.participants {
		cp := p
		cp.NodeEntitiesInfoSeq = append([]entities.NodeEntitiesInfo(nil), p.NodeEntitiesInfoSeq...)
		snap.Participants[g] = cp
	}
	return snap
}

// Dump writes a human-readable, deterministically ordered
// representation of the cache's current state to w. It is meant for
// debugging and for the graphdump CLI, not for wire transmission.
func (c *Cache) Dump(w io.Writer) error {
	snap := c.Snapshot()

	participantGids := make([]gid.Gid, 0, len(snap.Participants))
	for g := range snap.Participants {
		participantGids = append(participantGids, g)
	}
	sort.Slice(participantGids, func(i, j int) bool { return gid.Less(participantGids[i], participantGids[j]) })

	for _, pg := range participantGids {
		p := snap.Participants[pg]
		if _, err := fmt.Fprintf(w, "participant %s enclave=%q\n", pg, p.Enclave); err != nil {
			return err
		}
		for _, n := range p.NodeEntitiesInfoSeq {
			if _, err := fmt.Fprintf(w, "  node %s%s writers=%d readers=%d\n", n.NodeNamespace, n.NodeName, len(n.WriterGidSeq), len(n.ReaderGidSeq)); err != nil {
				return err
			}
		}
	}

	writerGids := make([]gid.Gid, 0, len(snap.Writers))
	for g := range snap.Writers {
		writerGids = append(writerGids, g)
	}
	sort.Slice(writerGids, func(i, j int) bool { return gid.Less(writerGids[i], writerGids[j]) })
	for _, g := range writerGids {
		info := snap.Writers[g]
		if _, err := fmt.Fprintf(w, "writer %s topic=%s type=%s\n", g, info.TopicName, info.TopicType); err != nil {
			return err
		}
	}

	readerGids := make([]gid.Gid, 0, len(snap.Readers))
	for g := range snap.Readers {
		readerGids = append(readerGids, g)
	}
	sort.Slice(readerGids, func(i, j int) bool { return gid.Less(readerGids[i], readerGids[j]) })
	for _, g := range readerGids {
		info := snap.Readers[g]
		if _, err := fmt.Fprintf(w, "reader %s topic=%s type=%s\n", g, info.TopicName, info.TopicType); err != nil {
			return err
		}
	}
	return nil
}
