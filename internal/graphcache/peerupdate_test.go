package graphcache

import (
	"testing"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/wire"
)

// P4: update_participant_entities is idempotent and replaces — never
// merges — the node-entities sequence.
func TestP4UpdateParticipantEntitiesReplacesNotMerges(t *testing.T) {
	c := New()
	pg := gidN(1)
	w1 := gidN(2)
	w2 := gidN(3)

	first := wire.ParticipantEntitiesInfo{
		Gid: wire.FromGid(pg),
		NodeEntitiesInfoSeq: []wire.NodeEntitiesInfo{
			wire.FromNodeEntitiesInfo(entities.NodeEntitiesInfo{NodeName: "talker", NodeNamespace: "/", WriterGidSeq: []gid.Gid{w1}}),
		},
	}
	c.UpdateParticipantEntities(first)

	second := wire.ParticipantEntitiesInfo{
		Gid: wire.FromGid(pg),
		NodeEntitiesInfoSeq: []wire.NodeEntitiesInfo{
			wire.FromNodeEntitiesInfo(entities.NodeEntitiesInfo{NodeName: "listener", NodeNamespace: "/", WriterGidSeq: []gid.Gid{w2}}),
		},
	}
	p, _ := c.UpdateParticipantEntities(second)

	if len(p.NodeEntitiesInfoSeq) != 1 || p.NodeEntitiesInfoSeq[0].NodeName != "listener" {
		t.Fatalf("expected replacement, not merge; got %+v", p.NodeEntitiesInfoSeq)
	}

	// Applying the identical message twice must yield the same state.
	p2, _ := c.UpdateParticipantEntities(second)
	if len(p2.NodeEntitiesInfoSeq) != len(p.NodeEntitiesInfoSeq) {
		t.Fatalf("update is not idempotent: %+v vs %+v", p2, p)
	}
}

func TestUpdateParticipantEntitiesPreservesEnclave(t *testing.T) {
	c := New()
	pg := gidN(1)
	c.AddParticipant(pg, "encA")

	msg := wire.ParticipantEntitiesInfo{Gid: wire.FromGid(pg)}
	c.UpdateParticipantEntities(msg)

	p, ok := c.GetParticipantInfo(pg)
	if !ok {
		t.Fatalf("expected participant to remain known")
	}
	if p.Enclave != "encA" {
		t.Errorf("enclave = %q, want preserved %q", p.Enclave, "encA")
	}
}

func TestUpdateParticipantEntitiesReportsNewness(t *testing.T) {
	c := New()
	pg := gidN(1)
	msg := wire.ParticipantEntitiesInfo{Gid: wire.FromGid(pg)}

	_, isNew := c.UpdateParticipantEntities(msg)
	if !isNew {
		t.Errorf("expected first update to report a new participant")
	}
	_, isNew = c.UpdateParticipantEntities(msg)
	if isNew {
		t.Errorf("expected second update to report an existing participant")
	}
}
