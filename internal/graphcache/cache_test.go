package graphcache

import (
	"testing"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"golang.org/x/sync/errgroup"
)

func gidN(n byte) gid.Gid {
	var g gid.Gid
	g[0] = n
	return g
}

// P2: add_X returns true the first time and false on every immediate
// repeat; remove_X returns true exactly once per prior add.
func TestP2AddRemoveReturnValues(t *testing.T) {
	c := New()
	w1 := gidN(1)

	if ok := c.AddWriter(w1, entities.EntityInfo{TopicName: "/t"}); !ok {
		t.Fatalf("first AddWriter should return true")
	}
	if ok := c.AddWriter(w1, entities.EntityInfo{TopicName: "/t"}); ok {
		t.Errorf("repeat AddWriter should return false")
	}
	if ok := c.RemoveWriter(w1); !ok {
		t.Fatalf("first RemoveWriter should return true")
	}
	if ok := c.RemoveWriter(w1); ok {
		t.Errorf("repeat RemoveWriter should return false")
	}
}

// P1: for any interleaving of add_*/remove_* on distinct gids, the
// final state equals the set-difference of adds and removes.
func TestP1ConcurrentMutationsConverge(t *testing.T) {
	c := New()
	const n = 64

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			c.AddWriter(gidN(byte(i)), entities.EntityInfo{TopicName: "/t"})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.GetWriterCount("/t"); got != n {
		t.Fatalf("writer count = %d, want %d", got, n)
	}

	var g2 errgroup.Group
	for i := 0; i < n; i += 2 {
		i := i
		g2.Go(func() error {
			c.RemoveWriter(gidN(byte(i)))
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := c.GetWriterCount("/t"), n/2; got != want {
		t.Fatalf("writer count after removals = %d, want %d", got, want)
	}
}

// P5: the change callback count equals the number of state-changing
// operations.
func TestP5ChangeCallbackFiresOnceperStateChange(t *testing.T) {
	c := New()
	count := 0
	c.SetChangeCallback(func() { count++ })

	w1 := gidN(1)
	c.AddWriter(w1, entities.EntityInfo{TopicName: "/t"}) // 1: new writer
	c.AddWriter(w1, entities.EntityInfo{TopicName: "/t"}) // no-op: repeat
	c.RemoveWriter(w1)                                    // 2: removed
	c.RemoveWriter(w1)                                    // no-op: already gone

	p1 := gidN(2)
	c.AddParticipant(p1, "encA") // 3: new participant
	c.AddParticipant(p1, "encA") // no-op: unchanged enclave
	c.AddParticipant(p1, "encB") // 4: enclave changed
	c.RemoveParticipant(p1)      // 5: removed
	c.RemoveParticipant(p1)      // no-op: already gone

	if count != 5 {
		t.Errorf("callback fired %d times, want 5", count)
	}
}

func TestClearChangeCallbackStopsNotifications(t *testing.T) {
	c := New()
	count := 0
	c.SetChangeCallback(func() { count++ })
	c.AddWriter(gidN(1), entities.EntityInfo{})
	c.ClearChangeCallback()
	c.AddWriter(gidN(2), entities.EntityInfo{})

	if count != 1 {
		t.Errorf("callback fired %d times after clearing, want 1", count)
	}
}

func TestRemoveParticipantDoesNotRemoveOwnedEndpoints(t *testing.T) {
	c := New()
	p1 := gidN(1)
	w1 := gidN(2)
	r1 := gidN(3)

	c.AddParticipant(p1, "encA")
	c.AddWriter(w1, entities.EntityInfo{TopicName: "/t", ParticipantGid: p1})
	c.AddReader(r1, entities.EntityInfo{TopicName: "/t", ParticipantGid: p1})
	c.RemoveParticipant(p1)

	// Per spec, endpoint records are torn down only by their own
	// discovery-remove events, never as a side effect of participant
	// removal.
	if c.GetWriterCount("/t") != 1 {
		t.Errorf("expected writer to survive participant removal")
	}
	if c.GetReaderCount("/t") != 1 {
		t.Errorf("expected reader to survive participant removal")
	}

	// The surviving endpoints now resolve as BareDdsParticipant since
	// their owning participant is gone from the cache.
	if origin := c.ResolveOrigin(p1, w1, false); origin != BareDdsParticipant {
		t.Errorf("ResolveOrigin = %v, want BareDdsParticipant", origin)
	}
}

// get_writer_count/get_reader_count are scoped to a single topic, not
// the total number of known endpoints.
func TestGetWriterReaderCountIsPerTopic(t *testing.T) {
	c := New()
	c.AddWriter(gidN(1), entities.EntityInfo{TopicName: "/a"})
	c.AddWriter(gidN(2), entities.EntityInfo{TopicName: "/a"})
	c.AddWriter(gidN(3), entities.EntityInfo{TopicName: "/b"})
	c.AddReader(gidN(4), entities.EntityInfo{TopicName: "/a"})

	if got := c.GetWriterCount("/a"); got != 2 {
		t.Errorf("GetWriterCount(/a) = %d, want 2", got)
	}
	if got := c.GetWriterCount("/b"); got != 1 {
		t.Errorf("GetWriterCount(/b) = %d, want 1", got)
	}
	if got := c.GetWriterCount("/unknown"); got != 0 {
		t.Errorf("GetWriterCount(/unknown) = %d, want 0", got)
	}
	if got := c.GetReaderCount("/a"); got != 1 {
		t.Errorf("GetReaderCount(/a) = %d, want 1", got)
	}
}
