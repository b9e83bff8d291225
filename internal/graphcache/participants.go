package graphcache

import (
	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// AddParticipant records a newly discovered participant with its
// security enclave label. It returns false, and does not fire the
// change callback, if g is already known with the same enclave —
// re-announcing an unchanged participant is not a state change. A
// participant reappearing with a different enclave, or appearing for
// the first time, returns true. Either way, any node-entities already
// layered over g are preserved: peer discovery messages and local
// AddParticipant calls can race, and neither should erase the other's
// contribution.
func (c *Cache) AddParticipant(g gid.Gid, enclave string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, known := c.participants[g]
	if known && existing.Enclave == enclave {
		return false
	}
	existing.Enclave = enclave
	c.participants[g] = existing
	c.log.Debug("participant added", "gid", g.String(), "enclave", enclave, "new", !known)
	c.notify()
	return true
}

// RemoveParticipant forgets a previously discovered participant. Per
// spec, endpoint records owned by that participant are NOT removed
// here — they are torn down via their own discovery-remove events, and
// may briefly appear as BareDdsParticipant endpoints in the interim.
// It returns false if g is unknown.
func (c *Cache) RemoveParticipant(g gid.Gid) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.participants[g]; !ok {
		return false
	}
	delete(c.participants, g)
	c.log.Debug("participant removed", "gid", g.String())
	c.notify()
	return true
}

// GetParticipantInfo returns the current record for participant g and
// whether it is known.
func (c *Cache) GetParticipantInfo(g gid.Gid) (entities.ParticipantInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.participants[g]
	return p, ok
}
