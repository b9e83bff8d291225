// Package graphcontext bundles a graph cache with the participant
// identity and transport handles a hosting middleware plugs in to keep
// the cache in sync with its peers.
package graphcontext

import (
	"context"
	"sync"

	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/graphcache"
	"github.com/ros2/rmw-dds-common-go/internal/rmwlog"
	"github.com/ros2/rmw-dds-common-go/internal/wire"
)

// Advertiser publishes this participant's current entities on the
// discovery topic. The hosting middleware implements it; this package
// only calls it.
type Advertiser interface {
	Advertise(ctx context.Context, msg wire.ParticipantEntitiesInfo) error
}

// Listener delivers inbound peer ParticipantEntitiesInfo messages.
// Implementations typically wrap a DDS subscription to the discovery
// topic.
type Listener interface {
	Recv(ctx context.Context) (wire.ParticipantEntitiesInfo, error)
}

// Context bundles everything one participant's graph-cache integration
// needs: its own identity, the cache, and the transport handles used
// to stay in sync with peers.
type Context struct {
	ParticipantGid gid.Gid
	Cache          *graphcache.Cache
	Advertiser     Advertiser
	Listener       Listener

	log *rmwlog.Logger

	mu      sync.Mutex
	running bool
}

// New builds a Context for the given participant. cache must not be
// nil; advertiser and listener may be nil if the hosting middleware
// only needs one direction of sync.
func New(participant gid.Gid, cache *graphcache.Cache, advertiser Advertiser, listener Listener) *Context {
	return &Context{
		ParticipantGid: participant,
		Cache:          cache,
		Advertiser:     advertiser,
		Listener:       listener,
		log:            rmwlog.For("graphcontext"),
	}
}

// Advertise publishes the participant's current entities through the
// configured Advertiser. It is a no-op returning nil if no Advertiser
// was configured.
func (c *Context) Advertise(ctx context.Context) error {
	if c.Advertiser == nil {
		return nil
	}
	p, _ := c.Cache.GetParticipantInfo(c.ParticipantGid)
	return c.Advertiser.Advertise(ctx, wire.FromParticipantInfo(c.ParticipantGid, p))
}

// Run runs the listener worker loop, which reads peer
// ParticipantEntitiesInfo messages from Listener and applies them to
// Cache until ctx is cancelled or Listener.Recv returns an error. Run
// blocks until the loop exits; callers that want it in the background
// should invoke it in its own goroutine. It is a no-op returning nil
// immediately if no Listener was configured.
func (c *Context) Run(ctx context.Context) error {
	if c.Listener == nil {
		return nil
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.Listener.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Info("listener recv failed", "error", err)
			return err
		}
		if _, isNew := c.Cache.UpdateParticipantEntities(msg); isNew {
			c.log.Debug("peer participant discovered", "gid", msg.Gid.ToGid().String())
		}
	}
}
