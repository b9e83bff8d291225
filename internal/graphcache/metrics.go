package graphcache

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// instruments bundles the otel instruments graphcache emits through an
// injected meter. A nil *instruments is valid and every method is a
// no-op, so a Cache built with New (no meter configured) never touches
// the otel SDK.
type instruments struct {
	mutations metric.Int64Counter
	entities  metric.Int64UpDownCounter
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	mutations, err := meter.Int64Counter("graphcache.mutations",
		metric.WithDescription("count of state-changing graphcache operations"))
	if err != nil {
		return nil, err
	}
	entities, err := meter.Int64UpDownCounter("graphcache.entities",
		metric.WithDescription("current number of tracked writers and readers"))
	if err != nil {
		return nil, err
	}
	return &instruments{mutations: mutations, entities: entities}, nil
}

func (in *instruments) recordMutation() {
	if in == nil {
		return
	}
	in.mutations.Add(context.Background(), 1)
}

func (in *instruments) recordEntityDelta(delta int64) {
	if in == nil || delta == 0 {
		return
	}
	in.entities.Add(context.Background(), delta)
}

// WithMeter configures the Cache to emit metrics through meter. It
// should be called once, right after New, before the cache is shared
// with any other goroutine.
func WithMeter(meter metric.Meter) func(*Cache) error {
	return func(c *Cache) error {
		in, err := newInstruments(meter)
		if err != nil {
			return err
		}
		c.metrics = in
		return nil
	}
}

// NewWithOptions is New plus optional configuration, currently only
// WithMeter. It returns an error if an option fails (e.g. instrument
// registration).
func NewWithOptions(opts ...func(*Cache) error) (*Cache, error) {
	c := New()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
