package events

import (
	"context"
	"sync"

	"murmur/internal/platform/logger"
	"murmur/internal/platform/metrics"
)

// Bus fans ResponsePublished events out to long-lived subscribers.
// Publish blocks only when a subscriber's buffer is full, it never drops
// while the bus is open
type Bus struct {
	mu     sync.RWMutex
	subs   []chan ResponsePublished
	closed bool

	buffer int
	log    logger.Logger
	met    *metrics.Metrics
	mirror *KafkaMirror
}

// NewBus constructs a Bus with per-subscriber buffers of the given size.
// mirror may be nil
func NewBus(buffer int, log logger.Logger, mirror *KafkaMirror) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		buffer: buffer,
		log:    log,
		met:    metrics.Default,
		mirror: mirror,
	}
}

// Subscribe registers a new subscriber and returns its receive channel.
// Subscribers are expected to be long lived and started before traffic
func (b *Bus) Subscribe() <-chan ResponsePublished {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan ResponsePublished, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers ev to every subscriber and mirrors it when configured.
// A closed bus counts the event as dropped and returns
func (b *Bus) Publish(ctx context.Context, ev ResponsePublished) {
	if !b.deliver(ctx, ev) {
		return
	}
	b.met.EventsPublished.WithLabelValues("bus").Inc()

	if b.mirror != nil {
		if err := b.mirror.Publish(ctx, ev); err != nil {
			// mirror failures never propagate to the pipeline
			b.log.Error().Err(err).Str("response_id", ev.ResponseID).Msg("kafka mirror publish failed")
		} else {
			b.met.EventsPublished.WithLabelValues("kafka").Inc()
		}
	}
}

// deliver sends ev to every subscriber while holding the read lock so a
// concurrent Close cannot close a channel mid-send
func (b *Bus) deliver(ctx context.Context, ev ResponsePublished) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.met.EventsDropped.Inc()
		return false
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		case <-ctx.Done():
			b.met.EventsDropped.Inc()
			b.log.Warn().Str("response_id", ev.ResponseID).Msg("event delivery canceled")
			return false
		}
	}
	return true
}

// Close stops delivery and closes all subscriber channels
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	if b.mirror != nil {
		return b.mirror.Close()
	}
	return nil
}
