package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBuffer = 32

// Broker delivers events to every live subscriber without blocking the
// publisher. A subscriber whose buffer is full misses the event; Dropped
// reports how many deliveries were skipped that way.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[chan Event[T]]struct{}
	closed  bool
	done    chan struct{}
	buffer  int
	now     func() time.Time
	dropped atomic.Uint64
	// watchers counts live subscription goroutines.
	watchers atomic.Int64
}

// BrokerOption configures a Broker.
type BrokerOption func(*brokerConfig)

type brokerConfig struct {
	buffer int
	now    func() time.Time
}

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(size int) BrokerOption {
	return func(c *brokerConfig) {
		if size > 0 {
			c.buffer = size
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) BrokerOption {
	return func(c *brokerConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewBroker builds a broker.
func NewBroker[T any](opts ...BrokerOption) *Broker[T] {
	cfg := brokerConfig{buffer: defaultBuffer, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		done:   make(chan struct{}),
		buffer: cfg.buffer,
		now:    cfg.now,
	}
}

// Subscribe registers a subscriber. The returned channel closes when ctx is
// done or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	ch := make(chan Event[T], b.buffer)
	b.subs[ch] = struct{}{}

	b.watchers.Add(1)
	go func() {
		defer b.watchers.Add(-1)
		select {
		case <-ctx.Done():
			b.unsubscribe(ch)
		case <-b.done:
		}
	}()
	return ch
}

func (b *Broker[T]) unsubscribe(ch chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish sends payload to all subscribers.
func (b *Broker[T]) Publish(kind Kind, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	evt := Event[T]{Kind: kind, Payload: payload, At: b.now()}
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close closes every subscriber channel. Later calls are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// Subscribers returns the number of live subscriptions.
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber was
// not keeping up.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}
