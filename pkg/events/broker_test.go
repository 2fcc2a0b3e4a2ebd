package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversToAllSubscribers(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b := NewBroker[string](WithClock(func() time.Time { return stamp }))
	defer b.Close()

	ctx := context.Background()
	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)
	require.Equal(t, 2, b.Subscribers())

	b.Publish(ValueChanged, "email")

	for _, ch := range []<-chan Event[string]{first, second} {
		evt := receive(t, ch)
		require.Equal(t, ValueChanged, evt.Kind)
		require.Equal(t, "email", evt.Payload)
		require.Equal(t, stamp, evt.At)
	}
}

func TestBroker_UnsubscribesOnContextDone(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_DropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroker[int](WithBuffer(1))
	defer b.Close()

	ch := b.Subscribe(context.Background())
	b.Publish(StateChanged, 1)
	b.Publish(StateChanged, 2)

	require.Equal(t, 1, receive(t, ch).Payload)
	require.Equal(t, uint64(1), b.Dropped())
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker[int]()
	ch := b.Subscribe(context.Background())
	b.Close()
	b.Close()

	_, ok := <-ch
	require.False(t, ok)

	late := b.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok)

	b.Publish(FormReset, 1)
	require.Equal(t, 0, b.Subscribers())
}

func TestBroker_CloseReleasesBackgroundSubscribers(t *testing.T) {
	b := NewBroker[int]()
	for range 3 {
		b.Subscribe(context.Background())
	}
	require.Eventually(t, func() bool { return b.watchers.Load() == 3 }, time.Second, 5*time.Millisecond)

	b.Close()

	require.Eventually(t, func() bool { return b.watchers.Load() == 0 }, time.Second, 5*time.Millisecond)
}
