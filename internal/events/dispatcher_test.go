package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventTaskCreated, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})
	d.Subscribe(EventTaskDeleted, func(_ context.Context, event Event) error {
		t.Fatal("handler for other event type must not fire")
		return nil
	})

	event := Event{ID: "1", Type: EventTaskCreated, Actor: Actor{Email: "a@example.com"}}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var calls int
	d.Subscribe(EventUserLoggedOut, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventUserLoggedOut, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserLoggedOut}))
	assert.Equal(t, 2, calls)
}
