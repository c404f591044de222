package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEverySubscriberOfUser(t *testing.T) {
	hub := NewHub()

	a, cleanupA := hub.Subscribe("u-1")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("u-1")
	defer cleanupB()
	other, cleanupOther := hub.Subscribe("u-2")
	defer cleanupOther()

	hub.Publish("u-1", Event{Event: "schedule_published", Data: 4})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "u-1", ev.UserID)
			assert.Equal(t, "schedule_published", ev.Event)
		default:
			t.Fatal("expected event")
		}
	}
	assert.Len(t, other, 0)
	assert.Equal(t, 2, hub.SubscriberCount("u-1"))
	assert.Equal(t, 1, hub.SubscriberCount("u-2"))
	assert.Equal(t, 0, hub.SubscriberCount("nobody"))
}

func TestHub_FullBufferDropsWithoutBlocking(t *testing.T) {
	hub := NewHubWithBuffer(1)
	ch, cleanup := hub.Subscribe("u")
	defer cleanup()

	hub.Publish("u", Event{Event: "first"})
	hub.Publish("u", Event{Event: "second"})

	require.Len(t, ch, 1)
	assert.Equal(t, "first", (<-ch).Event)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u")

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("u"))

	hub.Publish("u", Event{Event: "late"})
}
