package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayPublishesEnvelope(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := rdb.Subscribe(ctx, relayChannel)
	defer sub.Close()

	// Wait for the subscription before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	relay := NewRelay(rdb, zerolog.Nop())
	relay.Broadcast("booking_updated", map[string]any{"id": 8})

	select {
	case msg := <-sub.Channel():
		var env Envelope
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &env))
		assert.Equal(t, "booking_updated", env.Event)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.EqualValues(t, 8, payload["id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no relay frame received")
	}
}

func TestRelaySubscribeFeedsHub(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	hub := NewHub(zerolog.Nop())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	waitForClients(t, hub, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(rdb, zerolog.Nop())
	go relay.Subscribe(ctx, hub)

	// Give the subscription a moment to come up, then publish through the
	// same relay path a sibling instance would use.
	time.Sleep(100 * time.Millisecond)
	relay.Broadcast("order_created", map[string]any{"id": 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "order_created", env.Event)
}
