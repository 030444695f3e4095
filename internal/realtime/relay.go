package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const relayChannel = "clipperroom:events"

// Relay routes events through Redis pub/sub so that every running API
// instance's hub sees them, not just the one whose notifier observed the
// change. It satisfies the same Broadcaster contract as the hub itself.
type Relay struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRelay(rdb *redis.Client, log zerolog.Logger) *Relay {
	return &Relay{
		rdb: rdb,
		log: log.With().Str("component", "relay").Logger(),
	}
}

func (r *Relay) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}

	if err := r.rdb.Publish(context.Background(), relayChannel, frame).Err(); err != nil {
		r.log.Warn().Err(err).Str("event", event).Msg("relay publish failed")
	}
}

// Subscribe feeds relayed events into the local hub until ctx is cancelled.
func (r *Relay) Subscribe(ctx context.Context, hub *Hub) {
	pubsub := r.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.log.Warn().Err(err).Msg("bad relay frame")
				continue
			}

			hub.Broadcast(env.Event, env.Data)
		}
	}
}
