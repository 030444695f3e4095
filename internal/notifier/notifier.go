package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/clipperroom/clipperroom-api/internal/metrics"
)

// Change is the raw row-change payload emitted by the store triggers.
type Change struct {
	Table   string   `json:"table"`
	Action  string   `json:"action"` // INSERT / UPDATE / DELETE
	ID      uint     `json:"id"`
	Changed []string `json:"changed,omitempty"`
}

// Broadcaster delivers a named event to every connected client.
// At-most-once, fire-and-forget.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// DocLoader fetches the current document for an event payload.
type DocLoader interface {
	LoadBooking(ctx context.Context, id uint) (any, error)
	LoadOrder(ctx context.Context, id uint) (any, error)
}

const reconnectBackoff = 5 * time.Second

// Notifier keeps one LISTEN connection to the store and republishes row
// changes on bookings/orders as typed client events. The subscription is
// torn down and retried on any error, forever, until ctx is cancelled.
type Notifier struct {
	dsn    string
	loader DocLoader
	bus    Broadcaster
	log    zerolog.Logger
}

func New(dsn string, loader DocLoader, bus Broadcaster, log zerolog.Logger) *Notifier {
	return &Notifier{
		dsn:    dsn,
		loader: loader,
		bus:    bus,
		log:    log.With().Str("component", "notifier").Logger(),
	}
}

func (n *Notifier) Run(ctx context.Context) {
	for {
		if err := n.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			n.log.Warn().Err(err).
				Dur("retry_in", reconnectBackoff).
				Msg("change stream lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectBackoff):
		}
	}
}

func (n *Notifier) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, n.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	for _, channel := range []string{"bookings_changes", "orders_changes"} {
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			return err
		}
	}

	n.log.Info().Msg("change stream connected")

	for {
		note, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var ch Change
		if err := json.Unmarshal([]byte(note.Payload), &ch); err != nil {
			n.log.Warn().Err(err).Str("payload", note.Payload).Msg("bad change payload")
			continue
		}

		n.Handle(ctx, ch)
	}
}

// Handle maps one raw change to its two client events: the resource-specific
// one and the generic catch-all, both carrying the same payload.
func (n *Notifier) Handle(ctx context.Context, ch Change) {
	resource, ok := resourceFor(ch.Table)
	if !ok {
		return
	}

	event, generic, ok := eventsFor(resource, ch.Action)
	if !ok {
		return
	}

	payload := map[string]any{"id": ch.ID}
	if ch.Action != "DELETE" {
		doc, err := n.loadDoc(ctx, resource, ch.ID)
		if err != nil {
			n.log.Warn().Err(err).
				Str("resource", resource).
				Uint("id", ch.ID).
				Msg("failed to load changed document")
			return
		}
		payload[resource] = doc
	}
	if len(ch.Changed) > 0 {
		payload["changed_fields"] = ch.Changed
	}

	n.bus.Broadcast(event, payload)
	n.bus.Broadcast(generic, payload)

	metrics.IncNotifierEvent(resource, ch.Action)
}

func (n *Notifier) loadDoc(ctx context.Context, resource string, id uint) (any, error) {
	if resource == "order" {
		return n.loader.LoadOrder(ctx, id)
	}
	return n.loader.LoadBooking(ctx, id)
}

func resourceFor(table string) (string, bool) {
	switch table {
	case "bookings":
		return "booking", true
	case "orders":
		return "order", true
	}
	return "", false
}

func eventsFor(resource, action string) (event, generic string, ok bool) {
	generic = "new_" + resource + "_activity"

	switch action {
	case "INSERT":
		return resource + "_created", generic, true
	case "UPDATE":
		return resource + "_updated", generic, true
	case "DELETE":
		return resource + "_deleted", generic, true
	}
	return "", "", false
}
